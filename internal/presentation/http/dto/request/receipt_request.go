package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
)

// GenerateReceiptRequest asks for a receipt covering a customer's orders on one date
type GenerateReceiptRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	OrderDate  string    `json:"order_date" binding:"required,datetime=2006-01-02"`
}

// Date returns the parsed order date
func (r *GenerateReceiptRequest) Date() (time.Time, error) {
	return time.Parse(entity.DateLayout, r.OrderDate)
}
