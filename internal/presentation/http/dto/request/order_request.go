package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuoteRequest asks for the price of an order without saving it
type QuoteRequest struct {
	ServiceID *uuid.UUID      `json:"service_id"`
	Weight    decimal.Decimal `json:"weight"`
	Items     int             `json:"items" binding:"min=0"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount_amount"`
}

// OrderRequest represents an order create or update request
type OrderRequest struct {
	QuoteRequest
	CustomerID      uuid.UUID `json:"customer_id" binding:"required"`
	ServiceType     string    `json:"service_type" binding:"max=255"`
	OrderDate       string    `json:"order_date" binding:"omitempty,datetime=2006-01-02"`
	DiscountReason  *string   `json:"discount_reason"`
	PaymentStatus   string    `json:"payment_status" binding:"omitempty,oneof=pending paid partial cancelled"`
	Status          string    `json:"status" binding:"omitempty,oneof=received processing washing drying folding ready completed cancelled"`
	TransactionCode *string   `json:"transaction_code" binding:"omitempty,max=100"`
	Notes           *string   `json:"notes"`
}

// Date returns the parsed order date, or nil when none was sent
func (r *OrderRequest) Date() *time.Time {
	return parseDate(r.OrderDate)
}

// OrderStatusRequest moves an order to another status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=received processing washing drying folding ready completed cancelled"`
}

// OrderFilterRequest represents the order listing query
type OrderFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=received processing washing drying folding ready completed cancelled"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending paid partial cancelled"`
	Date          string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// OnDate returns the parsed date filter, or nil when none was sent
func (r *OrderFilterRequest) OnDate() *time.Time {
	return parseDate(r.Date)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
