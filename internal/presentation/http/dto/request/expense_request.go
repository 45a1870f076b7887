package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest represents an expense create or update request.
// The category is checked against the fixed list by the service.
type ExpenseRequest struct {
	Category        string          `json:"category" binding:"required"`
	Description     string          `json:"description" binding:"max=2000"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TransactionCode *string         `json:"transaction_code" binding:"omitempty,max=100"`
}

// ParsedDate returns the expense date, or nil when none was sent
func (r *ExpenseRequest) ParsedDate() *time.Time {
	return parseDate(r.Date)
}

// ExpenseFilterRequest represents the expense listing query
type ExpenseFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Month    int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year     int    `form:"year" binding:"omitempty,min=2000,max=9999"`
}
