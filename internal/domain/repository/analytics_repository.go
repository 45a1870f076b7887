package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MonthlyAmount is a sum for one calendar month (YYYY-MM)
type MonthlyAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryAmount is a sum for one expense category
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// AnalyticsRepository runs the aggregate queries behind the dashboard
type AnalyticsRepository interface {
	// SumPaidRevenue totals orders whose payment status is paid
	SumPaidRevenue(ctx context.Context) (decimal.Decimal, error)
	SumExpenses(ctx context.Context) (decimal.Decimal, error)
	CountCustomers(ctx context.Context) (int64, error)
	// CountPendingOrders counts orders that are received or processing
	CountPendingOrders(ctx context.Context) (int64, error)
	// CountVisits counts distinct (customer, order date) pairs
	CountVisits(ctx context.Context) (int64, error)
	RevenueByMonth(ctx context.Context, since time.Time) ([]MonthlyAmount, error)
	ExpensesByCategory(ctx context.Context) ([]CategoryAmount, error)
	// ReceiptHistory lists the dates a customer has orders on, newest first
	ReceiptHistory(ctx context.Context, customerID uuid.UUID) ([]entity.ReceiptHistoryEntry, error)
}
