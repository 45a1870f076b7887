package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	domainRepo "github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

type sumRow struct {
	Total decimal.Decimal
}

func (r *analyticsRepository) sum(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var row sumRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *analyticsRepository) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM orders
		WHERE payment_status = ?
	`, enum.PaymentStatusPaid)
}

func (r *analyticsRepository) SumExpenses(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) AS total FROM expenses`)
}

func (r *analyticsRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).Count(&n).Error
	return n, err
}

func (r *analyticsRepository) CountPendingOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("status IN ?", []enum.OrderStatus{enum.OrderStatusReceived, enum.OrderStatusProcessing}).
		Count(&n).Error
	return n, err
}

func (r *analyticsRepository) CountVisits(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM (
			SELECT DISTINCT customer_id, order_date FROM orders
		) visits
	`).Scan(&n).Error
	return n, err
}

func (r *analyticsRepository) RevenueByMonth(ctx context.Context, since time.Time) ([]domainRepo.MonthlyAmount, error) {
	var results []domainRepo.MonthlyAmount
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(DATE_TRUNC('month', order_date), 'YYYY-MM') AS month,
			COALESCE(SUM(total_amount), 0) AS amount
		FROM orders
		WHERE payment_status = ? AND order_date >= ?
		GROUP BY DATE_TRUNC('month', order_date)
		ORDER BY DATE_TRUNC('month', order_date) ASC
	`, enum.PaymentStatusPaid, since.Format(dateLayout)).Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) ExpensesByCategory(ctx context.Context) ([]domainRepo.CategoryAmount, error) {
	var results []domainRepo.CategoryAmount
	err := r.db.WithContext(ctx).Raw(`
		SELECT category, COALESCE(SUM(amount), 0) AS amount
		FROM expenses
		GROUP BY category
		ORDER BY amount DESC
	`).Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) ReceiptHistory(ctx context.Context, customerID uuid.UUID) ([]entity.ReceiptHistoryEntry, error) {
	var results []entity.ReceiptHistoryEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(order_date, 'YYYY-MM-DD') AS order_date,
			COUNT(*) AS order_count,
			COALESCE(SUM(total_amount), 0) AS total_amount
		FROM orders
		WHERE customer_id = ?
		GROUP BY order_date
		ORDER BY order_date DESC
	`, customerID).Scan(&results).Error
	return results, err
}
