package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	domainRepo "github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Omit("Customer", "UpdatedByUser").Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("UpdatedByUser").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Omit("Customer", "UpdatedByUser").Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) List(ctx context.Context, filter domainRepo.OrderFilter, params *pagination.Params) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id")

	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("customers.name ILIKE ? OR customers.phone ILIKE ? OR orders.service_type ILIKE ? OR orders.transaction_code ILIKE ?", p, p, p, p)
	}
	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("orders.payment_status = ?", filter.PaymentStatus)
	}
	if filter.Date != nil {
		query = query.Where("orders.order_date = ?", filter.Date.Format(dateLayout))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Customer").
		Order("orders.created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date DESC, created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByCustomerAndDate(ctx context.Context, customerID uuid.UUID, date time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND order_date = ?", customerID, date.Format(dateLayout)).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Scopes(DateBetween("order_date", &from, &to)).
		Preload("Customer").
		Order("order_date ASC, created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Recent(ctx context.Context, limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
