package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/pkg/pagination"
)

// OrderFilter narrows an order listing. Zero values are ignored.
type OrderFilter struct {
	Search        string
	Status        enum.OrderStatus
	PaymentStatus enum.PaymentStatus
	Date          *time.Time
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID loads the order with its customer
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter OrderFilter, params *pagination.Params) ([]entity.Order, int64, error)
	// ListByCustomer returns a customer's orders, newest first
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error)
	ListByCustomerAndDate(ctx context.Context, customerID uuid.UUID, date time.Time) ([]entity.Order, error)
	// ListByDateRange returns orders whose order date falls within [from, to], with customers
	ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Order, error)
	Recent(ctx context.Context, limit int) ([]entity.Order, error)
}
