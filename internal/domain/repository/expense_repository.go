package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/pkg/pagination"
)

// ExpenseFilter narrows an expense listing. Zero values are ignored.
type ExpenseFilter struct {
	Search   string
	Category enum.ExpenseCategory
	From     *time.Time
	To       *time.Time
}

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ExpenseFilter, params *pagination.Params) ([]entity.Expense, int64, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]entity.Expense, error)
}
