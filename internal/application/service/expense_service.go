package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/domain/report"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService handles the owner's expense book
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	cache       repository.Cache
	logger      *zap.Logger
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, cache repository.Cache, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

// ExpenseInput represents the fields of an expense on create and update
type ExpenseInput struct {
	Category        enum.ExpenseCategory
	Description     string
	Amount          decimal.Decimal
	Date            *time.Time
	TransactionCode *string
	ActorID         uuid.UUID
}

func (in *ExpenseInput) validate() error {
	var errs []apperror.FieldError
	if !in.Category.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "category", Message: "unknown expense category"})
	}
	if !in.Amount.IsPositive() {
		errs = append(errs, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// ExpenseListQuery narrows an expense listing. Month and Year select a
// calendar month; Year alone selects the whole year.
type ExpenseListQuery struct {
	Search   string
	Category enum.ExpenseCategory
	Month    int
	Year     int
}

// Categories returns the fixed category list
func (s *ExpenseService) Categories() []enum.ExpenseCategory {
	return enum.ExpenseCategories()
}

// ListExpenses lists expenses, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, query ExpenseListQuery, params *pagination.Params) (*pagination.Result[entity.Expense], error) {
	params.Validate()

	filter := repository.ExpenseFilter{
		Search:   strings.TrimSpace(query.Search),
		Category: query.Category,
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, apperror.NewFieldError("category", "unknown expense category")
	}

	if query.Month != 0 || query.Year != 0 {
		year := query.Year
		if year == 0 {
			year = s.now().Year()
		}
		var from, to time.Time
		switch {
		case query.Month == 0:
			from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			to = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		case query.Month >= 1 && query.Month <= 12:
			from, to = report.MonthRange(year, time.Month(query.Month))
		default:
			return nil, apperror.NewFieldError("month", "month must be between 1 and 12")
		}
		filter.From, filter.To = &from, &to
	}

	expenses, total, err := s.expenseRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(expenses, pagination.New(params.Page, params.Limit, total)), nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// CreateExpense records a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense := &entity.Expense{}
	s.apply(expense, input)

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	invalidateAnalytics(ctx, s.cache, s.logger)
	return expense, nil
}

// UpdateExpense replaces an expense's details
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	expense, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(expense, input)

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	invalidateAnalytics(ctx, s.cache, s.logger)
	return expense, nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetExpense(ctx, id); err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateAnalytics(ctx, s.cache, s.logger)
	return nil
}

func (s *ExpenseService) apply(expense *entity.Expense, input *ExpenseInput) {
	expense.Category = input.Category
	expense.Description = strings.TrimSpace(input.Description)
	expense.Amount = input.Amount.Round(2)
	if input.Date != nil {
		expense.Date = dateOnly(*input.Date)
	} else if expense.Date.IsZero() {
		expense.Date = dateOnly(s.now())
	}
	expense.TransactionCode = trimmed(input.TransactionCode)
	expense.UpdatedBy = actorRef(input.ActorID)
}
