package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/report"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"go.uber.org/zap"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	cache        repository.Cache
	logger       *zap.Logger
	now          func() time.Time
}

// NewCustomerService creates a new customer service. Writes drop the cached
// dashboard, which carries the customer count and recent order names.
func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository, cache repository.Cache, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
	}
}

// CustomerInput represents the fields of a customer on create and update
type CustomerInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	phone := trimmed(input.Phone)
	if err := s.ensurePhoneFree(ctx, phone, uuid.Nil); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:    strings.TrimSpace(input.Name),
		Email:   trimmed(input.Email),
		Phone:   phone,
		Address: trimmed(input.Address),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	invalidateAnalytics(ctx, s.cache, s.logger)
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers matching search on name, phone or email
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.Params, search string) (*pagination.Result[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(customers, pagination.New(params.Page, params.Limit, total)), nil
}

// UpdateCustomer replaces a customer's details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	phone := trimmed(input.Phone)
	if err := s.ensurePhoneFree(ctx, phone, customer.ID); err != nil {
		return nil, err
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Email = trimmed(input.Email)
	customer.Phone = phone
	customer.Address = trimmed(input.Address)

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	invalidateAnalytics(ctx, s.cache, s.logger)
	return customer, nil
}

// CustomerHistoryOutput is a customer with every order and the derived visit analytics
type CustomerHistoryOutput struct {
	Customer  *entity.Customer       `json:"customer"`
	Orders    []entity.Order         `json:"orders"`
	Analytics report.CustomerHistory `json:"analytics"`
}

// GetHistory returns the customer's orders and visit analytics
func (s *CustomerService) GetHistory(ctx context.Context, id uuid.UUID) (*CustomerHistoryOutput, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entity.Order{}
	}

	return &CustomerHistoryOutput{
		Customer:  customer,
		Orders:    orders,
		Analytics: report.BuildCustomerHistory(orders, s.now()),
	}, nil
}

// ensurePhoneFree rejects a phone number already used by another customer
func (s *CustomerService) ensurePhoneFree(ctx context.Context, phone *string, self uuid.UUID) error {
	if phone == nil {
		return nil
	}
	existing, err := s.customerRepo.GetByPhone(ctx, *phone)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("A customer with this phone number already exists")
	}
	return nil
}

// trimmed returns nil for missing or blank strings
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
