package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/domain/pricing"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/money"
	"github.com/lukusafi/laundry-api/pkg/notify"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

// OrderService handles order intake, pricing and the wash workflow
type OrderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	serviceRepo  repository.ServiceRepository
	cache        repository.Cache
	notifier     notify.Notifier
	store        entity.ReceiptHeader
	logger       *zap.Logger
	now          func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	cache repository.Cache,
	notifier notify.Notifier,
	store entity.ReceiptHeader,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		cache:        cache,
		notifier:     notifier,
		store:        store,
		logger:       logger,
		now:          time.Now,
	}
}

// QuoteInput carries what is needed to price an order.
// Subtotal is only used when no catalog service is referenced.
type QuoteInput struct {
	ServiceID *uuid.UUID
	Weight    decimal.Decimal
	Items     int
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
}

// OrderInput represents the fields of an order on create and update
type OrderInput struct {
	QuoteInput
	CustomerID      uuid.UUID
	ServiceType     string
	OrderDate       *time.Time
	DiscountReason  *string
	PaymentStatus   enum.PaymentStatus
	Status          enum.OrderStatus
	TransactionCode *string
	Notes           *string
	ActorID         uuid.UUID
}

// Quote prices an order without saving it
func (s *OrderService) Quote(ctx context.Context, input *QuoteInput) (*pricing.Quote, error) {
	quote, _, err := s.price(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// price resolves the catalog service, if any, and applies the pricing rules.
// A disabled service is rejected unless it is the one the order already uses.
func (s *OrderService) price(ctx context.Context, input *QuoteInput, current *uuid.UUID) (pricing.Quote, *entity.Service, error) {
	if input.ServiceID == nil {
		quote, err := pricing.Manual(input.Subtotal, pricing.Input{
			Weight:   input.Weight,
			Items:    input.Items,
			Discount: input.Discount,
		})
		return quote, nil, pricingError(err)
	}

	svc, err := s.serviceRepo.GetByID(ctx, *input.ServiceID)
	if err != nil {
		return pricing.Quote{}, nil, err
	}
	if svc == nil {
		return pricing.Quote{}, nil, apperror.NewNotFoundError("Service")
	}
	if !svc.IsActive && (current == nil || *current != svc.ID) {
		return pricing.Quote{}, nil, apperror.NewFieldError("service_id", "service is not active")
	}

	quote, err := pricing.Calculate(svc, pricing.Input{
		Weight:   input.Weight,
		Items:    input.Items,
		Discount: input.Discount,
	})
	return quote, svc, pricingError(err)
}

// CreateOrder prices and records a new order
func (s *OrderService) CreateOrder(ctx context.Context, input *OrderInput) (*entity.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	status := input.Status
	if status == "" {
		status = enum.OrderStatusReceived
	}
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "unknown order status")
	}
	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = enum.PaymentStatusPending
	}
	if !paymentStatus.IsValid() {
		return nil, apperror.NewFieldError("payment_status", "unknown payment status")
	}

	quote, svc, err := s.price(ctx, &input.QuoteInput, nil)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		CustomerID:    customer.ID,
		PaymentStatus: paymentStatus,
		Status:        status,
	}
	if err := s.fill(order, input, quote, svc); err != nil {
		return nil, err
	}
	if status == enum.OrderStatusCompleted {
		now := s.now()
		order.CompletedAt = &now
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	order.Customer = customer
	if status == enum.OrderStatusReady {
		s.notifyReady(order)
	}
	return order, nil
}

// GetOrder retrieves an order with its customer
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders matching filter, newest first
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter, params *pagination.Params) (*pagination.Result[entity.Order], error) {
	params.Validate()
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperror.NewFieldError("status", "unknown order status")
	}
	if filter.PaymentStatus != "" && !filter.PaymentStatus.IsValid() {
		return nil, apperror.NewFieldError("payment_status", "unknown payment status")
	}
	filter.Search = strings.TrimSpace(filter.Search)

	orders, total, err := s.orderRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewResult(orders, pagination.New(params.Page, params.Limit, total)), nil
}

// UpdateOrder re-prices an order and applies any status and payment changes
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *OrderInput) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != uuid.Nil && input.CustomerID != order.CustomerID {
		customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		order.CustomerID = customer.ID
		order.Customer = customer
	}

	if input.PaymentStatus != "" {
		if err := order.PaymentStatus.ValidateTransition(input.PaymentStatus); err != nil {
			return nil, apperror.NewFieldError("payment_status", err.Error())
		}
		order.PaymentStatus = input.PaymentStatus
	}

	previous := order.Status
	if input.Status != "" {
		if err := s.applyStatus(order, input.Status); err != nil {
			return nil, err
		}
	}

	quote, svc, err := s.price(ctx, &input.QuoteInput, order.ServiceID)
	if err != nil {
		return nil, err
	}
	if err := s.fill(order, input, quote, svc); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	if previous != enum.OrderStatusReady && order.Status == enum.OrderStatusReady {
		s.notifyReady(order)
	}
	return order, nil
}

// UpdateOrderStatus moves an order along the wash workflow
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, actorID uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := s.applyStatus(order, status); err != nil {
		return nil, err
	}
	order.UpdatedBy = actorRef(actorID)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	if previous != enum.OrderStatusReady && order.Status == enum.OrderStatusReady {
		s.notifyReady(order)
	}
	return order, nil
}

// DeleteOrder removes an order
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *OrderService) applyStatus(order *entity.Order, next enum.OrderStatus) error {
	if err := order.Status.ValidateTransition(next); err != nil {
		return apperror.NewFieldError("status", err.Error())
	}
	if next == enum.OrderStatusCompleted && order.CompletedAt == nil {
		now := s.now()
		order.CompletedAt = &now
	}
	order.Status = next
	return nil
}

// fill copies the priced and descriptive fields of input onto order
func (s *OrderService) fill(order *entity.Order, input *OrderInput, quote pricing.Quote, svc *entity.Service) error {
	serviceType := strings.TrimSpace(input.ServiceType)
	if svc != nil {
		order.ServiceID = &svc.ID
		if serviceType == "" {
			serviceType = svc.DisplayName
		}
	} else {
		order.ServiceID = nil
	}
	if serviceType == "" {
		return apperror.NewFieldError("service_type", "service type is required")
	}

	order.ServiceType = serviceType
	if input.OrderDate != nil {
		order.OrderDate = dateOnly(*input.OrderDate)
	} else if order.OrderDate.IsZero() {
		order.OrderDate = dateOnly(s.now())
	}
	order.Weight = input.Weight.Round(2)
	order.Items = input.Items
	order.Subtotal = quote.Subtotal
	order.DiscountAmount = quote.Discount
	order.TotalAmount = quote.Total
	order.DiscountReason = trimmed(input.DiscountReason)
	order.TransactionCode = trimmed(input.TransactionCode)
	order.Notes = trimmed(input.Notes)
	order.UpdatedBy = actorRef(input.ActorID)
	return nil
}

func (s *OrderService) invalidate(ctx context.Context) {
	invalidateAnalytics(ctx, s.cache, s.logger)
}

// notifyReady tells the customer their order can be collected.
// Delivery happens in the background and never affects the request.
func (s *OrderService) notifyReady(order *entity.Order) {
	if s.notifier == nil || order.Customer == nil {
		return
	}

	msg := notify.OrderReady{
		OrderID:      order.ID.String(),
		CustomerName: order.Customer.Name,
		Phone:        order.Customer.PhoneOrEmpty(),
		Email:        order.Customer.EmailOrEmpty(),
		ServiceType:  order.ServiceType,
		Total:        money.FormatKES(order.TotalAmount),
		StoreName:    s.store.StoreName,
		StorePhone:   s.store.Phone,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyOrderReady(ctx, msg); err != nil {
			s.logger.Warn("order ready notification failed",
				zap.String("order_id", msg.OrderID),
				zap.Error(err),
			)
		}
	}()
}

// pricingError turns a pricing rule violation into a field error
func pricingError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pricing.ErrNegativeWeight), errors.Is(err, pricing.ErrWeightRequired):
		return apperror.NewFieldError("weight", err.Error())
	case errors.Is(err, pricing.ErrNegativeItems), errors.Is(err, pricing.ErrItemsRequired):
		return apperror.NewFieldError("items", err.Error())
	case errors.Is(err, pricing.ErrNegativeDiscount):
		return apperror.NewFieldError("discount_amount", err.Error())
	case errors.Is(err, pricing.ErrNegativeSubtotal):
		return apperror.NewFieldError("subtotal", err.Error())
	case errors.Is(err, pricing.ErrNoService):
		return apperror.NewFieldError("service_id", err.Error())
	}
	return err
}

func actorRef(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// dateOnly drops the time of day, keeping the calendar date
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
