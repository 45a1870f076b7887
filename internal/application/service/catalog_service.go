package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// CatalogService manages the laundry services offered and their prices
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// ServiceInput represents the editable fields of a catalog service
type ServiceInput struct {
	DisplayName    string
	Description    *string
	BasePrice      decimal.Decimal
	PricePerItem   decimal.NullDecimal
	PricePerKg     decimal.NullDecimal
	RequiresWeight bool
	RequiresItems  bool
	IsActive       *bool
}

func (in *ServiceInput) validate() error {
	var errs []apperror.FieldError
	if in.BasePrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "base_price", Message: "must not be negative"})
	}
	if in.PricePerItem.Valid && in.PricePerItem.Decimal.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "price_per_item", Message: "must not be negative"})
	}
	if in.PricePerKg.Valid && in.PricePerKg.Decimal.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "price_per_kg", Message: "must not be negative"})
	}
	if utils.Slugify(in.DisplayName) == "" {
		errs = append(errs, apperror.FieldError{Field: "display_name", Message: "must contain letters or digits"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// ListActive returns services available for new orders
func (s *CatalogService) ListActive(ctx context.Context) ([]entity.Service, error) {
	return s.list(ctx, true)
}

// ListAll returns every service including disabled ones
func (s *CatalogService) ListAll(ctx context.Context) ([]entity.Service, error) {
	return s.list(ctx, false)
}

func (s *CatalogService) list(ctx context.Context, activeOnly bool) ([]entity.Service, error) {
	services, err := s.serviceRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []entity.Service{}
	}
	return services, nil
}

// GetService retrieves a service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// CreateService adds a service whose name is the slug of its display name
func (s *CatalogService) CreateService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	name := utils.Slugify(input.DisplayName)
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	svc := &entity.Service{
		Name:     name,
		IsActive: true,
	}
	input.apply(svc)

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService replaces a service's details and re-derives its name
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *ServiceInput) (*entity.Service, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	name := utils.Slugify(input.DisplayName)
	if err := s.ensureNameFree(ctx, name, svc.ID); err != nil {
		return nil, err
	}
	svc.Name = name
	input.apply(svc)

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// ToggleService flips whether the service can be used for new orders
func (s *CatalogService) ToggleService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.IsActive = !svc.IsActive
	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (in *ServiceInput) apply(svc *entity.Service) {
	svc.DisplayName = strings.TrimSpace(in.DisplayName)
	svc.Description = trimmed(in.Description)
	svc.BasePrice = in.BasePrice.Round(2)
	svc.PricePerItem = in.PricePerItem
	svc.PricePerKg = in.PricePerKg
	svc.RequiresWeight = in.RequiresWeight
	svc.RequiresItems = in.RequiresItems
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
}

func (s *CatalogService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.serviceRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("A service with this name already exists")
	}
	return nil
}
