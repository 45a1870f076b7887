package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
)

// ServiceRepository defines the interface for the price catalog
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	GetByName(ctx context.Context, name string) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	// List returns services ordered by display name, optionally only active ones
	List(ctx context.Context, activeOnly bool) ([]entity.Service, error)
}
