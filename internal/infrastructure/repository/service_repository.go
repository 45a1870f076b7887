package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	domainRepo "github.com/lukusafi/laundry-api/internal/domain/repository"
	"gorm.io/gorm"
)

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new catalog repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *serviceRepository) GetByName(ctx context.Context, name string) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).First(&service, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) List(ctx context.Context, activeOnly bool) ([]entity.Service, error) {
	var services []entity.Service
	query := r.db.WithContext(ctx).Model(&entity.Service{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_name ASC").Find(&services).Error
	return services, err
}
