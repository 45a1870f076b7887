package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a laundry offering in the price catalog
type Service struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Name           string              `gorm:"size:120;uniqueIndex;not null" json:"name"`
	DisplayName    string              `gorm:"size:255;not null" json:"display_name"`
	Description    *string             `gorm:"type:text" json:"description,omitempty"`
	BasePrice      decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0" json:"base_price"`
	PricePerItem   decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price_per_item"`
	PricePerKg     decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price_per_kg"`
	RequiresWeight bool                `gorm:"not null;default:false" json:"requires_weight"`
	RequiresItems  bool                `gorm:"not null;default:false" json:"requires_items"`
	IsActive       bool                `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
