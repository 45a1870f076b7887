package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order represents one laundry job for a customer
type Order struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	ServiceID       *uuid.UUID         `gorm:"type:uuid;index" json:"service_id,omitempty"`
	ServiceType     string             `gorm:"size:255;not null" json:"service_type"`
	OrderDate       time.Time          `gorm:"type:date;not null;index" json:"order_date"`
	Weight          decimal.Decimal    `gorm:"type:numeric(10,2);not null;default:0" json:"weight"`
	Items           int                `gorm:"not null;default:0" json:"items"`
	Subtotal        decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"subtotal"`
	DiscountAmount  decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"discount_amount"`
	DiscountReason  *string            `gorm:"type:text" json:"discount_reason,omitempty"`
	TotalAmount     decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	PaymentStatus   enum.PaymentStatus `gorm:"size:20;not null;default:'pending';index" json:"payment_status"`
	Status          enum.OrderStatus   `gorm:"size:20;not null;default:'received';index" json:"status"`
	TransactionCode *string            `gorm:"size:100" json:"transaction_code,omitempty"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	CompletedAt     *time.Time         `json:"completed_at,omitempty"`
	UpdatedBy       *uuid.UUID         `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	// Relationships
	Customer      *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	UpdatedByUser *User     `gorm:"foreignKey:UpdatedBy" json:"updated_by_user,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsPaid reports whether the order counts towards revenue
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == enum.PaymentStatusPaid
}

// DateKey returns the order date as YYYY-MM-DD
func (o *Order) DateKey() string {
	return o.OrderDate.Format(DateLayout)
}

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"
