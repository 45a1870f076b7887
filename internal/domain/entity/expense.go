package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a business outgoing recorded by the owner
type Expense struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Category        enum.ExpenseCategory `gorm:"size:120;not null;index" json:"category"`
	Description     string               `gorm:"type:text" json:"description"`
	Amount          decimal.Decimal      `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date            time.Time            `gorm:"type:date;not null;index" json:"date"`
	TransactionCode *string              `gorm:"size:100" json:"transaction_code,omitempty"`
	UpdatedBy       *uuid.UUID           `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
