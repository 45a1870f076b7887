package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a laundromat customer.
// Phone is unique by convention only; the service checks it before insert.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	Phone     *string   `gorm:"size:50;index" json:"phone,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// PhoneOrEmpty returns the phone number or an empty string
func (c *Customer) PhoneOrEmpty() string {
	if c.Phone == nil {
		return ""
	}
	return *c.Phone
}

// EmailOrEmpty returns the email address or an empty string
func (c *Customer) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}
