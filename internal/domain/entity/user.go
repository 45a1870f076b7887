package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a staff account that can sign in to the dashboard
type User struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Email     string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Password  string        `gorm:"size:255;not null" json:"-"`
	Role      enum.UserRole `gorm:"size:20;not null;default:'attendant'" json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsOwner reports whether the user has full access
func (u *User) IsOwner() bool {
	return u.Role == enum.UserRoleOwner
}
