package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record reports, likes and comments reference.
// A user's city/state is their current home; reports keep their own
// city/state snapshot taken at submission time.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	State     string    `gorm:"not null;size:100" json:"state"`
	City      string    `gorm:"not null;size:100;index" json:"city"`
	Role      string    `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
