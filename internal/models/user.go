package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role distinguishes standard accounts from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status is the moderation state of an account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Image        string    `gorm:"size:512" json:"image"`
	Role         Role      `gorm:"size:20;not null;default:'user'" json:"userType"`
	Status       Status    `gorm:"size:20;not null;default:'active'" json:"status"`

	// SavedRecipes is filled from saved_recipes when the account is read by its owner.
	SavedRecipes []uuid.UUID `gorm:"-" json:"savedRecipes,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsSuspended() bool {
	return u.Status == StatusSuspended
}

// Redacted returns a copy without the password hash.
func (u User) Redacted() *User {
	u.PasswordHash = ""
	return &u
}

// Author is the public projection of a user that gets attached to recipes,
// reviews and complaints. Only the selected columns are populated.
type Author struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name     string    `json:"name,omitempty"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
	Image    string    `json:"image,omitempty"`
}

func (Author) TableName() string {
	return "users"
}
