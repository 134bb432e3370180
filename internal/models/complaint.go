package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is a report filed by an account for administrators to review.
type Complaint struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"userId"`
	User         *Author   `gorm:"foreignKey:UserID;-:migration" json:"user,omitempty"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ReferenceURL string    `gorm:"size:1024" json:"referenceUrl"`
}

func (Complaint) TableName() string {
	return "complaints"
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
