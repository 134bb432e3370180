package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const SourceAI = "ai"

// AIRecipe is a generated recipe an account chose to keep. It is private to
// its owner and carries no image or reviews.
type AIRecipe struct {
	ID          uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Ingredients Ingredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps       Steps       `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	CookingTime int         `json:"cookingTime"`
	Difficulty  string      `gorm:"size:20" json:"difficulty"`
	Category    string      `gorm:"size:20" json:"category"`
	Cuisine     string      `gorm:"size:20" json:"cuisine"`
	Source      string      `gorm:"size:20;not null;default:'ai'" json:"source"`
	CreatedByID uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"createdById"`
	CreatedBy   *Author     `gorm:"foreignKey:CreatedByID;-:migration" json:"createdBy,omitempty"`
}

func (AIRecipe) TableName() string {
	return "ai_recipes"
}

func (r *AIRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Source == "" {
		r.Source = SourceAI
	}
	return nil
}
