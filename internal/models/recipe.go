package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	Difficulties = []string{"easy", "medium", "hard"}
	Categories   = []string{"breakfast", "lunch", "dinner", "snack", "dessert", "beverage"}
	Cuisines     = []string{"indian", "italian", "chinese", "mexican", "american", "thai", "other"}
)

const DefaultDifficulty = "easy"

func IsDifficulty(s string) bool { return slices.Contains(Difficulties, s) }
func IsCategory(s string) bool   { return slices.Contains(Categories, s) }
func IsCuisine(s string) bool    { return slices.Contains(Cuisines, s) }

type Recipe struct {
	ID            uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	Title         string      `gorm:"size:255;not null" json:"title"`
	Description   string      `gorm:"type:text" json:"description"`
	Ingredients   Ingredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps         Steps       `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Image         string      `gorm:"size:512" json:"image"`
	CookingTime   int         `gorm:"not null" json:"cookingTime"`
	Difficulty    string      `gorm:"size:20;not null;default:'easy'" json:"difficulty"`
	Category      string      `gorm:"size:20;index" json:"category"`
	Cuisine       string      `gorm:"size:20;index" json:"cuisine"`
	Reviews       Reviews     `gorm:"type:jsonb;not null;default:'[]'" json:"reviews"`
	AverageRating float64     `gorm:"not null;default:0" json:"averageRating"`
	CreatedByID   uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"createdById"`
	CreatedBy     *Author     `gorm:"foreignKey:CreatedByID;-:migration" json:"createdBy,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	return nil
}

// OwnedBy reports whether userID created the recipe.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.CreatedByID == userID
}

// RecipeFilters narrows public recipe listings.
type RecipeFilters struct {
	Category   string
	Cuisine    string
	Difficulty string
	Query      string
}
