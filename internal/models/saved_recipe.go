package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedRecipe is one entry in an account's saved-recipe set.
type SavedRecipe struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);primarykey;index" json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
