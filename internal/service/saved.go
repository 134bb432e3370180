package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/models"
)

// SavedRecipeService manages each account's saved-recipe set.
type SavedRecipeService struct {
	db *gorm.DB
}

func NewSavedRecipeService(db *gorm.DB) *SavedRecipeService {
	return &SavedRecipeService{db: db}
}

// Save adds a recipe to the set and returns the resulting ids.
func (s *SavedRecipeService) Save(ctx context.Context, userID, recipeID uuid.UUID) ([]uuid.UUID, error) {
	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	err := db.Select("id").First(&recipe, "id = ?", recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to save recipe", err)
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SavedRecipe{UserID: userID, RecipeID: recipeID})
	if result.Error != nil {
		return nil, apperrors.Server("Failed to save recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.BadRequest("Recipe already saved")
	}
	return s.ids(db, userID)
}

// Unsave removes a recipe from the set. Removing an absent entry is fine.
func (s *SavedRecipeService) Unsave(ctx context.Context, userID, recipeID uuid.UUID) ([]uuid.UUID, error) {
	db := s.db.WithContext(ctx)
	err := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.SavedRecipe{}).Error
	if err != nil {
		return nil, apperrors.Server("Failed to unsave recipe", err)
	}
	return s.ids(db, userID)
}

// List returns the saved recipes themselves, most recently saved first.
func (s *SavedRecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := withCreator(s.db.WithContext(ctx)).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, apperrors.Server("Failed to fetch saved recipes", err)
	}
	return recipes, nil
}

func (s *SavedRecipeService) ids(db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := db.Model(&models.SavedRecipe{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, apperrors.Server("Failed to fetch saved recipes", err)
	}
	return ids, nil
}
