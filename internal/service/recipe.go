package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

// ReviewView is a review with the reviewer's public fields in place of the id.
type ReviewView struct {
	User      *models.Author `json:"user"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"createdAt"`
}

// RecipeDetail is a recipe with populated reviews.
type RecipeDetail struct {
	*models.Recipe
	Reviews      []ReviewView `json:"reviews"`
	ReviewsCount int          `json:"reviewsCount"`
}

var editableRecipeColumns = []string{
	"title", "description", "ingredients", "steps", "image",
	"cooking_time", "difficulty", "category", "cuisine", "updated_at",
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// withCreator populates the owner's handle and avatar.
func withCreator(db *gorm.DB) *gorm.DB {
	return db.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username", "image")
	})
}

func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	recipe := &models.Recipe{CreatedByID: ownerID}
	applyRecipeRequest(recipe, req)

	if err := s.db.WithContext(ctx).Omit("CreatedBy").Create(recipe).Error; err != nil {
		return nil, apperrors.Server("Failed to create recipe", err)
	}

	logging.Ctx(ctx).Info().Str("recipe_id", recipe.ID.String()).Msg("recipe created")
	return recipe, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDetail, error) {
	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	err := withCreator(db).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to fetch recipe", err)
	}

	reviews, err := populateReviews(db, recipe.Reviews)
	if err != nil {
		return nil, apperrors.Server("Failed to fetch recipe", err)
	}
	return &RecipeDetail{Recipe: &recipe, Reviews: reviews, ReviewsCount: len(reviews)}, nil
}

// ListRecipes returns public recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, filters models.RecipeFilters) ([]models.Recipe, error) {
	query := withCreator(s.db.WithContext(ctx))

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Cuisine != "" {
		query = query.Where("cuisine = ?", filters.Cuisine)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if q := strings.TrimSpace(filters.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	recipes := []models.Recipe{}
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, apperrors.Server("Failed to fetch recipes", err)
	}
	return recipes, nil
}

func (s *RecipeService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := withCreator(s.db.WithContext(ctx)).
		Where("created_by_id = ?", ownerID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, apperrors.Server("Failed to fetch user recipes", err)
	}
	return recipes, nil
}

// UpdateRecipe replaces the editable fields. Reviews, average rating and
// owner are never touched.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actor *models.User, id uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)

	recipe, err := s.findForMutation(db, actor, id)
	if err != nil {
		return nil, err
	}

	applyRecipeRequest(recipe, req)
	if err := db.Model(recipe).Select(editableRecipeColumns).Updates(recipe).Error; err != nil {
		return nil, apperrors.Server("Failed to update recipe", err)
	}

	var updated models.Recipe
	if err := withCreator(db).First(&updated, "id = ?", id).Error; err != nil {
		return nil, apperrors.Server("Failed to update recipe", err)
	}
	return &updated, nil
}

// DeleteRecipe removes the recipe and every saved-set entry pointing at it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actor *models.User, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	if _, err := s.findForMutation(db, actor, id); err != nil {
		return err
	}
	if err := deleteRecipe(db, id); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Str("recipe_id", id.String()).
		Str("actor_id", actor.ID.String()).
		Msg("recipe deleted")
	return nil
}

// findForMutation loads a recipe the actor may change: its owner or an
// administrator.
func (s *RecipeService) findForMutation(db *gorm.DB, actor *models.User, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to fetch recipe", err)
	}
	if !recipe.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Not authorized")
	}
	return &recipe, nil
}

func deleteRecipe(db *gorm.DB, id uuid.UUID) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.SavedRecipe{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("Recipe not found")
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return err
		}
		return apperrors.Server("Failed to delete recipe", err)
	}
	return nil
}

func applyRecipeRequest(recipe *models.Recipe, req *types.RecipeRequest) {
	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Description = strings.TrimSpace(req.Description)
	recipe.Ingredients = req.Ingredients
	recipe.Steps = req.Steps.Numbered()
	recipe.Image = strings.TrimSpace(req.Image)
	recipe.CookingTime = req.CookingTime
	recipe.Difficulty = req.Difficulty
	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DefaultDifficulty
	}
	recipe.Category = req.Category
	recipe.Cuisine = req.Cuisine
}

// populateReviews swaps reviewer ids for their public fields.
func populateReviews(db *gorm.DB, reviews models.Reviews) ([]ReviewView, error) {
	ids := make([]uuid.UUID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}

	authors := map[uuid.UUID]*models.Author{}
	if len(ids) > 0 {
		var found []models.Author
		if err := db.Select("id", "username", "image").Where("id IN ?", ids).Find(&found).Error; err != nil {
			return nil, err
		}
		for i := range found {
			authors[found[i].ID] = &found[i]
		}
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		author, ok := authors[r.UserID]
		if !ok {
			author = &models.Author{ID: r.UserID}
		}
		views = append(views, ReviewView{
			User:      author,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return views, nil
}
