package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

// ReviewService persists review mutations. Each mutation runs in its own
// transaction holding a row lock on the recipe, so concurrent reviews of
// the same recipe are applied one after another instead of overwriting
// each other.
type ReviewService struct {
	db               *gorm.DB
	forbidSelfReview bool
	now              func() time.Time
}

func NewReviewService(db *gorm.DB, forbidSelfReview bool) *ReviewService {
	return &ReviewService{
		db:               db,
		forbidSelfReview: forbidSelfReview,
		now:              time.Now,
	}
}

// SubmitReview adds the reviewer's review or overwrites it in place.
func (s *ReviewService) SubmitReview(ctx context.Context, reviewerID, recipeID uuid.UUID, rating int, comment string) (*types.ReviewSummary, error) {
	if !models.ValidRating(rating) {
		return nil, apperrors.BadRequest("Rating must be between 1 and 5")
	}

	recipe, err := s.mutate(ctx, recipeID, func(recipe *models.Recipe) error {
		if s.forbidSelfReview && recipe.OwnedBy(reviewerID) {
			return apperrors.Forbidden("You cannot review your own recipe")
		}
		recipe.UpsertReview(reviewerID, rating, comment, s.now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewMutations.WithLabelValues("upsert").Inc()
	logging.Ctx(ctx).Info().
		Str("recipe_id", recipeID.String()).
		Str("user_id", reviewerID.String()).
		Int("rating", rating).
		Float64("average_rating", recipe.AverageRating).
		Msg("review submitted")

	return &types.ReviewSummary{
		Message:       "Review submitted successfully",
		AverageRating: recipe.AverageRating,
		ReviewsCount:  len(recipe.Reviews),
	}, nil
}

// DeleteReview removes the reviewer's review. Deleting a review that does
// not exist succeeds without changing anything.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewerID, recipeID uuid.UUID) (*types.ReviewSummary, error) {
	var removed bool
	recipe, err := s.mutate(ctx, recipeID, func(recipe *models.Recipe) error {
		removed = recipe.RemoveReview(reviewerID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if removed {
		metrics.ReviewMutations.WithLabelValues("delete").Inc()
	}

	return &types.ReviewSummary{
		Message:       "Review deleted successfully",
		AverageRating: recipe.AverageRating,
		ReviewsCount:  len(recipe.Reviews),
	}, nil
}

// ListReviews returns the reviews of a recipe with reviewer handles filled in.
func (s *ReviewService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]ReviewView, error) {
	db := s.db.WithContext(ctx)

	var recipe models.Recipe
	err := db.Select("id", "reviews").First(&recipe, "id = ?", recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to fetch reviews", err)
	}

	views, err := populateReviews(db, recipe.Reviews)
	if err != nil {
		return nil, apperrors.Server("Failed to fetch reviews", err)
	}
	return views, nil
}

// mutate loads the recipe under a row lock, applies fn and writes back the
// review collection together with its recomputed average.
func (s *ReviewService) mutate(ctx context.Context, recipeID uuid.UUID, fn func(*models.Recipe) error) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&recipe, "id = ?", recipeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Recipe not found")
		}
		if err != nil {
			return err
		}

		if err := fn(&recipe); err != nil {
			return err
		}
		recipe.RecalculateAverageRating()

		return tx.Model(&recipe).
			Select("reviews", "average_rating", "updated_at").
			Updates(&recipe).Error
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Server("Failed to update reviews", err)
	}
	return &recipe, nil
}
