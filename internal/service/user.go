package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

// UserService reads and edits account profiles.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to fetch user", err)
	}
	return user.Redacted(), nil
}

// Me returns the caller's account with its saved recipe ids.
func (s *UserService) Me(ctx context.Context, user *models.User) (*models.User, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.SavedRecipe{}).
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, apperrors.Server("Failed to fetch current user", err)
	}

	me := user.Redacted()
	me.SavedRecipes = ids
	if me.SavedRecipes == nil {
		me.SavedRecipes = []uuid.UUID{}
	}
	return me, nil
}

// UpdateUser edits the caller's own profile. Role and status are not
// editable here.
func (s *UserService) UpdateUser(ctx context.Context, actorID, targetID uuid.UUID, req *types.UpdateUserRequest) (*models.User, error) {
	if actorID != targetID {
		return nil, apperrors.Forbidden("Not authorized")
	}

	db := s.db.WithContext(ctx)
	var user models.User
	err := db.First(&user, "id = ?", targetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to update user", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.BadRequest("Name is required")
		}
		updates["name"] = name
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, apperrors.BadRequest("Username is required")
		}
		taken, err := exists(db.Model(&models.User{}).Where("username = ? AND id <> ?", username, targetID))
		if err != nil {
			return nil, apperrors.Server("Failed to update user", err)
		}
		if taken {
			return nil, apperrors.BadRequest("Username already taken")
		}
		updates["username"] = username
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, apperrors.BadRequest("Email is required")
		}
		taken, err := exists(db.Model(&models.User{}).Where("email = ? AND id <> ?", email, targetID))
		if err != nil {
			return nil, apperrors.Server("Failed to update user", err)
		}
		if taken {
			return nil, apperrors.BadRequest("Email already registered")
		}
		updates["email"] = email
	}
	if req.Image != nil {
		updates["image"] = strings.TrimSpace(*req.Image)
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			if isDuplicate(err) {
				email, _ := updates["email"].(string)
				return nil, duplicateAccountError(db, email, targetID)
			}
			return nil, apperrors.Server("Failed to update user", err)
		}
	}
	return s.GetUser(ctx, targetID)
}
