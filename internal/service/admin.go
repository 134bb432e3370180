package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

// AdminService holds the moderation operations. Callers must already have
// passed the administrator check.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) Overview(ctx context.Context) (*types.Overview, error) {
	db := s.db.WithContext(ctx)
	var o types.Overview
	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.User{}, &o.Users},
		{&models.Recipe{}, &o.Recipes},
		{&models.AIRecipe{}, &o.AIRecipes},
		{&models.Complaint{}, &o.Complaints},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, apperrors.Server("Server error", err)
		}
	}
	return &o, nil
}

// ListUsers returns every account except the caller's, newest first.
func (s *AdminService) ListUsers(ctx context.Context, callerID uuid.UUID) ([]*models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("id <> ?", callerID).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Server("Server error", err)
	}

	out := make([]*models.User, 0, len(users))
	for i := range users {
		out = append(out, users[i].Redacted())
	}
	return out, nil
}

// SetStatus suspends or reactivates an account. Suspension applies on the
// account's next gated request.
func (s *AdminService) SetStatus(ctx context.Context, callerID, targetID uuid.UUID, status models.Status) (*models.User, error) {
	if status == models.StatusSuspended && callerID == targetID {
		return nil, apperrors.BadRequest("You cannot suspend your own account")
	}

	db := s.db.WithContext(ctx)
	user, err := s.findUser(db, targetID)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return nil, apperrors.BadRequest("User is already " + string(status))
	}

	if err := db.Model(user).Update("status", status).Error; err != nil {
		return nil, apperrors.Server("Server error", err)
	}
	user.Status = status

	logging.Ctx(ctx).Info().
		Str("admin_id", callerID.String()).
		Str("user_id", targetID.String()).
		Str("status", string(status)).
		Msg("account status changed")
	return user.Redacted(), nil
}

func (s *AdminService) SetRole(ctx context.Context, callerID, targetID uuid.UUID, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, apperrors.BadRequest("Invalid role")
	}
	if callerID == targetID && role != models.RoleAdmin {
		return nil, apperrors.BadRequest("You cannot remove your own administrator role")
	}

	db := s.db.WithContext(ctx)
	user, err := s.findUser(db, targetID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(user).Update("role", role).Error; err != nil {
		return nil, apperrors.Server("Server error", err)
	}
	user.Role = role

	logging.Ctx(ctx).Info().
		Str("admin_id", callerID.String()).
		Str("user_id", targetID.String()).
		Str("role", string(role)).
		Msg("account role changed")
	return user.Redacted(), nil
}

// DeleteRecipe removes any recipe regardless of owner.
func (s *AdminService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return deleteRecipe(s.db.WithContext(ctx), id)
}

// ListAIRecipes returns every saved AI recipe with the owner's username.
func (s *AdminService) ListAIRecipes(ctx context.Context) ([]models.AIRecipe, error) {
	recipes := []models.AIRecipe{}
	err := s.db.WithContext(ctx).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, apperrors.Server("Server error", err)
	}
	return recipes, nil
}

func (s *AdminService) DeleteAIRecipe(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.AIRecipe{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Server("Server error", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("AI recipe not found")
	}
	return nil
}

func (s *AdminService) findUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Server("Server error", err)
	}
	return &user, nil
}
