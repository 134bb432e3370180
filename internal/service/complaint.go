package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

type ComplaintService struct {
	db *gorm.DB
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db}
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, userID uuid.UUID, req *types.ComplaintRequest) (*models.Complaint, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.BadRequest("Complaint content is required")
	}

	complaint := &models.Complaint{
		UserID:       userID,
		Content:      content,
		ReferenceURL: strings.TrimSpace(req.ReferenceURL),
	}
	if err := s.db.WithContext(ctx).Omit("User").Create(complaint).Error; err != nil {
		return nil, apperrors.Server("Failed to create complaint", err)
	}

	logging.Ctx(ctx).Info().
		Str("complaint_id", complaint.ID.String()).
		Str("user_id", userID.String()).
		Msg("complaint filed")
	return complaint, nil
}

// ListMine returns the complaints filed by userID, newest first.
func (s *ComplaintService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Complaint, error) {
	complaints := []models.Complaint{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, apperrors.Server("Failed to fetch complaints", err)
	}
	return complaints, nil
}

// ListAll is the administrator view, with each filer's name and email.
func (s *ComplaintService) ListAll(ctx context.Context) ([]models.Complaint, error) {
	complaints := []models.Complaint{}
	err := s.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, apperrors.Server("Failed to fetch complaints", err)
	}
	return complaints, nil
}

func (s *ComplaintService) DeleteComplaint(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Complaint{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Server("Failed to delete complaint", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Complaint not found")
	}
	return nil
}
