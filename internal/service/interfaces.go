package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// IUserService defines the interface for account profile operations
type IUserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	Me(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, targetID uuid.UUID, req *types.UpdateUserRequest) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, ownerID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDetail, error)
	ListRecipes(ctx context.Context, filters models.RecipeFilters) ([]models.Recipe, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, actor *models.User, id uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, actor *models.User, id uuid.UUID) error
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	SubmitReview(ctx context.Context, reviewerID, recipeID uuid.UUID, rating int, comment string) (*types.ReviewSummary, error)
	DeleteReview(ctx context.Context, reviewerID, recipeID uuid.UUID) (*types.ReviewSummary, error)
	ListReviews(ctx context.Context, recipeID uuid.UUID) ([]ReviewView, error)
}

// ISavedRecipeService defines the interface for the saved-recipe set
type ISavedRecipeService interface {
	Save(ctx context.Context, userID, recipeID uuid.UUID) ([]uuid.UUID, error)
	Unsave(ctx context.Context, userID, recipeID uuid.UUID) ([]uuid.UUID, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// IAIRecipeService defines the interface for AI recipe operations
type IAIRecipeService interface {
	Generate(ctx context.Context, ingredients []string) (*GeneratedRecipe, error)
	Save(ctx context.Context, ownerID uuid.UUID, req *types.SaveAIRecipeRequest) (*models.AIRecipe, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]models.AIRecipe, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.AIRecipe, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// IComplaintService defines the interface for complaint operations
type IComplaintService interface {
	CreateComplaint(ctx context.Context, userID uuid.UUID, req *types.ComplaintRequest) (*models.Complaint, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]models.Complaint, error)
	ListAll(ctx context.Context) ([]models.Complaint, error)
	DeleteComplaint(ctx context.Context, id uuid.UUID) error
}

// IAdminService defines the interface for moderation operations
type IAdminService interface {
	Overview(ctx context.Context) (*types.Overview, error)
	ListUsers(ctx context.Context, callerID uuid.UUID) ([]*models.User, error)
	SetStatus(ctx context.Context, callerID, targetID uuid.UUID, status models.Status) (*models.User, error)
	SetRole(ctx context.Context, callerID, targetID uuid.UUID, role models.Role) (*models.User, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListAIRecipes(ctx context.Context) ([]models.AIRecipe, error)
	DeleteAIRecipe(ctx context.Context, id uuid.UUID) error
}

// IImageService defines the interface for image uploads
type IImageService interface {
	Enabled() bool
	UploadImage(ctx context.Context, ownerID uuid.UUID, r io.Reader) (string, error)
}

var (
	_ IAuthService        = (*AuthService)(nil)
	_ IUserService        = (*UserService)(nil)
	_ IRecipeService      = (*RecipeService)(nil)
	_ IReviewService      = (*ReviewService)(nil)
	_ ISavedRecipeService = (*SavedRecipeService)(nil)
	_ IAIRecipeService    = (*AIRecipeService)(nil)
	_ IComplaintService   = (*ComplaintService)(nil)
	_ IAdminService       = (*AdminService)(nil)
	_ IImageService       = (*ImageService)(nil)
	_ TextGenerator       = (*ChatCompletionClient)(nil)
	_ AssetStore          = (*S3AssetStore)(nil)
)
