package types

import (
	"github.com/pageza/recipebox/backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Image    string `json:"image" binding:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest only touches the fields that are present.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Username *string `json:"username" binding:"omitempty,min=1,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Image    *string `json:"image" binding:"omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// RecipeRequest is the body of recipe create and update calls.
type RecipeRequest struct {
	Title       string             `json:"title" binding:"required,max=255"`
	Description string             `json:"description"`
	Ingredients models.Ingredients `json:"ingredients" binding:"required,min=1,dive"`
	Steps       models.Steps       `json:"steps" binding:"required,min=1,dive"`
	Image       string             `json:"image" binding:"omitempty,url"`
	CookingTime int                `json:"cookingTime" binding:"required,gt=0"`
	Difficulty  string             `json:"difficulty" binding:"omitempty,difficulty"`
	Category    string             `json:"category" binding:"required,category"`
	Cuisine     string             `json:"cuisine" binding:"required,cuisine"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewSummary is returned after every review mutation.
type ReviewSummary struct {
	Message       string  `json:"message"`
	AverageRating float64 `json:"averageRating"`
	ReviewsCount  int     `json:"reviewsCount"`
}

type GenerateRecipeRequest struct {
	Ingredients []string `json:"ingredients"`
}

// SaveAIRecipeRequest is the body for keeping a generated recipe. Nested
// items are stored as produced by the generator.
type SaveAIRecipeRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Ingredients models.Ingredients `json:"ingredients" binding:"required,min=1"`
	Steps       models.Steps       `json:"steps" binding:"required,min=1"`
	CookingTime int                `json:"cookingTime" binding:"gte=0"`
	Difficulty  string             `json:"difficulty" binding:"omitempty,difficulty"`
	Category    string             `json:"category" binding:"omitempty,category"`
	Cuisine     string             `json:"cuisine" binding:"omitempty,cuisine"`
}

type ComplaintRequest struct {
	Content      string `json:"content" binding:"required,max=5000"`
	ReferenceURL string `json:"referenceUrl" binding:"omitempty,max=1024"`
}

type RoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=user admin"`
}

// Overview is the administrator dashboard summary.
type Overview struct {
	Users      int64 `json:"users"`
	Recipes    int64 `json:"recipes"`
	AIRecipes  int64 `json:"aiRecipes"`
	Complaints int64 `json:"complaints"`
}
