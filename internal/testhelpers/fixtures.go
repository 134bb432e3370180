package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/models"
)

// TestPassword is the plain-text password of every fixture account.
const TestPassword = "password123"

// UserOption customizes a fixture account before it is stored.
type UserOption func(*models.User)

func AsAdmin() UserOption {
	return func(u *models.User) { u.Role = models.RoleAdmin }
}

func Suspended() UserOption {
	return func(u *models.User) { u.Status = models.StatusSuspended }
}

// CreateUser stores an account with username, username@example.com and
// TestPassword.
func CreateUser(t *testing.T, db *gorm.DB, username string, opts ...UserOption) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateRecipe stores a minimal valid recipe owned by owner.
func CreateRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:       title,
		Description: "A " + title,
		Ingredients: models.Ingredients{{Name: "salt", Quantity: "1 pinch"}},
		Steps:       models.Steps{{StepNumber: 1, Instruction: "Cook it"}},
		CookingTime: 10,
		Category:    "dinner",
		Cuisine:     "other",
		CreatedByID: owner.ID,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
