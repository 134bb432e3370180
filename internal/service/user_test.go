package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

func strPtr(s string) *string { return &s }

func TestUserService(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, bob, "Tacos")

	svc := service.NewUserService(db)

	t.Run("should include saved recipe ids in me", func(t *testing.T) {
		me, err := svc.Me(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, me.SavedRecipes)
		assert.NotNil(t, me.SavedRecipes)

		_, err = service.NewSavedRecipeService(db).Save(ctx, alice.ID, recipe.ID)
		require.NoError(t, err)

		me, err = svc.Me(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{recipe.ID}, me.SavedRecipes)
		assert.Empty(t, me.PasswordHash)
	})

	t.Run("should fetch public records", func(t *testing.T) {
		user, err := svc.GetUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)

		_, err = svc.GetUser(ctx, uuid.New())
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})

	t.Run("should update only your own profile", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, alice.ID, bob.ID, &types.UpdateUserRequest{Name: strPtr("Mallory")})
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

		user, err := svc.UpdateUser(ctx, alice.ID, alice.ID, &types.UpdateUserRequest{
			Name:  strPtr("Alice Liddell"),
			Image: strPtr("https://example.com/a.png"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice Liddell", user.Name)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "https://example.com/a.png", user.Image)
	})

	t.Run("should reject a taken username", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, alice.ID, alice.ID, &types.UpdateUserRequest{Username: strPtr("bob")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Username already taken")
	})

	t.Run("should reject blank name and username", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, alice.ID, alice.ID, &types.UpdateUserRequest{Name: strPtr("   ")})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
		assert.Contains(t, err.Error(), "Name is required")

		_, err = svc.UpdateUser(ctx, alice.ID, alice.ID, &types.UpdateUserRequest{Username: strPtr("   ")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Username is required")

		_, err = svc.UpdateUser(ctx, bob.ID, bob.ID, &types.UpdateUserRequest{Username: strPtr(" ")})
		assert.Contains(t, err.Error(), "Username is required")

		stored, err := svc.GetUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", stored.Username)
		assert.NotEmpty(t, stored.Name)
	})
}
