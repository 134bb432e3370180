package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
)

func TestDatabaseSetup(t *testing.T) {
	t.Run("should give each test its own database", func(t *testing.T) {
		first := SetupSQLite(t)
		second := SetupSQLite(t)

		CreateUser(t, first, "solo")

		var count int64
		require.NoError(t, second.Model(&models.User{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("should create fixtures with their options applied", func(t *testing.T) {
		db := SetupSQLite(t)
		admin := CreateUser(t, db, "root", AsAdmin(), Suspended())
		recipe := CreateRecipe(t, db, admin, "Porridge")

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", admin.ID).Error)
		assert.True(t, stored.IsAdmin())
		assert.True(t, stored.IsSuspended())
		assert.Equal(t, admin.ID, recipe.CreatedByID)
	})
}
