package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestUserDefaults(t *testing.T) {
	db := setupTestDB(t)

	user := &User{Name: "Ada", Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	var stored User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, RoleUser, stored.Role)
	assert.Equal(t, StatusActive, stored.Status)
	assert.False(t, stored.IsAdmin())
	assert.False(t, stored.IsSuspended())
}

func TestUsernameAndEmailAreUnique(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&User{Name: "A", Username: "dup", Email: "a@example.com", PasswordHash: "x"}).Error)

	assert.Error(t, db.Create(&User{Name: "B", Username: "dup", Email: "b@example.com", PasswordHash: "x"}).Error)
	assert.Error(t, db.Create(&User{Name: "C", Username: "other", Email: "a@example.com", PasswordHash: "x"}).Error)
}

func TestRedactedDropsPasswordHash(t *testing.T) {
	user := User{Name: "A", PasswordHash: "secret"}
	redacted := user.Redacted()
	assert.Empty(t, redacted.PasswordHash)
	assert.Equal(t, "secret", user.PasswordHash)
}

func TestRecipeJSONColumnsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	owner := &User{Name: "Owner", Username: "owner", Email: "owner@example.com", PasswordHash: "x", Image: "https://img/o.png"}
	require.NoError(t, db.Create(owner).Error)

	recipe := &Recipe{
		Title:       "Dal",
		Ingredients: Ingredients{{Name: "lentils", Quantity: "1 cup"}},
		Steps:       Steps{{Instruction: "Boil"}, {Instruction: "Temper"}}.Numbered(),
		CookingTime: 30,
		Category:    "dinner",
		Cuisine:     "indian",
		CreatedByID: owner.ID,
	}
	recipe.UpsertReview(owner.ID, 4, "tasty", time.Now().UTC())
	require.NoError(t, db.Create(recipe).Error)

	var stored Recipe
	require.NoError(t, db.Preload("CreatedBy").First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, DefaultDifficulty, stored.Difficulty)
	assert.Equal(t, recipe.Ingredients, stored.Ingredients)
	require.Len(t, stored.Steps, 2)
	assert.Equal(t, 2, stored.Steps[1].StepNumber)
	require.Len(t, stored.Reviews, 1)
	assert.Equal(t, 4, stored.Reviews[0].Rating)
	assert.Equal(t, 4.0, stored.AverageRating)
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, "owner", stored.CreatedBy.Username)
}

func TestEmptyReviewsStoredAsEmptyList(t *testing.T) {
	db := setupTestDB(t)
	recipe := &Recipe{Title: "Toast", CookingTime: 2, CreatedByID: uuid.New()}
	require.NoError(t, db.Create(recipe).Error)

	var stored Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.NotNil(t, stored.Reviews)
	assert.Empty(t, stored.Reviews)
	assert.Equal(t, 0.0, stored.AverageRating)
}

func TestAIRecipeDefaultsSource(t *testing.T) {
	db := setupTestDB(t)
	r := &AIRecipe{Title: "Gen", CreatedByID: uuid.New()}
	require.NoError(t, db.Create(r).Error)
	assert.Equal(t, SourceAI, r.Source)
}

func TestEnumHelpers(t *testing.T) {
	assert.True(t, IsDifficulty("hard"))
	assert.False(t, IsDifficulty("extreme"))
	assert.True(t, IsCategory("beverage"))
	assert.False(t, IsCategory("brunch"))
	assert.True(t, IsCuisine("other"))
	assert.False(t, IsCuisine("french"))
}
