package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/mocks"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

const pastaReply = `{
  "title": "Garlic Spaghetti",
  "ingredients": [{"name": "spaghetti", "quantity": "200 g"}],
  "steps": [{"instruction": "Boil"}, {"instruction": "Toss with garlic oil"}]
}`

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("should publish generated recipes for the owner and skip failures", func(t *testing.T) {
		db := testhelpers.SetupSQLite(t)
		owner := testhelpers.CreateUser(t, db, "chef")

		gen := new(mocks.MockTextGenerator)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "spaghetti")
		})).Return(pastaReply, nil)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("upstream down"))

		recipes := service.NewRecipeService(db)
		created := seed(ctx, service.NewAIRecipeService(db, gen), recipes, owner.ID, 2, 0)
		assert.Equal(t, 1, created)

		stored, err := recipes.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Garlic Spaghetti", stored[0].Title)
		assert.Equal(t, 30, stored[0].CookingTime)
		assert.Equal(t, "dinner", stored[0].Category)
		assert.Equal(t, "other", stored[0].Cuisine)
		assert.Equal(t, 2, stored[0].Steps[1].StepNumber)
		gen.AssertNumberOfCalls(t, "Generate", 2)
	})
}
