package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

func TestRecipeRoutes(t *testing.T) {
	t.Run("should create and fetch a recipe", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")

		w := app.do(http.MethodPost, "/api/v1/recipes", app.token(owner), validRecipeBody())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created := decode[models.Recipe](t, w)
		assert.Equal(t, owner.ID, created.CreatedByID)

		w = app.do(http.MethodGet, "/api/v1/recipes/"+created.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "Tomato Soup", body["title"])
		assert.EqualValues(t, 0, body["reviewsCount"])
	})

	t.Run("should reject invalid recipe bodies", func(t *testing.T) {
		app := newTestApp(t)
		token := app.token(testhelpers.CreateUser(t, app.db, "chef"))

		body := validRecipeBody()
		body["cuisine"] = "martian"
		w := app.do(http.MethodPost, "/api/v1/recipes", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid cuisine", messageOf(t, w))

		body = validRecipeBody()
		body["ingredients"] = []any{}
		w = app.do(http.MethodPost, "/api/v1/recipes", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should filter the public list", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")
		testhelpers.CreateRecipe(t, app.db, owner, "Garlic Bread")
		testhelpers.CreateRecipe(t, app.db, owner, "Lemon Tart")

		w := app.do(http.MethodGet, "/api/v1/recipes?q=garlic", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		recipes := decode[[]models.Recipe](t, w)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Garlic Bread", recipes[0].Title)

		w = app.do(http.MethodGet, "/api/v1/recipes/user/"+owner.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]models.Recipe](t, w), 2)
	})

	t.Run("should answer 404 for unknown and malformed ids", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(http.MethodGet, "/api/v1/recipes/00000000-0000-0000-0000-000000000000", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = app.do(http.MethodGet, "/api/v1/recipes/not-an-id", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Recipe not found", messageOf(t, w))
	})

	t.Run("should only let the owner or an admin change a recipe", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")
		stranger := testhelpers.CreateUser(t, app.db, "stranger")
		admin := testhelpers.CreateUser(t, app.db, "boss", testhelpers.AsAdmin())
		recipe := testhelpers.CreateRecipe(t, app.db, owner, "Stew")
		path := "/api/v1/recipes/" + recipe.ID.String()

		w := app.do(http.MethodPut, path, app.token(stranger), validRecipeBody())
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = app.do(http.MethodPut, path, app.token(owner), validRecipeBody())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Tomato Soup", decode[models.Recipe](t, w).Title)

		w = app.do(http.MethodDelete, path, app.token(stranger), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = app.do(http.MethodDelete, path, app.token(admin), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Recipe deleted successfully", messageOf(t, w))

		assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, path, "", nil).Code)
	})
}

func TestReviewRoutes(t *testing.T) {
	t.Run("should keep the average in step with the review set", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")
		alice := app.token(testhelpers.CreateUser(t, app.db, "alice"))
		bob := app.token(testhelpers.CreateUser(t, app.db, "bob"))
		recipe := testhelpers.CreateRecipe(t, app.db, owner, "Risotto")
		path := "/api/v1/recipes/" + recipe.ID.String() + "/review"

		steps := []struct {
			method  string
			token   string
			body    any
			average float64
			count   int
		}{
			{http.MethodPost, alice, map[string]any{"rating": 4}, 4, 1},
			{http.MethodPost, bob, map[string]any{"rating": 3, "comment": "ok"}, 3.5, 2},
			{http.MethodPost, alice, map[string]any{"rating": 2}, 2.5, 2},
			{http.MethodDelete, bob, nil, 2, 1},
		}
		for _, step := range steps {
			w := app.do(step.method, path, step.token, step.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			summary := decode[types.ReviewSummary](t, w)
			assert.InDelta(t, step.average, summary.AverageRating, 1e-9)
			assert.Equal(t, step.count, summary.ReviewsCount)
		}

		w := app.do(http.MethodGet, "/api/v1/recipes/"+recipe.ID.String()+"/reviews", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]map[string]any](t, w), 1)
	})

	t.Run("should reject out of range ratings without changing anything", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")
		token := app.token(testhelpers.CreateUser(t, app.db, "alice"))
		recipe := testhelpers.CreateRecipe(t, app.db, owner, "Risotto")
		path := "/api/v1/recipes/" + recipe.ID.String() + "/review"

		for _, rating := range []int{0, 6, -1} {
			w := app.do(http.MethodPost, path, token, map[string]any{"rating": rating})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Rating must be between 1 and 5", messageOf(t, w))
		}

		var stored models.Recipe
		require.NoError(t, app.db.First(&stored, "id = ?", recipe.ID).Error)
		assert.Empty(t, stored.Reviews)
		assert.Zero(t, stored.AverageRating)
	})

	t.Run("should refuse a review of one's own recipe", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")
		recipe := testhelpers.CreateRecipe(t, app.db, owner, "Risotto")

		w := app.do(http.MethodPost, "/api/v1/recipes/"+recipe.ID.String()+"/review", app.token(owner), map[string]any{"rating": 5})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSavedRoutes(t *testing.T) {
	t.Run("should route /recipes/saved to the saved list", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")
		reader := app.token(testhelpers.CreateUser(t, app.db, "reader"))
		first := testhelpers.CreateRecipe(t, app.db, owner, "First")
		second := testhelpers.CreateRecipe(t, app.db, owner, "Second")

		for _, r := range []*models.Recipe{first, second} {
			w := app.do(http.MethodPost, "/api/v1/recipes/"+r.ID.String()+"/save", reader, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w := app.do(http.MethodGet, "/api/v1/recipes/saved", reader, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		saved := decode[[]models.Recipe](t, w)
		assert.Len(t, saved, 2)
	})

	t.Run("should reject a second save and ignore a repeated unsave", func(t *testing.T) {
		app := newTestApp(t)
		owner := testhelpers.CreateUser(t, app.db, "chef")
		reader := app.token(testhelpers.CreateUser(t, app.db, "reader"))
		recipe := testhelpers.CreateRecipe(t, app.db, owner, "Soup")
		base := "/api/v1/recipes/" + recipe.ID.String()

		require.Equal(t, http.StatusOK, app.do(http.MethodPost, base+"/save", reader, nil).Code)

		w := app.do(http.MethodPost, base+"/save", reader, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Recipe already saved", messageOf(t, w))

		for i := 0; i < 2; i++ {
			w = app.do(http.MethodPost, base+"/unsave", reader, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, decode[map[string]any](t, w)["savedRecipes"])
		}
	})

	t.Run("should answer 404 when saving an unknown recipe", func(t *testing.T) {
		app := newTestApp(t)
		reader := app.token(testhelpers.CreateUser(t, app.db, "reader"))

		w := app.do(http.MethodPost, "/api/v1/recipes/00000000-0000-0000-0000-000000000000/save", reader, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
