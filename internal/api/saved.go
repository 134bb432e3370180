package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/middleware"
)

// SavedRecipesResponse confirms a change to the saved set.
type SavedRecipesResponse struct {
	Message      string      `json:"message"`
	SavedRecipes []uuid.UUID `json:"savedRecipes"`
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	ids, err := h.savedService.Save(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SavedRecipesResponse{Message: "Recipe saved successfully", SavedRecipes: ids})
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	ids, err := h.savedService.Unsave(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SavedRecipesResponse{Message: "Recipe removed from saved recipes", SavedRecipes: ids})
}

func (h *RecipeHandler) ListSaved(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	recipes, err := h.savedService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}
