package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	reviewService service.IReviewService
	savedService  service.ISavedRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService, reviews service.IReviewService, saved service.ISavedRecipeService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipes,
		reviewService: reviews,
		savedService:  saved,
	}
}

// RegisterRoutes mounts the recipe, review and saved-recipe routes. The
// static segments (/saved, /user) sit next to /:id.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, gate gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/saved", gate, h.ListSaved)
		recipes.GET("/user/:userId", h.ListByOwner)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", gate, h.CreateRecipe)
		recipes.PUT("/:id", gate, h.UpdateRecipe)
		recipes.DELETE("/:id", gate, h.DeleteRecipe)

		recipes.GET("/:id/reviews", h.ListReviews)
		recipes.POST("/:id/review", gate, h.SubmitReview)
		recipes.DELETE("/:id/review", gate, h.DeleteReview)

		recipes.POST("/:id/save", gate, h.SaveRecipe)
		recipes.POST("/:id/unsave", gate, h.UnsaveRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := models.RecipeFilters{
		Category:   strings.ToLower(c.Query("category")),
		Cuisine:    strings.ToLower(c.Query("cuisine")),
		Difficulty: strings.ToLower(c.Query("difficulty")),
		Query:      c.Query("q"),
	}
	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListByOwner(c *gin.Context) {
	ownerID, ok := pathID(c, "userId", "User not found")
	if !ok {
		return
	}
	recipes, err := h.recipeService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), middleware.CurrentUser(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Recipe deleted successfully"})
}

func (h *RecipeHandler) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	reviews, err := h.reviewService.ListReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *RecipeHandler) SubmitReview(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	var req types.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	summary, err := h.reviewService.SubmitReview(c.Request.Context(), userID, id, req.Rating, strings.TrimSpace(req.Comment))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *RecipeHandler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	summary, err := h.reviewService.DeleteReview(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
