package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type AIHandler struct {
	aiService service.IAIRecipeService
	limiter   *middleware.RateLimiter
}

// NewAIHandler builds the AI recipe handler. limiter may be nil, in which
// case generation is not rate limited.
func NewAIHandler(aiService service.IAIRecipeService, limiter *middleware.RateLimiter) *AIHandler {
	return &AIHandler{aiService: aiService, limiter: limiter}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup, gate gin.HandlerFunc) {
	ai := router.Group("/ai", gate)
	{
		generate := []gin.HandlerFunc{}
		if h.limiter != nil {
			generate = append(generate, h.limiter.RateLimitMiddleware())
		}
		ai.POST("/recipe", append(generate, h.Generate)...)
		ai.POST("/recipe/save", h.Save)
		ai.GET("/recipes", h.List)
		ai.GET("/recipes/:id", h.Get)
		ai.DELETE("/recipes/:id", h.Delete)
	}
}

func (h *AIHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest("Ingredients array is required"))
		return
	}
	recipe, err := h.aiService.Generate(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *AIHandler) Save(c *gin.Context) {
	var req types.SaveAIRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest("Invalid recipe data"))
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	recipe, err := h.aiService.Save(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *AIHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	recipes, err := h.aiService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *AIHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	recipe, err := h.aiService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *AIHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	if err := h.aiService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Recipe deleted successfully"})
}
