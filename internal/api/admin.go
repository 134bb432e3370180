package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// StatusChangeResponse confirms a suspension or reactivation.
type StatusChangeResponse struct {
	Message string        `json:"message"`
	UserID  uuid.UUID     `json:"userId"`
	Status  models.Status `json:"status"`
}

// DeletedRecipeResponse confirms an administrator deletion.
type DeletedRecipeResponse struct {
	Message  string    `json:"message"`
	RecipeID uuid.UUID `json:"recipeId"`
}

type AdminHandler struct {
	adminService service.IAdminService
}

func NewAdminHandler(adminService service.IAdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, gate gin.HandlerFunc) {
	admin := router.Group("/admin", gate, middleware.Require(middleware.AdminOnly))
	{
		admin.GET("/overview", h.Overview)
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/suspend", h.SuspendUser)
		admin.PUT("/users/:id/activate", h.ActivateUser)
		admin.PUT("/users/:id/role", h.SetRole)
		admin.DELETE("/recipes/:id", h.DeleteRecipe)
		admin.GET("/ai-recipes", h.ListAIRecipes)
		admin.DELETE("/ai-recipes/:id", h.DeleteAIRecipe)
	}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.adminService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	users, err := h.adminService.ListUsers(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	h.setStatus(c, models.StatusSuspended, "User suspended successfully")
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setStatus(c, models.StatusActive, "User activated successfully")
}

func (h *AdminHandler) setStatus(c *gin.Context, status models.Status, message string) {
	id, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	callerID, _ := middleware.CurrentUserID(c)
	user, err := h.adminService.SetStatus(c.Request.Context(), callerID, id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatusChangeResponse{Message: message, UserID: user.ID, Status: user.Status})
}

func (h *AdminHandler) SetRole(c *gin.Context) {
	id, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	var req types.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	callerID, _ := middleware.CurrentUserID(c)
	user, err := h.adminService.SetRole(c.Request.Context(), callerID, id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	if err := h.adminService.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeletedRecipeResponse{Message: "Recipe deleted successfully by admin", RecipeID: id})
}

func (h *AdminHandler) ListAIRecipes(c *gin.Context) {
	recipes, err := h.adminService.ListAIRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *AdminHandler) DeleteAIRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "AI recipe not found")
	if !ok {
		return
	}
	if err := h.adminService.DeleteAIRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeletedRecipeResponse{Message: "AI recipe deleted successfully", RecipeID: id})
}
