package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type ComplaintHandler struct {
	complaintService service.IComplaintService
}

func NewComplaintHandler(complaintService service.IComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

func (h *ComplaintHandler) RegisterRoutes(router *gin.RouterGroup, gate gin.HandlerFunc) {
	complaints := router.Group("/complaints", gate)
	{
		complaints.POST("", h.CreateComplaint)
		complaints.GET("/my", h.ListMine)
		complaints.GET("", middleware.Require(middleware.AdminOnly), h.ListAll)
		complaints.DELETE("/:id", middleware.Require(middleware.AdminOnly), h.DeleteComplaint)
	}
}

func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req types.ComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := validationMessage(err)
		if hasTag(err, "required") {
			msg = "Complaint content is required"
		}
		respondError(c, apperrors.BadRequest(msg))
		return
	}
	userID, _ := middleware.CurrentUserID(c)
	complaint, err := h.complaintService.CreateComplaint(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

func (h *ComplaintHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	complaints, err := h.complaintService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *ComplaintHandler) ListAll(c *gin.Context) {
	complaints, err := h.complaintService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	id, ok := pathID(c, "id", "Complaint not found")
	if !ok {
		return
	}
	if err := h.complaintService.DeleteComplaint(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Complaint removed successfully"})
}
