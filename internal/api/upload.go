package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// UploadResponse carries the public address of an uploaded file.
type UploadResponse struct {
	URL string `json:"url"`
}

type UploadHandler struct {
	imageService service.IImageService
}

func NewUploadHandler(imageService service.IImageService) *UploadHandler {
	return &UploadHandler{imageService: imageService}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup, gate gin.HandlerFunc) {
	router.POST("/uploads/image", gate, h.UploadImage)
}

// UploadImage accepts a multipart "image" field.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil || !h.imageService.Enabled() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, middleware.ErrorResponse{Message: "Image uploads are not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+1<<20)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperrors.BadRequest("No image uploaded"))
		return
	}
	if fileHeader.Size > service.MaxImageSize {
		respondError(c, apperrors.BadRequest("Image must be 5MB or smaller"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.BadRequest("Could not read uploaded file"))
		return
	}
	defer file.Close()

	userID, _ := middleware.CurrentUserID(c)
	url, err := h.imageService.UploadImage(c.Request.Context(), userID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
