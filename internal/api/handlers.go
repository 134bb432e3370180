package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth       service.IAuthService
	Users      service.IUserService
	Recipes    service.IRecipeService
	Reviews    service.IReviewService
	Saved      service.ISavedRecipeService
	AI         service.IAIRecipeService
	Complaints service.IComplaintService
	Admin      service.IAdminService
	Images     service.IImageService
	// AILimiter throttles recipe generation per user. Optional.
	AILimiter *middleware.RateLimiter
}

// NewServices builds the service set backed by db.
func NewServices(db *gorm.DB, auth *service.AuthService, generator service.TextGenerator, images *service.ImageService, forbidSelfReview bool) *Services {
	return &Services{
		Auth:       auth,
		Users:      service.NewUserService(db),
		Recipes:    service.NewRecipeService(db),
		Reviews:    service.NewReviewService(db, forbidSelfReview),
		Saved:      service.NewSavedRecipeService(db),
		AI:         service.NewAIRecipeService(db, generator),
		Complaints: service.NewComplaintService(db),
		Admin:      service.NewAdminService(db),
		Images:     images,
	}
}

// RegisterRoutes mounts every resource under router. Routes that need an
// account go through a single gate built from the auth service.
func RegisterRoutes(router *gin.RouterGroup, s *Services) {
	gate := middleware.NewGate(s.Auth, s.Auth).Authenticate()

	NewAuthHandler(s.Auth, s.Users).RegisterRoutes(router, gate)
	NewUserHandler(s.Users).RegisterRoutes(router, gate)
	NewRecipeHandler(s.Recipes, s.Reviews, s.Saved).RegisterRoutes(router, gate)
	NewAIHandler(s.AI, s.AILimiter).RegisterRoutes(router, gate)
	NewComplaintHandler(s.Complaints).RegisterRoutes(router, gate)
	NewAdminHandler(s.Admin).RegisterRoutes(router, gate)
	NewUploadHandler(s.Images).RegisterRoutes(router, gate)
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthCheck reports whether the database answers a ping.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
	}
}

// Metrics exposes the Prometheus registry.
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
