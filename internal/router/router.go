package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

// Options configures the engine.
type Options struct {
	CORSOrigins []string
	// Metrics mounts the Prometheus handler on /metrics.
	Metrics bool
}

// SetupRouter builds the gin engine with the JSON API under /api/v1.
func SetupRouter(db *gorm.DB, services *api.Services, opts Options) *gin.Engine {
	api.RegisterValidators()

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(opts.CORSOrigins))

	router.GET("/health", api.HealthCheck(db))
	if opts.Metrics {
		router.GET("/metrics", api.Metrics())
	}

	v1 := router.Group("/api/v1")
	api.RegisterRoutes(v1, services)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Message: "Route not found"})
	})

	return router
}
