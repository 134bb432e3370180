package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
)

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("server stopped with error")
	}
	logging.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logging.WithComponent("main")

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, "migrations"); err != nil {
		return err
	}

	// AI generation without a key answers 500 instead of calling out
	var generator service.TextGenerator
	if cfg.AIAPIKey != "" {
		generator = service.NewChatCompletionClient(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)
	} else {
		log.Warn().Msg("AI_API_KEY not set, recipe generation is disabled")
	}

	var images *service.ImageService
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		images = service.NewImageService(service.NewS3AssetStore(s3cfg))
	} else {
		log.Warn().Msg("S3_BUCKET_NAME not set, image uploads are disabled")
		images = service.NewImageService(nil)
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	services := api.NewServices(db, auth, generator, images, cfg.ForbidSelfReview)

	redisClient, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		services.AILimiter = middleware.NewAIGenerationRateLimiter(redisClient, cfg.AIRateLimit)
	} else {
		log.Warn().Msg("redis not configured, recipe generation is not rate limited")
	}

	engine := router.SetupRouter(db, services, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     true,
	})

	return server.New(cfg.Addr(), engine).Run(ctx)
}
