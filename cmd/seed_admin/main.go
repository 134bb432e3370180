package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type adminAccount struct {
	Name     string
	Username string
	Email    string
	Password string
}

func main() {
	_ = godotenv.Load()

	var acct adminAccount
	flag.StringVar(&acct.Email, "email", os.Getenv("ADMIN_EMAIL"), "administrator email")
	flag.StringVar(&acct.Password, "password", os.Getenv("ADMIN_PASSWORD"), "password, used only when the account is created")
	flag.StringVar(&acct.Name, "name", "Administrator", "display name for a new account")
	flag.StringVar(&acct.Username, "username", "admin", "username for a new account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, "migrations"); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	user, created, err := ensureAdmin(ctx, db, auth, acct)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed administrator")
	}
	logging.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Bool("created", created).
		Msg("administrator ready")
}

// ensureAdmin promotes and reactivates the account with acct.Email, creating
// it first when it does not exist.
func ensureAdmin(ctx context.Context, db *gorm.DB, auth *service.AuthService, acct adminAccount) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(acct.Email))
	if email == "" {
		return nil, false, errors.New("an email is required")
	}

	var user models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if acct.Password == "" {
			return nil, false, errors.New("a password is required to create the account")
		}
		u, _, err := auth.Register(ctx, &types.RegisterRequest{
			Name:     acct.Name,
			Username: acct.Username,
			Email:    email,
			Password: acct.Password,
		})
		if err != nil {
			return nil, false, err
		}
		user = *u
		created = true
	case err != nil:
		return nil, false, err
	}

	err = db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"role":   models.RoleAdmin,
		"status": models.StatusActive,
	}).Error
	if err != nil {
		return nil, false, err
	}
	user.Role = models.RoleAdmin
	user.Status = models.StatusActive
	return &user, created, nil
}
