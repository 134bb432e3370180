package config

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minProductionSecretLength = 32

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs []error

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"jwt_secret", "is required"})
	} else if env == Production && len(cfg.JWTSecret) < minProductionSecretLength {
		errs = append(errs, ValidationError{"jwt_secret", fmt.Sprintf("must be at least %d characters in production", minProductionSecretLength)})
	}

	if cfg.TokenTTL < time.Minute {
		errs = append(errs, ValidationError{"token_ttl", "must be at least one minute"})
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"db_name", "is required for postgres"})
		}
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"db_user", "is required for postgres"})
		}
	case "sqlite":
		if env == Production {
			errs = append(errs, ValidationError{"db_driver", "sqlite is not supported in production"})
		}
	default:
		errs = append(errs, ValidationError{"db_driver", fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.AIRateLimit < 0 {
		errs = append(errs, ValidationError{"ai_rate_limit", "must not be negative"})
	}

	return errors.Join(errs...)
}
