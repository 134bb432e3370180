package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI is detected from
// the CI variable; otherwise APP_ENV (or ENV) selects it, defaulting to
// development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	name := os.Getenv("APP_ENV")
	if name == "" {
		name = os.Getenv("ENV")
	}
	switch strings.ToLower(name) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
