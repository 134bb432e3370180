package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty secrets directory and a known
// environment so host settings do not leak into the test.
func isolate(t *testing.T, env string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("CI", "")
	t.Setenv("APP_ENV", env)
	for _, name := range []string{
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSL_MODE", "JWT_SECRET", "REDIS_URL", "TOKEN_TTL", "AI_RATE_LIMIT",
		"FORBID_SELF_REVIEW", "CORS_ORIGINS", "SERVER_PORT",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	isolate(t, "development")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "recipebox")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 20, cfg.AIRateLimit)
	assert.True(t, cfg.ForbidSelfReview)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=recipebox sslmode=disable", cfg.DSN())
}

func TestSecretsTakePrecedence(t *testing.T) {
	dir := isolate(t, "test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestProductionIgnoresSensitiveEnvironmentVariables(t *testing.T) {
	isolate(t, "production")
	t.Setenv("JWT_SECRET", "this-secret-is-long-enough-for-production-use")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "recipebox")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidateConfigCollectsAllProblems(t *testing.T) {
	isolate(t, "development")

	err := ValidateConfig(&Config{DBDriver: "postgres", TokenTTL: time.Second, AIRateLimit: -1})
	require.Error(t, err)
	for _, field := range []string{"jwt_secret", "token_ttl", "db_name", "db_user", "ai_rate_limit"} {
		assert.Contains(t, err.Error(), field)
	}

	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestInvalidNumbersAreRejected(t *testing.T) {
	isolate(t, "development")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL", "forever")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("APP_ENV", "prod")
	assert.True(t, IsProduction())

	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	assert.True(t, IsDevelopment())
}
