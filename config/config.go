package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. Redis is optional; without it AI generation is
	// not rate limited.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Token configuration
	JWTSecret string
	TokenTTL  time.Duration

	// AI text generation
	AIAPIKey    string
	AIAPIURL    string
	AIModel     string
	AIRateLimit int

	// Asset host
	S3Bucket   string
	S3Endpoint string
	AWSRegion  string

	LogLevel  string
	LogFormat string

	// ForbidSelfReview rejects reviews of one's own recipe.
	ForbidSelfReview bool
}

// lookupFunc resolves a setting by its secret name ("db_password"). The
// environment variable name is the upper-cased secret name.
type lookupFunc func(name string) string

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	var lookup lookupFunc
	switch env {
	case CI:
		lookup = fromEnv
	case Development, Test:
		lookup = fromSecretOrEnv
	case Production:
		lookup = fromProduction
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg, err := load(lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load(lookup lookupFunc) (*Config, error) {
	cfg := &Config{
		ServerPort:    withDefault(lookup("server_port"), "8080"),
		ServerHost:    withDefault(lookup("server_host"), "0.0.0.0"),
		CORSOrigins:   splitList(withDefault(lookup("cors_origins"), "http://localhost:5173")),
		DBDriver:      withDefault(lookup("db_driver"), "postgres"),
		DBHost:        withDefault(lookup("db_host"), "localhost"),
		DBPort:        withDefault(lookup("db_port"), "5432"),
		DBUser:        lookup("db_user"),
		DBPassword:    lookup("db_password"),
		DBName:        lookup("db_name"),
		DBSSLMode:     withDefault(lookup("db_ssl_mode"), "disable"),
		SQLitePath:    withDefault(lookup("sqlite_path"), "recipebox.db"),
		RedisHost:     lookup("redis_host"),
		RedisPort:     withDefault(lookup("redis_port"), "6379"),
		RedisPassword: lookup("redis_password"),
		RedisURL:      lookup("redis_url"),
		JWTSecret:     lookup("jwt_secret"),
		AIAPIKey:      lookup("ai_api_key"),
		AIAPIURL:      withDefault(lookup("ai_api_url"), "https://api.deepseek.com/v1/chat/completions"),
		AIModel:       withDefault(lookup("ai_model"), "deepseek-chat"),
		S3Bucket:      lookup("s3_bucket_name"),
		S3Endpoint:    lookup("s3_endpoint"),
		AWSRegion:     withDefault(lookup("aws_region"), "us-east-1"),
		LogLevel:      withDefault(lookup("log_level"), "info"),
		LogFormat:     withDefault(lookup("log_format"), "json"),
	}

	var err error
	if cfg.RedisDB, err = intValue(lookup("redis_db"), 0); err != nil {
		return nil, fmt.Errorf("redis_db: %w", err)
	}
	if cfg.AIRateLimit, err = intValue(lookup("ai_rate_limit"), 20); err != nil {
		return nil, fmt.Errorf("ai_rate_limit: %w", err)
	}
	if cfg.TokenTTL, err = durationValue(lookup("token_ttl"), 7*24*time.Hour); err != nil {
		return nil, fmt.Errorf("token_ttl: %w", err)
	}
	if cfg.ForbidSelfReview, err = boolValue(lookup("forbid_self_review"), true); err != nil {
		return nil, fmt.Errorf("forbid_self_review: %w", err)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func fromEnv(name string) string {
	return strings.TrimSpace(os.Getenv(strings.ToUpper(name)))
}

func fromSecretOrEnv(name string) string {
	if v := readSecret(name); v != "" {
		return v
	}
	return fromEnv(name)
}

// sensitive settings must come from Docker secrets in production
var sensitive = map[string]bool{
	"db_password":    true,
	"jwt_secret":     true,
	"redis_password": true,
	"ai_api_key":     true,
}

func fromProduction(name string) string {
	if sensitive[name] {
		return readSecret(name)
	}
	return fromSecretOrEnv(name)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intValue(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func boolValue(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

func durationValue(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}
