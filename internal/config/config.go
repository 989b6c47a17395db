package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PlaceholderSecret is the development signing secret used when JWT_SECRET is unset.
// It must never be used when APP_ENV=production.
const PlaceholderSecret = "d83022c28dea8481e3f2a5353cdb024e2d59e00927eae04b415c7eab4b756012"

// MinSecretLength is the minimum accepted HMAC secret length in bytes.
const MinSecretLength = 32

var supportedAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

// Config holds the application configuration.
type Config struct {
	ServerPort int
	AppEnv     string
	LogLevel   string

	JWTSecret          string
	JWTAlgorithm       string
	DefaultTokenTTL    time.Duration // used when a caller issues a token without a TTL
	AccessTokenTTL     time.Duration // used by the login flow
	BcryptCost         int
	MoviesSourceURL    string
	CatalogRefresh     string // cron expression, empty disables the refresher
	CORSAllowedOrigins []string
	EventHistory       int
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesPlaceholderSecret reports whether no real secret was supplied.
func (c *Config) UsesPlaceholderSecret() bool {
	return c.JWTSecret == PlaceholderSecret
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := getEnvInt("PORT", 8000)
	if err != nil {
		return nil, err
	}
	defaultMinutes, err := getEnvInt("DEFAULT_TOKEN_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	accessMinutes, err := getEnvInt("ACCESS_TOKEN_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	cost, err := getEnvInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	history, err := getEnvInt("EVENT_HISTORY", 200)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:         port,
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          getEnv("JWT_SECRET", PlaceholderSecret),
		JWTAlgorithm:       strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		DefaultTokenTTL:    time.Duration(defaultMinutes) * time.Minute,
		AccessTokenTTL:     time.Duration(accessMinutes) * time.Minute,
		BcryptCost:         cost,
		MoviesSourceURL:    getEnv("MOVIES_SOURCE_URL", "https://raw.githubusercontent.com/prust/wikipedia-movie-data/master/movies.json"),
		CatalogRefresh:     getEnv("CATALOG_REFRESH_SCHEDULE", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		EventHistory:       history,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that must abort startup when wrong.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", MinSecretLength, len(c.JWTSecret))
	}
	if c.IsProduction() && c.UsesPlaceholderSecret() {
		return errors.New("JWT_SECRET must be set in production")
	}
	if !supportedAlgorithms[c.JWTAlgorithm] {
		return fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm)
	}
	if c.DefaultTokenTTL <= 0 || c.AccessTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range 4..31", c.BcryptCost)
	}
	if c.EventHistory <= 0 {
		return errors.New("EVENT_HISTORY must be positive")
	}
	return nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
