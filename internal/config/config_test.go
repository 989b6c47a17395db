package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "8000")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", PlaceholderSecret)
	t.Setenv("JWT_ALGORITHM", "hs256")
	t.Setenv("DEFAULT_TOKEN_MINUTES", "15")
	t.Setenv("ACCESS_TOKEN_MINUTES", "30")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("EVENT_HISTORY", "200")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.DefaultTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.UsesPlaceholderSecret())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func validConfig() *Config {
	return &Config{
		JWTSecret:       strings.Repeat("k", MinSecretLength),
		JWTAlgorithm:    "HS256",
		DefaultTokenTTL: 15 * time.Minute,
		AccessTokenTTL:  30 * time.Minute,
		BcryptCost:      10,
		EventHistory:    10,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.JWTSecret = "short" }, wantErr: "JWT_SECRET"},
		{name: "empty secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "placeholder in production", mutate: func(c *Config) {
			c.AppEnv = "production"
			c.JWTSecret = PlaceholderSecret
		}, wantErr: "production"},
		{name: "asymmetric algorithm", mutate: func(c *Config) { c.JWTAlgorithm = "RS256" }, wantErr: "JWT_ALGORITHM"},
		{name: "zero ttl", mutate: func(c *Config) { c.AccessTokenTTL = 0 }, wantErr: "lifetimes"},
		{name: "bcrypt cost", mutate: func(c *Config) { c.BcryptCost = 2 }, wantErr: "BCRYPT_COST"},
		{name: "event history", mutate: func(c *Config) { c.EventHistory = 0 }, wantErr: "EVENT_HISTORY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
