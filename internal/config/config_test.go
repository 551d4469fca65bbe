package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AppEnv:          "test",
		Port:            "3000",
		DatabaseURL:     "postgres://localhost/tecroom",
		JWTSecret:       "super-secret-test-key",
		TokenTTL:        24 * time.Hour,
		PoolMinConns:    2,
		PoolMaxConns:    10,
		PoolIdleTimeout: 10 * time.Minute,
		LoginRateLimit:  1,
		LoginRateBurst:  5,
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validate(validConfig()))
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = "short"
	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 16 characters")
}

func TestValidate_PoolBounds(t *testing.T) {
	cfg := validConfig()
	cfg.PoolMinConns = 20
	cfg.PoolMaxConns = 10
	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_POOL_MIN_CONNS")

	cfg = validConfig()
	cfg.PoolMaxConns = 0
	require.Error(t, validate(cfg))
}

func TestValidate_TokenTTL(t *testing.T) {
	cfg := validConfig()
	cfg.TokenTTL = 0
	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tecroom")
	t.Setenv("JWT_SECRET", "super-secret-test-key")
	t.Setenv("PORT", "8081")
	t.Setenv("DB_POOL_MAX_CONNS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, int32(4), cfg.PoolMaxConns)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "development", cfg.AppEnv)
}
