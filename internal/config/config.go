package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"3000"`
	DatabaseURL string `env:"DATABASE_URL"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	TokenTTL time.Duration `env:"TOKEN_TTL" default:"24h"`

	PoolMinConns    int32         `env:"DB_POOL_MIN_CONNS" default:"2"`
	PoolMaxConns    int32         `env:"DB_POOL_MAX_CONNS" default:"10"`
	PoolIdleTimeout time.Duration `env:"DB_POOL_IDLE_TIMEOUT" default:"10m"`

	// Login rate limiting, per client IP.
	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" default:"1"`
	LoginRateBurst int     `env:"LOGIN_RATE_BURST" default:"5"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"JWT_SECRET":   cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if cfg.PoolMinConns < 0 || cfg.PoolMaxConns < 1 {
		return fmt.Errorf("invalid pool bounds: min=%d max=%d", cfg.PoolMinConns, cfg.PoolMaxConns)
	}
	if cfg.PoolMinConns > cfg.PoolMaxConns {
		return fmt.Errorf("DB_POOL_MIN_CONNS (%d) must not exceed DB_POOL_MAX_CONNS (%d)", cfg.PoolMinConns, cfg.PoolMaxConns)
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	return nil
}
