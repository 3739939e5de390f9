package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/02loveslollipop/station-backfill/internal/logging"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	AppEnv       string
	LogLevel     slog.Level
	DatabaseURL  string
	Port         int
	BearerToken  string
	DefaultLimit int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		LogLevel:     slog.LevelInfo,
		Port:         8080,
		DefaultLimit: 200,
	}

	appEnv, err := logging.ParseAppEnv(os.Getenv("APP_ENV"))
	if err != nil {
		return cfg, err
	}
	cfg.AppEnv = appEnv

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := logging.ParseLevel(lvl)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if limitStr := os.Getenv("API_DEFAULT_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			cfg.DefaultLimit = limit
		} else {
			return cfg, fmt.Errorf("invalid API_DEFAULT_LIMIT: %s", limitStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
