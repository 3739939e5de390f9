package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "DATABASE_URL", "PORT", "API_PORT", "API_DEFAULT_LIMIT", "API_BEARER_TOKEN"} {
		t.Setenv(k, kv[k])
	}
}

func TestLoad(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/weather",
		"API_PORT":     "9090",
		"LOG_LEVEL":    "warn",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.ListenAddr())
	assert.Equal(t, 200, cfg.DefaultLimit)
	assert.Empty(t, cfg.BearerToken)
}

func TestLoad_PortWinsOverAPIPort(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/weather",
		"PORT":         "3000",
		"API_PORT":     "9090",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"no database", map[string]string{}, "DATABASE_URL"},
		{"bad port", map[string]string{"DATABASE_URL": "x", "PORT": "http"}, "PORT"},
		{"bad limit", map[string]string{"DATABASE_URL": "x", "API_DEFAULT_LIMIT": "0"}, "API_DEFAULT_LIMIT"},
		{"bad env", map[string]string{"DATABASE_URL": "x", "APP_ENV": "qa"}, "APP_ENV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
