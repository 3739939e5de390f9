package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ENV", "LOG_LEVEL", "RAW_INPUT", "NORMALIZED_PATH", "OUTPUT_PATH",
	"STATION_NODE_ID", "STATION_LOCATION_ID", "STATION_OFFSET_SECONDS",
	"FEED_TIMEOUT", "DATABASE_URL", "DRY_RUN",
	"ARCHIVE_S3_ENDPOINT", "ARCHIVE_S3_BUCKET", "ARCHIVE_S3_ACCESS_KEY",
	"ARCHIVE_S3_SECRET_KEY", "ARCHIVE_S3_SECURE", "ARCHIVE_S3_PREFIX",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "data.json", cfg.RawInput)
	assert.Equal(t, "shortdata.json", cfg.NormalizedPath)
	assert.Equal(t, "newshortdata.json", cfg.OutputPath)
	assert.Equal(t, 30*time.Second, cfg.FeedTimeout)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.DatabaseURL)

	st := cfg.Station
	assert.Equal(t, "6253e74ae7db67b599155785", st.NodeID.Hex())
	assert.Equal(t, "625416218573f8a907a89f65", st.LocationID.Hex())
	assert.Equal(t, "hour", st.Type)
	assert.Equal(t, int64(161650800), st.OffsetSeconds)
	assert.Equal(t, int64(3600000), st.Step)
	assert.Equal(t, 2, st.FillPoints)

	assert.False(t, cfg.Archive.Enabled())
	assert.Equal(t, "backfill/", cfg.Archive.Prefix)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RAW_INPUT", "https://feed.example.com/history.json")
	t.Setenv("STATION_NODE_ID", "AAAAAAAAAAAAAAAAAAAAAAAA")
	t.Setenv("STATION_OFFSET_SECONDS", "161643600")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("ARCHIVE_S3_ENDPOINT", "localhost:9000")
	t.Setenv("ARCHIVE_S3_BUCKET", "weather")
	t.Setenv("ARCHIVE_S3_SECURE", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "https://feed.example.com/history.json", cfg.RawInput)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", cfg.Station.NodeID.Hex())
	assert.Equal(t, int64(161643600), cfg.Station.OffsetSeconds)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Archive.Enabled())
	assert.True(t, cfg.Archive.Secure)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"APP_ENV", "staging", "APP_ENV"},
		{"LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"STATION_NODE_ID", "not-hex", "STATION_NODE_ID"},
		{"STATION_LOCATION_ID", "625416218573f8a907a89f6", "STATION_LOCATION_ID"},
		{"STATION_OFFSET_SECONDS", "1.5", "STATION_OFFSET_SECONDS"},
		{"FEED_TIMEOUT", "soon", "FEED_TIMEOUT"},
		{"FEED_TIMEOUT", "-1s", "FEED_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
