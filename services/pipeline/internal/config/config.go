package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/02loveslollipop/station-backfill/internal/extjson"
	"github.com/02loveslollipop/station-backfill/internal/logging"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/models"
)

const (
	defaultRawInput       = "data.json"
	defaultNormalizedPath = "shortdata.json"
	defaultOutputPath     = "newshortdata.json"
	defaultNodeID         = "6253e74ae7db67b599155785"
	defaultLocationID     = "625416218573f8a907a89f65"
	defaultFeedTimeout    = 30 * time.Second
	defaultArchivePrefix  = "backfill/"

	// DefaultOffsetSeconds shifts feed timestamps onto the station clock.
	DefaultOffsetSeconds int64 = 161557200 + 26*3600

	measurementType = "hour"
	stepMillis      = 3600 * 1000
	fillPoints      = 2
)

// Config holds runtime configuration for the pipeline commands.
type Config struct {
	AppEnv   string
	LogLevel slog.Level

	RawInput       string
	NormalizedPath string
	OutputPath     string

	Station     models.Station
	FeedTimeout time.Duration

	DatabaseURL string
	DryRun      bool

	Archive Archive
}

// Archive configures the optional object-store copy of written outputs.
type Archive struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Secure    bool
	Prefix    string
}

// Enabled reports whether outputs should be uploaded.
func (a Archive) Enabled() bool {
	return a.Endpoint != "" && a.Bucket != ""
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	appEnv, err := logging.ParseAppEnv(os.Getenv("APP_ENV"))
	if err != nil {
		return cfg, err
	}
	cfg.AppEnv = appEnv

	cfg.LogLevel = slog.LevelInfo
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}

	cfg.RawInput = envOr("RAW_INPUT", defaultRawInput)
	cfg.NormalizedPath = envOr("NORMALIZED_PATH", defaultNormalizedPath)
	cfg.OutputPath = envOr("OUTPUT_PATH", defaultOutputPath)

	nodeID, err := extjson.ObjectIDFromHex(envOr("STATION_NODE_ID", defaultNodeID))
	if err != nil {
		return cfg, fmt.Errorf("invalid STATION_NODE_ID: %w", err)
	}
	locationID, err := extjson.ObjectIDFromHex(envOr("STATION_LOCATION_ID", defaultLocationID))
	if err != nil {
		return cfg, fmt.Errorf("invalid STATION_LOCATION_ID: %w", err)
	}

	offset := DefaultOffsetSeconds
	if v := strings.TrimSpace(os.Getenv("STATION_OFFSET_SECONDS")); v != "" {
		offset, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid STATION_OFFSET_SECONDS: %w", err)
		}
	}

	cfg.Station = models.Station{
		NodeID:        nodeID,
		LocationID:    locationID,
		Type:          measurementType,
		OffsetSeconds: offset,
		Step:          stepMillis,
		FillPoints:    fillPoints,
	}

	cfg.FeedTimeout = defaultFeedTimeout
	if v := strings.TrimSpace(os.Getenv("FEED_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid FEED_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid FEED_TIMEOUT: %s must be positive", v)
		}
		cfg.FeedTimeout = d
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DryRun = parseBool(os.Getenv("DRY_RUN"))

	cfg.Archive = Archive{
		Endpoint:  strings.TrimSpace(os.Getenv("ARCHIVE_S3_ENDPOINT")),
		Bucket:    strings.TrimSpace(os.Getenv("ARCHIVE_S3_BUCKET")),
		AccessKey: os.Getenv("ARCHIVE_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("ARCHIVE_S3_SECRET_KEY"),
		Secure:    parseBool(os.Getenv("ARCHIVE_S3_SECURE")),
		Prefix:    envOr("ARCHIVE_S3_PREFIX", defaultArchivePrefix),
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true")
}
