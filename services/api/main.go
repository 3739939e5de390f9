package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/02loveslollipop/station-backfill/internal/logging"
	"github.com/02loveslollipop/station-backfill/services/api/config"
	"github.com/02loveslollipop/station-backfill/services/api/db"
	httpserver "github.com/02loveslollipop/station-backfill/services/api/http"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.AppEnv, cfg.LogLevel, version, "station-api")
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connection error", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		logger.Warn("database not reachable yet", "error", err)
	}

	srv := httpserver.New(cfg, store, logger)
	logger.Info("REST API listening", "addr", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
