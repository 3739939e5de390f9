package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/02loveslollipop/station-backfill/internal/logging"
	"github.com/02loveslollipop/station-backfill/services/pipeline/cmd"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/config"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("backfill failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.AppEnv, cfg.LogLevel, version, "station-backfill")
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return cmd.NewRootCmd(cfg, logger).ExecuteContext(ctx)
}
