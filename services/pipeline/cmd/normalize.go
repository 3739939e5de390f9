package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/config"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/feed"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/fileio"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/transform"
)

func newNormalizeCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Convert a raw feed snapshot into normalized records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.RawInput, _ = cmd.Flags().GetString("input")
			cfg.NormalizedPath, _ = cmd.Flags().GetString("output")
			return runNormalize(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().String("input", cfg.RawInput, "feed snapshot path or http(s) URL")
	cmd.Flags().String("output", cfg.NormalizedPath, "normalized records file")

	return cmd
}

func runNormalize(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.FeedTimeout)
	defer cancel()

	client := &http.Client{Timeout: cfg.FeedTimeout}
	samples, err := feed.Fetch(ctx, client, cfg.RawInput)
	if err != nil {
		return err
	}
	logger.Debug("feed loaded", "source", cfg.RawInput, "samples", len(samples), "remote", feed.IsRemote(cfg.RawInput))

	records, err := transform.Normalize(cfg.Station, samples)
	if err != nil {
		return err
	}

	if err := fileio.WriteJSON(cfg.NormalizedPath, records); err != nil {
		return err
	}

	logger.Info("normalized feed",
		"input", cfg.RawInput,
		"output", cfg.NormalizedPath,
		"records", len(records),
		"offset_seconds", cfg.Station.OffsetSeconds,
	)
	return nil
}
