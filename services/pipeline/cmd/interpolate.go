package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/archive"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/config"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/fileio"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/transform"
)

func newInterpolateCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpolate",
		Short: "Densify normalized records and write the import file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.NormalizedPath, _ = cmd.Flags().GetString("input")
			cfg.OutputPath, _ = cmd.Flags().GetString("output")
			return runInterpolate(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().String("input", cfg.NormalizedPath, "normalized records file")
	cmd.Flags().String("output", cfg.OutputPath, "import file")

	return cmd
}

func runInterpolate(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	data, err := fileio.ReadFile(cfg.NormalizedPath)
	if err != nil {
		return err
	}

	records, err := transform.DecodeRecords(data)
	if err != nil {
		return err
	}

	series, err := transform.Interpolate(cfg.Station, records)
	if err != nil {
		return err
	}

	if err := fileio.WriteJSON(cfg.OutputPath, series); err != nil {
		return err
	}

	logger.Info("interpolated records",
		"input", cfg.NormalizedPath,
		"output", cfg.OutputPath,
		"records", len(records),
		"written", series.Len(),
	)

	if !cfg.Archive.Enabled() {
		return nil
	}
	return archiveOutput(ctx, cfg, logger)
}

func archiveOutput(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	archiver, err := archive.New(cfg.Archive)
	if err != nil {
		return err
	}

	data, err := fileio.ReadFile(cfg.OutputPath)
	if err != nil {
		return err
	}

	key, err := archiver.Upload(ctx, cfg.OutputPath, data, time.Now())
	if err != nil {
		return err
	}

	logger.Info("archived output", "bucket", cfg.Archive.Bucket, "key", key, "bytes", len(data))
	return nil
}
