package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/config"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/db"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/fileio"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/transform"
)

const loadTimeout = 2 * time.Minute

func newLoadCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Upsert an import file into the measurements table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.OutputPath, _ = cmd.Flags().GetString("input")
			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				cfg.DryRun = true
			}
			return runLoad(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().String("input", cfg.OutputPath, "import file written by interpolate")
	cmd.Flags().Bool("dry-run", cfg.DryRun, "log documents instead of writing them")

	return cmd
}

func runLoad(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	data, err := fileio.ReadFile(cfg.OutputPath)
	if err != nil {
		return err
	}

	docs, err := transform.DecodeDocuments(data)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		logger.Info("no documents to load", "input", cfg.OutputPath)
		return nil
	}

	logger.Info("prepared documents", "input", cfg.OutputPath, "documents", len(docs), "dry_run", cfg.DryRun)

	if cfg.DryRun {
		for _, d := range docs {
			logger.Info("dry-run: would upsert",
				"node_id", d.NodeID.Hex(),
				"measured_at", db.MeasuredAt(d).Format(time.RFC3339),
				"temperature", float64(d.Temperature),
				"humidity", float64(d.Humidity),
			)
		}
		return nil
	}

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	if err := db.UpsertMeasurements(ctx, pool, docs); err != nil {
		return err
	}

	logger.Info("loaded documents", "documents", len(docs))
	return nil
}
