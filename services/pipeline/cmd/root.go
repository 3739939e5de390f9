package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/config"
)

// NewRootCmd creates the root command for the backfill pipeline.
func NewRootCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "station-backfill",
		Short:         "Normalize and densify weather station history for import",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newNormalizeCmd(cfg, logger))
	rootCmd.AddCommand(newInterpolateCmd(cfg, logger))
	rootCmd.AddCommand(newRunCmd(cfg, logger))
	rootCmd.AddCommand(newLoadCmd(cfg, logger))

	return rootCmd
}
