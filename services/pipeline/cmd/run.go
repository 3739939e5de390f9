package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/config"
)

func newRunCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Normalize then interpolate, passing through the intermediate file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runNormalize(cmd.Context(), cfg, logger); err != nil {
				return err
			}
			return runInterpolate(cmd.Context(), cfg, logger)
		},
	}
}
