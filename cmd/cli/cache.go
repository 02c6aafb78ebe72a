package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/turtacn/supplyrisk/internal/bootstrap"
)

// newCacheCmd groups climate cache maintenance.
// The in-process cache only lives as long as the command; warming is useful
// when redis is enabled and the shared store outlives the process.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the climate expected-loss cache",
	}

	var parallelism int
	warmCmd := &cobra.Command{
		Use:   "warm [COUNTRY...]",
		Short: "Fetch expected losses ahead of time (all countries when none are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if parallelism <= 0 {
					parallelism = app.Config.Climate.WarmParallel
				}
				report, err := app.ClimateCache.Warm(ctx, args, parallelism)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), report)
			})
		},
	}
	warmCmd.Flags().IntVar(&parallelism, "parallelism", 0, "concurrent hazard-service calls (0 uses the configured value)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cached countries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				return render(cmd.OutOrStdout(), app.ClimateCache.Stats(ctx))
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached expected loss, including the shared store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ClimateCache.Clear(ctx); err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), map[string]string{"message": "Climate cache cleared"})
			})
		},
	}

	cmd.AddCommand(warmCmd, statsCmd, clearCmd)
	return cmd
}
