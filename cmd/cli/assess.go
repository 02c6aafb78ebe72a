package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/bootstrap"
)

func newAssessCmd() *cobra.Command {
	var (
		country     string
		sector      string
		topN        int
		skipClimate bool
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a supply-chain risk assessment for a country and sector",
		Example: `  supplyrisk-admin assess --country USA --sector C10-C12 --top-n 3
  supplyrisk-admin assess --country deu --sector C26 --skip-climate -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				cfg := app.Config.Assessment
				req := dto.NewAssessRequest(country, sector, strconv.FormatBool(skipClimate),
					strconv.Itoa(topN), cfg.DefaultTopN, cfg.MaxTopN)
				result, err := app.Assessment.Assess(ctx, req)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "ISO-3 country code of the buyer")
	cmd.Flags().StringVar(&sector, "sector", "", "sector code")
	cmd.Flags().IntVar(&topN, "top-n", 0, "suppliers kept per tier (0 uses the configured default)")
	cmd.Flags().BoolVar(&skipClimate, "skip-climate", false, "skip climate enrichment")
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("sector")
	return cmd
}

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List assessable countries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				return render(cmd.OutOrStdout(), dto.CountryListResponse{Countries: app.Assessment.Countries(ctx)})
			})
		},
	}
}

func newSectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "List assessable sectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				return render(cmd.OutOrStdout(), dto.SectorListResponse{Sectors: app.Assessment.Sectors(ctx)})
			})
		},
	}
}
