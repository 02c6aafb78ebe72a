package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/turtacn/supplyrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/supplyrisk/internal/infrastructure/persistence/gormstore"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
)

type seedReport struct {
	Driver       string `json:"driver" yaml:"driver"`
	Countries    int    `json:"countries" yaml:"countries"`
	Sectors      int    `json:"sectors" yaml:"sectors"`
	StaticLosses int    `json:"static_losses" yaml:"static_losses"`
	IORows       int    `json:"io_rows" yaml:"io_rows"`
}

// newReferenceCmd manages the database copy of the reference tables.
func newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Manage reference tables",
	}

	var driver, dsn string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the reference schema and load the embedded tables into it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if driver == "" {
				driver = cfg.Reference.Driver
			}
			if dsn == "" {
				dsn = cfg.Reference.DSN
			}
			log, err := monitoring.NewZapLoggerTo(&cfg.Log, zapcore.AddSync(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			tables, err := reference.LoadEmbedded()
			if err != nil {
				return err
			}
			db, err := gormstore.Open(driver, dsn)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			store := gormstore.NewStore(db, log)
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			if err := store.Seed(cmd.Context(), tables); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), seedReport{
				Driver:       driver,
				Countries:    len(tables.Countries),
				Sectors:      len(tables.Sectors),
				StaticLosses: len(tables.ExpectedLoss),
				IORows:       countRows(tables.Coefficients),
			})
		},
	}
	seedCmd.Flags().StringVar(&driver, "driver", "", "database driver: sqlite or postgres (defaults to reference.driver)")
	seedCmd.Flags().StringVar(&dsn, "dsn", "", "database DSN (defaults to reference.dsn)")

	cmd.AddCommand(seedCmd)
	return cmd
}

func countRows(t reference.CoefficientTable) int {
	n := 0
	for _, rows := range t.Countries {
		n += len(rows)
	}
	return n
}
