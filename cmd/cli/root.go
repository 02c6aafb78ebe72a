package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/supplyrisk/internal/bootstrap"
	"github.com/turtacn/supplyrisk/internal/config"
	"github.com/turtacn/supplyrisk/internal/infrastructure/monitoring"
)

var (
	configPath   string
	outputFormat string
)

// rootCmd represents the base command when the `supplyrisk-admin` binary is called without any subcommands.
// rootCmd 代表在没有任何子命令的情况下调用 `supplyrisk-admin` 二进制文件时的基本命令。
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplyrisk-admin",
		Short: "A CLI tool for running supply-chain risk assessments and managing the climate cache.",
		Long: `supplyrisk-admin runs the same assessment engine as the HTTP service from the
command line, lists reference data, seeds the reference database and manages
the climate expected-loss cache.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the configuration file")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format: json or yaml")

	cmd.AddCommand(newAssessCmd(), newCountriesCmd(), newSectorsCmd(), newCacheCmd(), newReferenceCmd())
	return cmd
}

// Execute is the main entry point for the CLI application.
// If an error occurs, it prints the error and exits.
// Execute 是 CLI 应用程序的主入口点。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads configuration for a command. Logs go to stderr.
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(configPath)
}

// withApp builds the application graph, runs fn and releases it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := monitoring.NewZapLoggerTo(&cfg.Log, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())
	return fn(ctx, app)
}

// render writes v in the selected output format.
func render(w io.Writer, v interface{}) error {
	switch outputFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

//Personal.AI order the ending
