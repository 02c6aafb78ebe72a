package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/supplyrisk/internal/bootstrap"
	"github.com/turtacn/supplyrisk/internal/config"
	"github.com/turtacn/supplyrisk/internal/infrastructure/monitoring"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	// Load config
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize application", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "Failed to release resources", err)
		}
	}()

	if cfg.Climate.Enabled && cfg.Climate.WarmOnStartup {
		go app.WarmClimateCache(ctx)
	}

	if err := app.Router().Start(ctx); err != nil {
		appLogger.Error(ctx, "HTTP server stopped with error", err)
	}
}

//Personal.AI order the ending
