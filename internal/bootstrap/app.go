// Package bootstrap wires configuration into the running service graph.
// It is shared by the HTTP server and the admin CLI.
package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	appservice "github.com/turtacn/supplyrisk/internal/application/service"
	"github.com/turtacn/supplyrisk/internal/config"
	"github.com/turtacn/supplyrisk/internal/domain/repository"
	domainservice "github.com/turtacn/supplyrisk/internal/domain/service"
	"github.com/turtacn/supplyrisk/internal/infrastructure/climate"
	"github.com/turtacn/supplyrisk/internal/infrastructure/monitoring"
	"github.com/turtacn/supplyrisk/internal/infrastructure/persistence/gormstore"
	"github.com/turtacn/supplyrisk/internal/infrastructure/persistence/redis"
	"github.com/turtacn/supplyrisk/internal/infrastructure/ratelimit"
	"github.com/turtacn/supplyrisk/internal/infrastructure/reference"
	httpapi "github.com/turtacn/supplyrisk/internal/interfaces/http"
	"github.com/turtacn/supplyrisk/internal/interfaces/http/handlers"
	"github.com/turtacn/supplyrisk/pkg/constants"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// App holds every long-lived component of the service.
type App struct {
	Config       *config.Config
	Logger       logger.Logger
	Registry     *prometheus.Registry
	Metrics      *monitoring.Metrics
	Tracing      *monitoring.TracingManager
	Refs         repository.ReferenceRepository
	Climate      *climate.Client
	Redis        *redis.RedisConnection
	Assessment   appservice.AssessmentAppService
	ClimateCache appservice.ClimateCacheAppService

	closers []func(context.Context) error
}

// New builds the application graph from cfg.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: log}

	// 1. Observability
	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.Metrics = monitoring.NewMetrics(app.Registry)
	metrics := monitoring.NewMetricsAdapter(app.Metrics)

	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, log)
	if err != nil {
		return nil, err
	}
	app.Tracing = tracing
	app.closers = append(app.closers, tracing.Shutdown)

	// 2. Reference tables
	refs, err := loadReference(ctx, &cfg.Reference, log)
	if err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	app.Refs = refs

	// 3. Climate enrichment
	opts := []climate.Option{}
	if cfg.Redis.Enabled {
		conn := redis.NewRedisConnection(&redis.Config{
			Mode:         redis.ConnectionMode(cfg.Redis.Mode),
			Address:      cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			ClusterAddrs: cfg.Redis.ClusterAddrs,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, log)
		if err := conn.Connect(ctx); err != nil {
			_ = app.Close(ctx)
			return nil, apperrors.ErrCache("connect", err)
		}
		app.Redis = conn
		app.closers = append(app.closers, func(context.Context) error { return conn.Close() })
		opts = append(opts, climate.WithStore(redis.NewExpectedLossStore(conn, cfg.Redis.KeyPrefix, log)))
	}
	app.Climate = climate.NewClient(climate.Config{
		BaseURL:        cfg.Climate.BaseURL,
		AssetValue:     cfg.Climate.AssetValue,
		RequestTimeout: cfg.Climate.RequestTimeout,
		CacheTTL:       cfg.Climate.CacheTTL,
		StoreTTL:       cfg.Redis.TTL,
		Enabled:        cfg.Climate.Enabled,
	}, log, metrics, opts...)

	// 4. Application services
	resolver := appservice.NewLossResolver(app.Climate, refs, cfg.Climate.BatchDeadline, log, metrics)
	app.Assessment = appservice.NewAssessmentAppService(refs, resolver, appservice.AssessmentConfig{
		MaxTopN: cfg.Assessment.MaxTopN,
	}, log, metrics)
	app.ClimateCache = appservice.NewClimateCacheAppService(app.Climate, refs, log)

	log.Info(ctx, "application initialized", logger.Fields{
		"reference_source": cfg.Reference.Source,
		"climate_enabled":  cfg.Climate.Enabled,
		"redis_enabled":    cfg.Redis.Enabled,
		"countries":        len(refs.Countries()),
	})
	return app, nil
}

func loadReference(ctx context.Context, cfg *config.ReferenceConfig, log logger.Logger) (repository.ReferenceRepository, error) {
	if constants.ReferenceSource(cfg.Source) != constants.ReferenceSourceDatabase {
		repo, err := reference.NewEmbeddedRepository()
		if err != nil {
			return nil, apperrors.ErrReferenceLoad(string(constants.ReferenceSourceEmbedded), err)
		}
		return repo, nil
	}

	db, err := gormstore.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, apperrors.ErrReferenceLoad(cfg.Driver, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		// the tables are read once into memory
		defer sqlDB.Close()
	}
	repo, err := gormstore.NewStore(db, log).NewRepository(ctx)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// DomainMetrics returns the domain metrics adapter bound to the app registry.
func (a *App) DomainMetrics() domainservice.Metrics {
	return monitoring.NewMetricsAdapter(a.Metrics)
}

// Router builds the HTTP router for the app.
func (a *App) Router() *httpapi.Router {
	var redisCheck handlers.HealthChecker
	if a.Redis != nil {
		redisCheck = a.Redis
	}
	cfg := a.Config
	return httpapi.NewRouter(cfg, a.Logger, httpapi.Dependencies{
		Health:         handlers.NewHealthHandler(a.Refs, redisCheck, a.Logger),
		Assessment:     handlers.NewAssessmentHandler(a.Assessment, cfg.Assessment.DefaultTopN, cfg.Assessment.MaxTopN, a.Logger),
		ClimateCache:   handlers.NewClimateCacheHandler(a.ClimateCache),
		Limiter:        ratelimit.NewKeyedLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute),
		RequestMetrics: a.Metrics,
		Metrics:        a.DomainMetrics(),
		Gatherer:       a.Registry,
	})
}

// WarmClimateCache pre-populates the expected-loss cache for every country.
func (a *App) WarmClimateCache(ctx context.Context) {
	report, err := a.ClimateCache.Warm(ctx, nil, a.Config.Climate.WarmParallel)
	if err != nil {
		a.Logger.Error(ctx, "climate cache warm-up failed", err)
		return
	}
	a.Logger.Info(ctx, "climate cache warm-up finished", logger.Fields{
		"succeeded": len(report.Succeeded),
		"failed":    len(report.Failed),
	})
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
