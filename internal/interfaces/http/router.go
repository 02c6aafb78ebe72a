package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/config"
	"github.com/turtacn/supplyrisk/internal/domain/service"
	"github.com/turtacn/supplyrisk/internal/interfaces/http/handlers"
	"github.com/turtacn/supplyrisk/internal/interfaces/http/middleware"
	"github.com/turtacn/supplyrisk/pkg/constants"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// Dependencies groups what the router wires into routes.
type Dependencies struct {
	Health         *handlers.HealthHandler
	Assessment     *handlers.AssessmentHandler
	ClimateCache   *handlers.ClimateCacheHandler
	Limiter        middleware.Limiter
	RequestMetrics middleware.RequestMetrics
	Metrics        service.Metrics
	Gatherer       prometheus.Gatherer
}

// Router HTTP 路由器
type Router struct {
	engine *gin.Engine
	config *config.Config
	logger logger.Logger
	deps   Dependencies
	server *http.Server
}

// NewRouter 创建路由器
func NewRouter(cfg *config.Config, log logger.Logger, deps Dependencies) *Router {
	// 设置 Gin 模式
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine: gin.New(),
		config: cfg,
		logger: log.WithComponent("Router"),
		deps:   deps,
	}
	r.setupRoutes()
	return r
}

// Engine exposes the gin engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 全局中间件
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Observability(r.deps.RequestMetrics))
	r.engine.Use(middleware.Logging(r.logger))

	// CORS 配置
	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:  r.config.Server.AllowedOrigins,
		AllowMethods:  []string{"GET", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", constants.HeaderRequestID},
		ExposeHeaders: []string{constants.HeaderRequestID, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	// 健康检查路由
	r.engine.GET("/live", r.deps.Health.LivenessCheck)
	r.engine.GET("/ready", r.deps.Health.ReadinessCheck)

	// Prometheus metrics
	gatherer := r.deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Pprof 性能分析
	if r.config.Server.PprofEnabled {
		pprof.Register(r.engine)
	}

	api := r.engine.Group(constants.APIPrefix)
	{
		api.GET("/health", r.deps.Health.HealthCheck)
		api.GET("/countries", r.deps.Assessment.ListCountries)
		api.GET("/sectors", r.deps.Assessment.ListSectors)

		assess := api.Group("/assess")
		if r.config.RateLimit.Enabled && r.deps.Limiter != nil {
			assess.Use(middleware.RateLimit(r.deps.Limiter, r.deps.Metrics, r.logger))
		}
		assess.GET("", r.deps.Assessment.Assess)

		climate := api.Group("/climate")
		{
			climate.GET("/cache", r.deps.ClimateCache.Stats)
			climate.DELETE("/cache", r.deps.ClimateCache.Clear)
		}
	}

	// 404 处理
	r.engine.NoRoute(func(c *gin.Context) {
		dto.SendError(c, apperrors.ErrNotFound("Route "+c.Request.URL.Path))
	})
}

// Start 启动 HTTP 服务器，ctx 取消后优雅关闭
func (r *Router) Start(ctx context.Context) error {
	addr := r.config.Server.Addr()
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    r.config.Server.ReadTimeout,
		WriteTimeout:   r.config.Server.WriteTimeout,
		IdleTimeout:    r.config.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info(ctx, "Starting HTTP server", logger.Fields{"address": addr})
		if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	r.logger.Info(context.Background(), "Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.server.Shutdown(shutdownCtx); err != nil {
		r.logger.Error(shutdownCtx, "Server forced to shutdown", err)
		return err
	}
	r.logger.Info(shutdownCtx, "HTTP server stopped")
	return nil
}

//Personal.AI order the ending
