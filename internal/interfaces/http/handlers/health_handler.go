package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/domain/repository"
	"github.com/turtacn/supplyrisk/pkg/constants"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// HealthChecker checks one dependency.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	refs  repository.ReferenceRepository
	redis HealthChecker
	log   logger.Logger
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when the shared cache is disabled.
func NewHealthHandler(refs repository.ReferenceRepository, redis HealthChecker, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		refs:  refs,
		redis: redis,
		log:   log.WithComponent("HealthHandler"),
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Reports service status, reference table sizes and dependency checks.
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := &dto.HealthResponse{
		Status:    "healthy",
		Version:   constants.ServiceVersion,
		Countries: len(h.refs.Countries()),
		Sectors:   len(h.refs.Sectors()),
		Checks:    h.performChecks(c.Request.Context()),
	}

	httpStatus := http.StatusOK
	for _, checkStatus := range resp.Checks {
		if checkStatus != "ok" {
			resp.Status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}
	c.JSON(httpStatus, resp)
}

// ReadinessCheck godoc
// @Summary      Readiness Check
// @Tags         health
// @Router       /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	h.HealthCheck(c)
}

// LivenessCheck godoc
// @Summary      Liveness Check
// @Tags         health
// @Router       /live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive", "timestamp": time.Now().UTC()})
}

func (h *HealthHandler) performChecks(ctx context.Context) map[string]string {
	checks := map[string]string{"reference": "ok"}
	if len(h.refs.Countries()) == 0 {
		checks["reference"] = "empty"
	}
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx); err != nil {
			h.log.Warn(ctx, "redis health check failed", logger.Fields{"error": err.Error()})
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	}
	return checks
}
