package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/domain/service"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// Limiter decides per key whether a request may proceed.
type Limiter interface {
	Allow(key string) bool
}

// RateLimit rejects clients that exceed their per-IP budget with 429.
func RateLimit(limiter Limiter, metrics service.Metrics, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.Allow(ip) {
			c.Next()
			return
		}

		if metrics != nil {
			metrics.RecordRateLimitHit("ip")
		}
		log.Warn(c.Request.Context(), "rate limit exceeded", logger.Fields{"client_ip": ip, "path": c.FullPath()})
		if ra, ok := limiter.(interface{ RetryAfter(string) time.Duration }); ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ra.RetryAfter(ip).Seconds()))))
		}
		dto.SendError(c, apperrors.ErrRateLimited("ip"))
	}
}
