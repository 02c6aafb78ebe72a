// Package middleware holds the gin middleware chain of the HTTP boundary.
package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/pkg/constants"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one, and stores
// it in both the gin context and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(string(constants.ContextKeyRequestID), requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)
		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Logging logs every request after it completes.
func Logging(log logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error(c.Request.Context(), "Request failed", errors.New(c.Errors.String()), fields)
		case c.Writer.Status() >= 400:
			log.Warn(c.Request.Context(), "Request rejected", fields)
		default:
			log.Info(c.Request.Context(), "Request processed", fields)
		}
	}
}

// Recovery recovers from panics and answers with a 500 body.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error(c.Request.Context(), "Panic recovered", errors.New("panic"), logger.Fields{"panic": rec})
				dto.SendError(c, apperrors.ErrInternalServer("Internal server error"))
			}
		}()
		c.Next()
	}
}
