package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/supplyrisk/pkg/constants"
)

// RequestMetrics is the subset of the Prometheus metrics the HTTP layer records.
type RequestMetrics interface {
	ActiveRequestsInc(path, method string)
	ActiveRequestsDec(path, method string)
	ObserveRequest(path, method string, status int, duration time.Duration)
}

// Observability returns a Gin middleware that integrates Prometheus metrics and OpenTelemetry tracing.
// Metrics are labeled with the route template to keep cardinality low.
// Observability 返回一个集成了 Prometheus 指标和 OpenTelemetry 跟踪的 Gin 中间件。
func Observability(metrics RequestMetrics) gin.HandlerFunc {
	tracer := otel.Tracer(constants.ServiceName + "/http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "not_found"
		}
		method := c.Request.Method

		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set(string(constants.ContextKeyTraceID), sc.TraceID().String())
		}
		c.Request = c.Request.WithContext(ctx)

		if metrics != nil {
			metrics.ActiveRequestsInc(path, method)
			defer metrics.ActiveRequestsDec(path, method)
		}

		c.Next()

		status := c.Writer.Status()
		if metrics != nil {
			metrics.ObserveRequest(path, method, status, time.Since(start))
		}
		span.SetAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
			attribute.Int("http.status_code", status),
			attribute.String("http.client_ip", c.ClientIP()),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
