package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/supplyrisk/internal/config"
	"github.com/turtacn/supplyrisk/pkg/constants"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

func TestMetricsAdapter_RecordsOnOwnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	adapter := NewMetricsAdapter(m)

	adapter.RecordAssessment("USA", "C10-C12", false, 120*time.Millisecond)
	adapter.RecordClimateFetch(constants.ClimateOutcomeSuccess, 80*time.Millisecond)
	adapter.RecordClimateFetch(constants.ClimateOutcomeCacheHit, 0)
	adapter.RecordClimateSource(constants.ClimateSourceStatic)
	adapter.RecordBatchDeadline(true)
	adapter.RecordCacheAccess("climate_l1", true)
	adapter.RecordCacheAccess("climate_l1", false)
	adapter.RecordRateLimitHit("ip")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssessmentRequests.WithLabelValues("USA", "C10-C12", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClimateFetches.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClimateFetches.WithLabelValues("cache_hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClimateSources.WithLabelValues("static")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchDeadlines.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheAccess.WithLabelValues("climate_l1", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitHits.WithLabelValues("ip")))

	// cache hits carry no latency sample
	assert.Equal(t, 1, testutil.CollectAndCount(m.ClimateFetchLatency))
}

func TestNewMetrics_SeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

func TestZapLogger_ContextAndComponentFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewLoggerFromZap(zap.New(core)).WithComponent("ClimateClient")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	ctx = context.WithValue(ctx, constants.ContextKeyRequestID, "req-1")

	log.Info(ctx, "cache hit", logger.Fields{"country": "Japan"})
	log.Error(ctx, "climate fetch failed", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ClimateClient", fields["component"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "Japan", fields["country"])
	assert.Equal(t, assert.AnError.Error(), entries[1].ContextMap()["error"])
}

func TestZapLogger_ForContextPrefersRequestLogger(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	base := NewLoggerFromZap(zap.New(core))
	scoped := base.WithFields(logger.Fields{"request_id": "abc"})

	ctx := context.WithValue(context.Background(), constants.ContextKeyLogger, scoped)
	assert.Same(t, scoped, base.ForContext(ctx))
	assert.Same(t, base, base.ForContext(context.Background()))
}

func TestNewZapLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := NewZapLogger(&config.LogConfig{Level: "loud", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestTracingManager_Disabled(t *testing.T) {
	tm, err := NewTracingManager(&config.TracingConfig{Enabled: false}, logger.NewNoopLogger())
	require.NoError(t, err)

	assert.False(t, tm.Enabled())

	ctx, span := otel.Tracer("test").Start(context.Background(), "noop")
	span.End()
	assert.Empty(t, GetTraceID(ctx))
	assert.NoError(t, tm.Shutdown(context.Background()))
}
