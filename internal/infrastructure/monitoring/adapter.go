// Package monitoring provides adapters to connect the domain's metrics interface with a concrete implementation like Prometheus.
package monitoring

import (
	"time"

	"github.com/turtacn/supplyrisk/internal/domain/service"
	"github.com/turtacn/supplyrisk/pkg/constants"
)

// MetricsAdapter implements the domain's service.Metrics interface, sending metrics to a Prometheus backend.
// MetricsAdapter 实现了域的 service.Metrics 接口，将指标发送到 Prometheus 后端。
type MetricsAdapter struct {
	metrics *Metrics
}

// NewMetricsAdapter creates a new adapter that wraps a concrete Prometheus Metrics object,
// satisfying the domain's Metrics interface.
// NewMetricsAdapter 创建一个包装具体 Prometheus Metrics 对象的新适配器。
func NewMetricsAdapter(metrics *Metrics) service.Metrics {
	return &MetricsAdapter{metrics: metrics}
}

// RecordAssessment 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordAssessment(country, sector string, skipClimate bool, duration time.Duration) {
	a.metrics.RecordAssessment(country, sector, skipClimate, duration)
}

// RecordClimateFetch 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordClimateFetch(outcome constants.ClimateOutcome, duration time.Duration) {
	a.metrics.RecordClimateFetch(outcome, duration)
}

// RecordClimateSource 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordClimateSource(source constants.ClimateSource) {
	a.metrics.RecordClimateSource(source)
}

// RecordBatchDeadline 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordBatchDeadline(exceeded bool) {
	a.metrics.RecordBatchDeadline(exceeded)
}

// RecordCacheAccess 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordCacheAccess(cacheType string, hit bool) {
	a.metrics.RecordCacheAccess(cacheType, hit)
}

// RecordRateLimitHit 将调用委托给底层的 Prometheus Metrics 对象。
func (a *MetricsAdapter) RecordRateLimitHit(scope string) {
	a.metrics.RecordRateLimitHit(scope)
}
