// Package service holds the pure propagation engine: supplier graph expansion
// and tier-weighted risk aggregation.
package service

import (
	"context"
	"time"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/pkg/constants"
)

//go:generate mockery --name ClimateRiskProvider --output mocks --outpkg mocks
// ClimateRiskProvider returns a live expected loss for a country display name.
// A nil result means the data is unavailable; implementations never fail outright.
// ClimateRiskProvider 按国家名称返回实时预期损失；nil 表示数据不可用。
type ClimateRiskProvider interface {
	FetchExpectedLoss(ctx context.Context, countryName string) *models.ExpectedLoss
}

// Metrics defines the interface for collecting business metrics.
// The Prometheus implementation lives in infrastructure/monitoring.
// Metrics 定义了收集业务指标的接口。
type Metrics interface {
	// RecordAssessment records a completed assessment and its latency.
	// RecordAssessment 记录一次完成的评估及其耗时。
	RecordAssessment(country, sector string, skipClimate bool, duration time.Duration)

	// RecordClimateFetch records the outcome of one enrichment lookup.
	// RecordClimateFetch 记录一次气候数据查询的结果。
	RecordClimateFetch(outcome constants.ClimateOutcome, duration time.Duration)

	// RecordClimateSource records where a country's loss figure came from.
	RecordClimateSource(source constants.ClimateSource)

	// RecordBatchDeadline records whether an enrichment batch hit its deadline.
	RecordBatchDeadline(exceeded bool)

	// RecordCacheAccess records a cache hit or miss.
	// RecordCacheAccess 记录缓存命中或未命中。
	RecordCacheAccess(cacheType string, hit bool)

	// RecordRateLimitHit records an event when a rate limit is triggered.
	RecordRateLimitHit(scope string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RecordAssessment(string, string, bool, time.Duration)         {}
func (NopMetrics) RecordClimateFetch(constants.ClimateOutcome, time.Duration) {}
func (NopMetrics) RecordClimateSource(constants.ClimateSource)                {}
func (NopMetrics) RecordBatchDeadline(bool)                                   {}
func (NopMetrics) RecordCacheAccess(string, bool)                             {}
func (NopMetrics) RecordRateLimitHit(string)                                  {}
