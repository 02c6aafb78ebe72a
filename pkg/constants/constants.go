// Package constants defines system-wide constants for the supply-chain risk service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ================================================================================
// Service Identity
// ================================================================================

const (
	// ServiceName is reported in health responses, traces and logs
	ServiceName = "supplyrisk"

	// ServiceVersion is the API version reported by the health endpoint
	ServiceVersion = "4.0.0"
)

// ================================================================================
// Risk Dimensions
// ================================================================================

// RiskDimension names one of the five scored ESG risk axes
type RiskDimension string

const (
	DimensionClimate       RiskDimension = "climate"
	DimensionModernSlavery RiskDimension = "modern_slavery"
	DimensionPolitical     RiskDimension = "political"
	DimensionWaterStress   RiskDimension = "water_stress"
	DimensionNatureLoss    RiskDimension = "nature_loss"
)

// Dimensions lists every risk axis in canonical output order
var Dimensions = []RiskDimension{
	DimensionClimate,
	DimensionModernSlavery,
	DimensionPolitical,
	DimensionWaterStress,
	DimensionNatureLoss,
}

// DefaultRiskScore is used for every dimension when a country has no scores
const DefaultRiskScore = 2.5

// ================================================================================
// Propagation Weights
// ================================================================================

const (
	// Tier1Weight is the share of indirect risk carried by direct suppliers
	Tier1Weight = 0.50

	// Tier2Weight is the share carried by suppliers of suppliers
	Tier2Weight = 0.35

	// Tier3Weight is the share carried by the third tier
	Tier3Weight = 0.15

	// DirectBlendWeight is the share of total risk taken from the root country
	DirectBlendWeight = 0.6

	// IndirectBlendWeight is the share of total risk taken from the supply chain
	IndirectBlendWeight = 0.4
)

// TierWeights indexes the tier weights by tier number minus one
var TierWeights = [3]float64{Tier1Weight, Tier2Weight, Tier3Weight}

// ================================================================================
// Expansion Limits
// ================================================================================

const (
	// DefaultTopN is the number of tier-1 suppliers used when none is requested
	DefaultTopN = 5

	// MaxTopN caps the requested tier-1 width
	MaxTopN = 20

	// MinTopN is the smallest accepted tier-1 width
	MinTopN = 1

	// DeepTierFanout limits how many suppliers of each node are followed past tier 1
	DeepTierFanout = 5

	// DeepTierCap is the number of suppliers kept per tier after deduplication
	DeepTierCap = 20

	// DefaultSupplyKey is the coefficient table entry used when a country has none
	DefaultSupplyKey = "_default"
)

// ================================================================================
// Climate Enrichment
// ================================================================================

const (
	// DefaultAssetValue is the notional asset value sent to the hazard service
	DefaultAssetValue = 1_000_000

	// ClimateRequestTimeout bounds a single hazard-service call
	ClimateRequestTimeout = 15 * time.Second

	// ClimateBatchDeadline bounds the whole enrichment fan-out for one assessment
	ClimateBatchDeadline = 20 * time.Second

	// ClimateCacheTTL is how long a fetched loss is served from cache
	ClimateCacheTTL = 1 * time.Hour

	// ClimateAssessPath is appended to the hazard-service base URL
	ClimateAssessPath = "/assess/country"

	// RedisLossKeyPrefix namespaces expected-loss entries in the shared cache
	RedisLossKeyPrefix = "supplyrisk:climate:"
)

// ClimateSource records where an expected-loss figure came from
type ClimateSource string

const (
	ClimateSourceLive   ClimateSource = "live"
	ClimateSourceStatic ClimateSource = "static"
	ClimateSourceNone   ClimateSource = "none"
)

// ClimateOutcome labels the result of a single enrichment lookup for metrics
type ClimateOutcome string

const (
	ClimateOutcomeCacheHit  ClimateOutcome = "cache_hit"
	ClimateOutcomeL2Hit     ClimateOutcome = "l2_hit"
	ClimateOutcomeSuccess   ClimateOutcome = "success"
	ClimateOutcomeHTTPError ClimateOutcome = "http_error"
	ClimateOutcomeTimeout   ClimateOutcome = "timeout"
	ClimateOutcomeError     ClimateOutcome = "error"
	ClimateOutcomeDisabled  ClimateOutcome = "disabled"
)

// ================================================================================
// Reference Data
// ================================================================================

// ReferenceSource selects where reference tables are loaded from
type ReferenceSource string

const (
	ReferenceSourceEmbedded ReferenceSource = "embedded"
	ReferenceSourceDatabase ReferenceSource = "database"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type used for request-scoped values
type ContextKey string

const (
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyTraceID   ContextKey = "trace_id"
	ContextKeyLogger    ContextKey = "logger"
)

// ================================================================================
// HTTP
// ================================================================================

const (
	// HeaderRequestID carries the request identifier in and out of the service
	HeaderRequestID = "X-Request-ID"

	// APIPrefix is the route group for the public API
	APIPrefix = "/api"
)

//Personal.AI order the ending
