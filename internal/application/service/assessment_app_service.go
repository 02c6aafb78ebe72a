// Package service provides application-level services that orchestrate domain services and repositories
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/domain/repository"
	domainService "github.com/turtacn/supplyrisk/internal/domain/service"
	"github.com/turtacn/supplyrisk/pkg/constants"
	"github.com/turtacn/supplyrisk/pkg/logger"
	"github.com/turtacn/supplyrisk/pkg/utils"
)

// AssessmentAppService defines the interface for the supply-chain assessment application service
type AssessmentAppService interface {
	// Assess validates the request and runs one full propagation.
	Assess(ctx context.Context, req *dto.AssessRequest) (*models.AssessmentResult, error)

	// Countries lists the assessable countries
	Countries(ctx context.Context) []models.Country

	// Sectors lists the assessable sectors
	Sectors(ctx context.Context) []models.Sector
}

// AssessmentConfig holds the request-independent knobs of the orchestrator.
type AssessmentConfig struct {
	MaxTopN int
}

// assessmentAppServiceImpl is the concrete implementation of AssessmentAppService
type assessmentAppServiceImpl struct {
	refs       repository.ReferenceRepository
	expander   *domainService.SupplierExpander
	aggregator *domainService.RiskAggregator
	resolver   *LossResolver
	cfg        AssessmentConfig
	logger     logger.Logger
	metrics    domainService.Metrics
	tracer     trace.Tracer
	now        func() time.Time
}

// NewAssessmentAppService creates a new instance of AssessmentAppService
func NewAssessmentAppService(
	refs repository.ReferenceRepository,
	resolver *LossResolver,
	cfg AssessmentConfig,
	log logger.Logger,
	metrics domainService.Metrics,
) AssessmentAppService {
	if cfg.MaxTopN <= 0 {
		cfg.MaxTopN = constants.MaxTopN
	}
	if metrics == nil {
		metrics = domainService.NopMetrics{}
	}
	return &assessmentAppServiceImpl{
		refs:       refs,
		expander:   domainService.NewSupplierExpander(refs),
		aggregator: domainService.NewRiskAggregator(refs),
		resolver:   resolver,
		cfg:        cfg,
		logger:     log.WithComponent("AssessmentAppService"),
		metrics:    metrics,
		tracer:     otel.Tracer("supplyrisk/assessment"),
		now:        time.Now,
	}
}

// Assess implements the full propagation: expand tiers, enrich with losses, aggregate.
func (s *assessmentAppServiceImpl) Assess(ctx context.Context, req *dto.AssessRequest) (*models.AssessmentResult, error) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "assessment.assess", trace.WithAttributes(
		attribute.String("assessment.country", req.Country),
		attribute.String("assessment.sector", req.Sector),
		attribute.Bool("assessment.skip_climate", req.SkipClimate),
		attribute.Int("assessment.top_n", req.TopN),
	))
	defer span.End()

	// 1. Validate root codes
	if err := req.Validate(s.refs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		s.logger.Warn(ctx, "rejected assessment request", logger.Fields{
			"country": req.Country,
			"sector":  req.Sector,
			"error":   err.Error(),
		})
		return nil, err
	}
	topN := utils.ClampInt(req.TopN, constants.MinTopN, s.cfg.MaxTopN)

	// 2. Expand the supplier graph
	tiers := s.expander.ExpandTiers(req.Country, req.Sector, topN)

	// 3. Enrich with expected losses
	in := domainService.AggregationInput{
		Country:     req.Country,
		Sector:      req.Sector,
		TopN:        topN,
		Tiers:       tiers,
		DirectRisk:  s.refs.RiskScores(req.Country),
		SkipClimate: req.SkipClimate,
	}
	var sources map[string]constants.ClimateSource
	if !req.SkipClimate {
		resolution := s.resolver.Resolve(ctx, BatchCountries(req.Country, tiers))
		in.Losses = resolution.Losses
		sources = resolution.Sources
	}

	// 4. Aggregate
	result := s.aggregator.Aggregate(in)
	result.AssessmentID = uuid.NewString()
	result.AssessedAt = start.UTC()
	result.ClimateSources = sources

	duration := s.now().Sub(start)
	s.metrics.RecordAssessment(req.Country, req.Sector, req.SkipClimate, duration)
	dominant, dominantScore := result.TotalRisk.Max()
	s.logger.Info(ctx, "assessment completed", logger.Fields{
		"assessment_id":      result.AssessmentID,
		"country":            req.Country,
		"sector":             req.Sector,
		"top_n":              topN,
		"skip_climate":       req.SkipClimate,
		"dominant_dimension": string(dominant),
		"dominant_score":     dominantScore,
		"duration_ms":        duration.Milliseconds(),
	})
	return result, nil
}

func (s *assessmentAppServiceImpl) Countries(_ context.Context) []models.Country {
	return s.refs.Countries()
}

func (s *assessmentAppServiceImpl) Sectors(_ context.Context) []models.Sector {
	return s.refs.Sectors()
}

// BatchCountries returns the root followed by every distinct supplier country
// across all tiers, in first-seen order.
func BatchCountries(root string, tiers models.TierEdges) []string {
	codes := []string{root}
	seen := map[string]struct{}{root: {}}
	for _, code := range tiers.Countries() {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
