package service

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/domain/repository"
	domainService "github.com/turtacn/supplyrisk/internal/domain/service"
	"github.com/turtacn/supplyrisk/pkg/constants"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// LossResolution is the outcome of one enrichment batch.
type LossResolution struct {
	Losses   map[string]*models.ExpectedLoss
	Sources  map[string]constants.ClimateSource
	Exceeded bool
}

// LossResolver fetches live expected losses for a set of country codes in
// parallel and falls back to the static snapshot for anything that did not
// arrive before the batch deadline.
// LossResolver 并发获取实时预期损失，超时未返回的国家回退到静态快照。
type LossResolver struct {
	climate  domainService.ClimateRiskProvider
	refs     repository.ReferenceRepository
	deadline time.Duration
	logger   logger.Logger
	metrics  domainService.Metrics
	tracer   trace.Tracer
}

// NewLossResolver creates a new LossResolver
func NewLossResolver(
	climate domainService.ClimateRiskProvider,
	refs repository.ReferenceRepository,
	deadline time.Duration,
	log logger.Logger,
	metrics domainService.Metrics,
) *LossResolver {
	if deadline <= 0 {
		deadline = constants.ClimateBatchDeadline
	}
	if metrics == nil {
		metrics = domainService.NopMetrics{}
	}
	return &LossResolver{
		climate:  climate,
		refs:     refs,
		deadline: deadline,
		logger:   log.WithComponent("LossResolver"),
		metrics:  metrics,
		tracer:   otel.Tracer("supplyrisk/assessment"),
	}
}

// Resolve returns a loss for every code that has live or static data.
//
// In-flight fetches are not cancelled when the deadline fires. They run on a
// context detached from ctx and finish on their own per-call timeout; a result
// that lands after the batch is sealed is dropped.
func (r *LossResolver) Resolve(ctx context.Context, codes []string) LossResolution {
	ctx, span := r.tracer.Start(ctx, "assessment.resolve_losses", trace.WithAttributes(
		attribute.Int("climate.batch_size", len(codes)),
	))
	defer span.End()

	var (
		mu     sync.Mutex
		sealed bool
		live   = make(map[string]*models.ExpectedLoss, len(codes))
	)

	fetchCtx := context.WithoutCancel(ctx)
	var g errgroup.Group
	for _, code := range codes {
		name := r.refs.CountryName(code)
		g.Go(func() error {
			loss := r.climate.FetchExpectedLoss(fetchCtx, name)
			mu.Lock()
			defer mu.Unlock()
			if !sealed && loss != nil {
				live[code] = loss
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timer := time.NewTimer(r.deadline)
	defer timer.Stop()

	exceeded := false
	select {
	case <-done:
	case <-timer.C:
		exceeded = true
	case <-ctx.Done():
		exceeded = true
	}

	mu.Lock()
	sealed = true
	mu.Unlock()

	if exceeded {
		r.logger.Warn(ctx, "climate batch deadline exceeded", logger.Fields{
			"deadline": r.deadline.String(),
			"resolved": len(live),
			"total":    len(codes),
		})
	}
	r.metrics.RecordBatchDeadline(exceeded)
	span.SetAttributes(attribute.Bool("climate.deadline_exceeded", exceeded))

	res := LossResolution{
		Losses:   make(map[string]*models.ExpectedLoss, len(codes)),
		Sources:  make(map[string]constants.ClimateSource, len(codes)),
		Exceeded: exceeded,
	}
	for _, code := range codes {
		source := constants.ClimateSourceNone
		if loss, ok := live[code]; ok {
			res.Losses[code] = loss
			source = constants.ClimateSourceLive
		} else if static := r.refs.StaticExpectedLoss(code); static != nil {
			r.logger.Info(ctx, "falling back to static expected loss", logger.Fields{"country": code})
			res.Losses[code] = static
			source = constants.ClimateSourceStatic
		}
		res.Sources[code] = source
		r.metrics.RecordClimateSource(source)
	}
	return res
}
