package climate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/domain/service"
	"github.com/turtacn/supplyrisk/pkg/constants"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// LossStore is an optional second-level cache shared between instances.
type LossStore interface {
	Get(ctx context.Context, key string) (*models.ExpectedLoss, time.Time, error)
	Set(ctx context.Context, key string, loss *models.ExpectedLoss, fetchedAt time.Time, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Config controls how the hazard service is called.
type Config struct {
	BaseURL        string
	AssetValue     float64
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	StoreTTL       time.Duration // shared store entries; zero means CacheTTL
	Enabled        bool
}

// DefaultConfig returns the production call contract.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		AssetValue:     constants.DefaultAssetValue,
		RequestTimeout: constants.ClimateRequestTimeout,
		CacheTTL:       constants.ClimateCacheTTL,
		Enabled:        true,
	}
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStore enables the shared second-level cache.
func WithStore(store LossStore) Option {
	return func(c *Client) { c.store = store }
}

// WithClock replaces the cache time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.cache.SetClock(now) }
}

// Client fetches live expected-loss estimates. It never returns an error:
// every failure is reported as absent data.
// Client 获取实时预期损失估计；所有失败都以“无数据”返回。
type Client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
	cache      *LossCache
	store      LossStore
	group      singleflight.Group
	logger     logger.Logger
	metrics    service.Metrics
	tracer     trace.Tracer
}

var _ service.ClimateRiskProvider = (*Client)(nil)

// NewClient creates a hazard-service client with its own cache.
func NewClient(cfg Config, log logger.Logger, metrics service.Metrics, opts ...Option) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = constants.ClimateRequestTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.ClimateCacheTTL
	}
	if cfg.StoreTTL <= 0 {
		cfg.StoreTTL = cfg.CacheTTL
	}
	if cfg.AssetValue <= 0 {
		cfg.AssetValue = constants.DefaultAssetValue
	}
	if metrics == nil {
		metrics = service.NopMetrics{}
	}

	c := &Client{
		cfg:        cfg,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + constants.ClimateAssessPath,
		httpClient: &http.Client{},
		cache:      NewLossCache(cfg.CacheTTL),
		logger:     log.WithComponent("ClimateClient"),
		metrics:    metrics,
		tracer:     otel.Tracer("supplyrisk/climate"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchExpectedLoss returns the loss for a country display name, or nil.
func (c *Client) FetchExpectedLoss(ctx context.Context, countryName string) *models.ExpectedLoss {
	if !c.cfg.Enabled {
		c.metrics.RecordClimateFetch(constants.ClimateOutcomeDisabled, 0)
		return nil
	}

	key := strings.ToLower(countryName)
	if loss, ok := c.cache.Get(key); ok {
		c.logger.Debug(ctx, "cache hit", logger.Fields{"country": countryName})
		c.metrics.RecordCacheAccess("climate_l1", true)
		c.metrics.RecordClimateFetch(constants.ClimateOutcomeCacheHit, 0)
		return loss
	}
	c.metrics.RecordCacheAccess("climate_l1", false)

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		return c.load(ctx, countryName, key), nil
	})
	loss, _ := v.(*models.ExpectedLoss)
	return loss
}

func (c *Client) load(ctx context.Context, countryName, key string) *models.ExpectedLoss {
	if c.store != nil {
		loss, fetchedAt, err := c.store.Get(ctx, key)
		if err != nil {
			c.logger.Warn(ctx, "shared cache lookup failed", logger.Fields{"country": countryName, "error": err.Error()})
		}
		// Promotion keeps the original fetch time; a shared entry already
		// past the TTL counts as a miss.
		if loss != nil && c.cache.SetAt(key, loss, fetchedAt) {
			c.metrics.RecordCacheAccess("climate_l2", true)
			c.metrics.RecordClimateFetch(constants.ClimateOutcomeL2Hit, 0)
			return loss
		}
		c.metrics.RecordCacheAccess("climate_l2", false)
	}

	start := time.Now()
	loss, outcome := c.fetchLive(ctx, countryName)
	c.metrics.RecordClimateFetch(outcome, time.Since(start))
	if loss == nil {
		return nil
	}

	fetchedAt := c.cache.now()
	c.cache.SetAt(key, loss, fetchedAt)
	if c.store != nil {
		if err := c.store.Set(ctx, key, loss, fetchedAt, c.cfg.StoreTTL); err != nil {
			c.logger.Warn(ctx, "shared cache write failed", logger.Fields{"country": countryName, "error": err.Error()})
		}
	}
	return loss
}

// fetchLive issues exactly one request bounded by the per-call timeout.
func (c *Client) fetchLive(ctx context.Context, countryName string) (*models.ExpectedLoss, constants.ClimateOutcome) {
	ctx, span := c.tracer.Start(ctx, "climate.fetch", trace.WithAttributes(
		attribute.String("climate.country", countryName),
	))
	defer span.End()

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	c.logger.Info(ctx, "fetching live climate data", logger.Fields{"country": countryName})

	body, err := json.Marshal(assessRequest{Country: countryName, AssetValue: c.cfg.AssetValue})
	if err != nil {
		return c.fail(ctx, span, countryName, constants.ClimateOutcomeError, err)
	}
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(ctx, span, countryName, constants.ClimateOutcomeError, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return c.fail(ctx, span, countryName, constants.ClimateOutcomeTimeout,
				fmt.Errorf("timeout after %s", c.cfg.RequestTimeout))
		}
		return c.fail(ctx, span, countryName, constants.ClimateOutcomeError, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(ctx, span, countryName, constants.ClimateOutcomeHTTPError,
			fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var payload assessResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return c.fail(ctx, span, countryName, constants.ClimateOutcomeTimeout,
				fmt.Errorf("timeout after %s", c.cfg.RequestTimeout))
		}
		return c.fail(ctx, span, countryName, constants.ClimateOutcomeError, err)
	}
	if err := payload.validate(); err != nil {
		return c.fail(ctx, span, countryName, constants.ClimateOutcomeError, err)
	}

	loss := payload.toExpectedLoss()
	c.logger.Info(ctx, "live climate data fetched", logger.Fields{
		"country":              countryName,
		"expected_annual_loss": loss.TotalAnnualLoss,
	})
	return loss, constants.ClimateOutcomeSuccess
}

func (c *Client) fail(ctx context.Context, span trace.Span, countryName string, outcome constants.ClimateOutcome, err error) (*models.ExpectedLoss, constants.ClimateOutcome) {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(outcome))
	c.logger.Error(ctx, "climate fetch failed", err, logger.Fields{
		"country": countryName,
		"outcome": outcome,
	})
	return nil, outcome
}

// Stats reports the in-process cache contents.
func (c *Client) Stats() CacheStats {
	return c.cache.Stats()
}

// Clear empties the in-process cache and, when configured, the shared store.
func (c *Client) Clear(ctx context.Context) error {
	c.cache.Clear()
	c.logger.Info(ctx, "climate cache cleared")
	if c.store != nil {
		return c.store.Clear(ctx)
	}
	return nil
}

// WarmReport lists which countries were loaded into the cache.
type WarmReport struct {
	Succeeded []string `json:"succeeded" yaml:"succeeded"`
	Failed    []string `json:"failed" yaml:"failed"`
}

// Warm fetches every named country with bounded parallelism so later
// assessments are served from cache.
func (c *Client) Warm(ctx context.Context, countryNames []string, parallelism int) WarmReport {
	if parallelism <= 0 {
		parallelism = 4
	}
	results := make([]*models.ExpectedLoss, len(countryNames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, name := range countryNames {
		g.Go(func() error {
			results[i] = c.FetchExpectedLoss(gctx, name)
			return nil
		})
	}
	_ = g.Wait()

	report := WarmReport{Succeeded: []string{}, Failed: []string{}}
	for i, name := range countryNames {
		if results[i] != nil {
			report.Succeeded = append(report.Succeeded, name)
		} else {
			report.Failed = append(report.Failed, name)
		}
	}
	c.logger.Info(ctx, "climate cache warmed", logger.Fields{
		"succeeded": len(report.Succeeded),
		"failed":    len(report.Failed),
	})
	return report
}
