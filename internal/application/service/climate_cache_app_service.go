package service

import (
	"context"

	"github.com/turtacn/supplyrisk/internal/domain/repository"
	"github.com/turtacn/supplyrisk/internal/infrastructure/climate"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// ClimateCache is the diagnostic surface of the enrichment client.
type ClimateCache interface {
	Stats() climate.CacheStats
	Clear(ctx context.Context) error
	Warm(ctx context.Context, countryNames []string, parallelism int) climate.WarmReport
}

// ClimateCacheAppService inspects, clears and pre-populates the expected-loss cache.
// ClimateCacheAppService 用于查看、清空和预热预期损失缓存。
type ClimateCacheAppService interface {
	Stats(ctx context.Context) climate.CacheStats
	Clear(ctx context.Context) error
	// Warm fetches the given country codes, or every known country when codes is empty.
	Warm(ctx context.Context, codes []string, parallelism int) (climate.WarmReport, error)
}

type climateCacheAppServiceImpl struct {
	cache  ClimateCache
	refs   repository.ReferenceRepository
	logger logger.Logger
}

// NewClimateCacheAppService creates a new instance of ClimateCacheAppService
func NewClimateCacheAppService(cache ClimateCache, refs repository.ReferenceRepository, log logger.Logger) ClimateCacheAppService {
	return &climateCacheAppServiceImpl{
		cache:  cache,
		refs:   refs,
		logger: log.WithComponent("ClimateCacheAppService"),
	}
}

func (s *climateCacheAppServiceImpl) Stats(_ context.Context) climate.CacheStats {
	return s.cache.Stats()
}

func (s *climateCacheAppServiceImpl) Clear(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear climate cache", err)
		return apperrors.ErrCache("clear", err)
	}
	return nil
}

func (s *climateCacheAppServiceImpl) Warm(ctx context.Context, codes []string, parallelism int) (climate.WarmReport, error) {
	if len(codes) == 0 {
		for _, c := range s.refs.Countries() {
			codes = append(codes, c.Code)
		}
	}
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if !s.refs.IsValidCountry(code) {
			return climate.WarmReport{}, apperrors.ErrUnknownCountry(code)
		}
		names = append(names, s.refs.CountryName(code))
	}
	return s.cache.Warm(ctx, names, parallelism), nil
}
