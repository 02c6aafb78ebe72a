package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/supplyrisk/internal/application/service"
	"github.com/turtacn/supplyrisk/internal/infrastructure/climate"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

type fakeCache struct {
	warmed   []string
	clearErr error
}

func (f *fakeCache) Stats() climate.CacheStats {
	return climate.CacheStats{Size: len(f.warmed), Countries: f.warmed}
}

func (f *fakeCache) Clear(context.Context) error { return f.clearErr }

func (f *fakeCache) Warm(_ context.Context, names []string, _ int) climate.WarmReport {
	f.warmed = append(f.warmed, names...)
	return climate.WarmReport{Succeeded: names, Failed: []string{}}
}

func TestClimateCacheAppService_WarmMapsCodesToNames(t *testing.T) {
	repo := embeddedRepo(t)
	cache := &fakeCache{}
	svc := service.NewClimateCacheAppService(cache, repo, logger.NewNoopLogger())

	report, err := svc.Warm(context.Background(), []string{"USA", "KOR"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"United States", "South Korea"}, report.Succeeded)

	_, err = svc.Warm(context.Background(), []string{"XXX"}, 2)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidRequest))
}

func TestClimateCacheAppService_WarmAllCountries(t *testing.T) {
	repo := embeddedRepo(t)
	cache := &fakeCache{}
	svc := service.NewClimateCacheAppService(cache, repo, logger.NewNoopLogger())

	report, err := svc.Warm(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Len(t, report.Succeeded, len(repo.Countries()))
	assert.Equal(t, len(repo.Countries()), svc.Stats(context.Background()).Size)
}

func TestClimateCacheAppService_ClearWrapsStoreErrors(t *testing.T) {
	svc := service.NewClimateCacheAppService(&fakeCache{clearErr: errors.New("redis down")}, embeddedRepo(t), logger.NewNoopLogger())
	err := svc.Clear(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.CodeCache))
}
