package climate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/supplyrisk/internal/domain/models"
	"github.com/turtacn/supplyrisk/internal/infrastructure/climate"
)

func TestLossCache_ExpiresAtTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := climate.NewLossCache(time.Hour)
	c.SetClock(func() time.Time { return now })

	loss := &models.ExpectedLoss{TotalAnnualLoss: 12}
	c.Set("germany", loss)

	now = now.Add(time.Hour - time.Nanosecond)
	got, ok := c.Get("germany")
	assert.True(t, ok)
	assert.Same(t, loss, got)

	now = now.Add(time.Nanosecond)
	_, ok = c.Get("germany")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Size)
}

func TestLossCache_StatsSkipsStaleEntries(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := climate.NewLossCache(time.Hour)
	c.SetClock(func() time.Time { return now })

	c.Set("japan", &models.ExpectedLoss{})
	now = now.Add(30 * time.Minute)
	c.Set("india", &models.ExpectedLoss{})
	now = now.Add(45 * time.Minute)

	assert.Equal(t, climate.CacheStats{Size: 1, Countries: []string{"india"}}, c.Stats())

	c.Clear()
	assert.Equal(t, 0, c.Stats().Size)
}

func TestLossCache_SetAtAgesFromFetchTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := climate.NewLossCache(time.Hour)
	c.SetClock(func() time.Time { return now })

	assert.False(t, c.SetAt("peru", &models.ExpectedLoss{}, now.Add(-time.Hour)))
	_, ok := c.Get("peru")
	assert.False(t, ok)

	assert.True(t, c.SetAt("chile", &models.ExpectedLoss{}, now.Add(-50*time.Minute)))
	_, ok = c.Get("chile")
	assert.True(t, ok)

	now = now.Add(10 * time.Minute)
	_, ok = c.Get("chile")
	assert.False(t, ok)
}
