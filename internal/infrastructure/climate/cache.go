// Package climate implements the client for the external hazard-modelling
// service together with its process-wide expected-loss cache.
package climate

import (
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/turtacn/supplyrisk/internal/domain/models"
)

// CacheEntry is a successful fetch and the moment it was stored.
type CacheEntry struct {
	Loss      *models.ExpectedLoss
	FetchedAt time.Time
}

// CacheStats is the diagnostic view of the cache.
type CacheStats struct {
	Size      int      `json:"size" yaml:"size"`
	Countries []string `json:"countries" yaml:"countries"`
}

// LossCache is the in-process expected-loss cache keyed by lowercase country
// name. An entry at or beyond the TTL is never served.
type LossCache struct {
	items *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewLossCache creates a cache whose entries live for ttl.
func NewLossCache(ttl time.Duration) *LossCache {
	return &LossCache{
		items: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
		now:   time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (c *LossCache) SetClock(now func() time.Time) {
	c.now = now
}

// Get returns the cached loss if it is younger than the TTL.
func (c *LossCache) Get(key string) (*models.ExpectedLoss, bool) {
	raw, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	entry := raw.(CacheEntry)
	if c.now().Sub(entry.FetchedAt) >= c.ttl {
		c.items.Delete(key)
		return nil, false
	}
	return entry.Loss, true
}

// Set stores a successful fetch stamped with the current time.
func (c *LossCache) Set(key string, loss *models.ExpectedLoss) {
	c.SetAt(key, loss, c.now())
}

// SetAt stores a loss fetched at fetchedAt, typically by another instance.
// It reports false and stores nothing when the entry is already at or past
// the TTL.
func (c *LossCache) SetAt(key string, loss *models.ExpectedLoss, fetchedAt time.Time) bool {
	remaining := c.ttl - c.now().Sub(fetchedAt)
	if remaining <= 0 {
		return false
	}
	c.items.Set(key, CacheEntry{Loss: loss, FetchedAt: fetchedAt}, remaining)
	return true
}

// Clear drops every entry.
func (c *LossCache) Clear() {
	c.items.Flush()
}

// Stats reports the live entries in key order.
func (c *LossCache) Stats() CacheStats {
	now := c.now()
	keys := make([]string, 0)
	for k, item := range c.items.Items() {
		entry := item.Object.(CacheEntry)
		if now.Sub(entry.FetchedAt) < c.ttl {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return CacheStats{Size: len(keys), Countries: keys}
}
