package data

import (
	"context"
	"sync"
	"time"

	"macro-parity/internal/model"
)

// SeriesCache stores fetched indicator series keyed by SeriesRequest.CacheKey.
//
// Alpha Vantage's free tier allows a handful of requests per minute, and a
// backtest needs seven series, so re-running without a cache burns quota.
type SeriesCache interface {
	Get(ctx context.Context, key string) ([]model.Observation, bool, error)
	Set(ctx context.Context, key string, obs []model.Observation) error
}

type cacheEntry struct {
	obs       []model.Observation
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache. A nil *MemoryCache is a valid,
// always-missing cache.
type MemoryCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a cached series if available and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]model.Observation, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return copyObservations(entry.obs), true, nil
}

// Set stores a series in the cache.
func (c *MemoryCache) Set(_ context.Context, key string, obs []model.Observation) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry{
		obs:       copyObservations(obs),
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// StartCleanup removes expired entries every interval until ctx is done.
func (c *MemoryCache) StartCleanup(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.evictExpired()
			}
		}
	}()
}

func (c *MemoryCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}

func copyObservations(obs []model.Observation) []model.Observation {
	if obs == nil {
		return nil
	}
	out := make([]model.Observation, len(obs))
	copy(out, obs)
	return out
}
