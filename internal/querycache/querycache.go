// Package querycache caches upstream read results per key. An entry is
// served without refetching while fresh, refetched (with the stale
// value as fallback) once fresh expires, and dropped entirely once the
// retention window passes.
package querycache

import (
	"context"
	"sync"
	"time"
)

type Loader func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
}

type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	freshFor time.Duration
	retain   time.Duration
	stopCh   chan struct{}
}

func New(freshFor, retain time.Duration) *Cache {
	cache := &Cache{
		entries:  make(map[string]*entry),
		freshFor: freshFor,
		retain:   retain,
		stopCh:   make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// GetOrLoad returns the cached value for key while it is fresh.
// Otherwise it calls loader; on success the result replaces the entry,
// on failure a still-retained stale value is served instead of the
// error.
func (c *Cache) GetOrLoad(ctx context.Context, key string, loader Loader) (any, error) {
	now := time.Now()

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && now.Sub(cached.fetchedAt) < c.freshFor {
		return cached.value, nil
	}

	value, err := loader(ctx)
	if err != nil {
		if ok && now.Sub(cached.fetchedAt) < c.retain {
			return cached.value, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &entry{value: value, fetchedAt: time.Now()}
	c.mu.Unlock()

	return value, nil
}

// Invalidate drops an entry so the next read refetches. Called after
// writes that change what the key would return.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-c.retain)
			c.mu.Lock()
			for key, cached := range c.entries {
				if cached.fetchedAt.Before(cutoff) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Cache) Stop() {
	close(c.stopCh)
}
