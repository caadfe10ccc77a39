package daylog

import (
	"context"
	"sync"
	"time"
)

// CachedSource keeps the last successfully loaded documents for ttl.
// A zero ttl disables caching, so every load reaches the wrapped Source.
type CachedSource struct {
	src Source
	ttl time.Duration

	mu              sync.RWMutex
	settings        Settings
	settingsFetched time.Time
	entries         EntriesDocument
	entriesFetched  time.Time
}

// NewCachedSource wraps src with a TTL cache.
func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{src: src, ttl: ttl}
}

func (c *CachedSource) fresh(fetched time.Time) bool {
	return c.ttl > 0 && !fetched.IsZero() && time.Since(fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.settingsFetched = time.Time{}
	c.entriesFetched = time.Time{}
	c.mu.Unlock()
}

func (c *CachedSource) Settings(ctx context.Context) (Settings, error) {
	c.mu.RLock()
	if c.fresh(c.settingsFetched) {
		s := c.settings
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	s, err := c.src.Settings(ctx)
	if err != nil || c.ttl <= 0 {
		return s, err
	}
	c.mu.Lock()
	c.settings = s
	c.settingsFetched = time.Now()
	c.mu.Unlock()
	return s, nil
}

func (c *CachedSource) Entries(ctx context.Context) (EntriesDocument, error) {
	c.mu.RLock()
	if c.fresh(c.entriesFetched) {
		e := c.entries
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	e, err := c.src.Entries(ctx)
	if err != nil || c.ttl <= 0 {
		return e, err
	}
	c.mu.Lock()
	c.entries = e
	c.entriesFetched = time.Now()
	c.mu.Unlock()
	return e, nil
}
