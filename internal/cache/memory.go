package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is the process-local snapshot store.
type MemoryCache struct {
	mu   sync.Mutex
	snap *Snapshot
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

// NewMemoryCacheWithClock injects the clock for tests.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: now}
}

func (c *MemoryCache) Get(ctx context.Context) (*Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return nil, false, nil
	}
	if c.now().Sub(c.snap.ComputedAt) >= c.ttl {
		return nil, false, nil
	}
	return c.snap, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, snap *Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
	return nil
}
