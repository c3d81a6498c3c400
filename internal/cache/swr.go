// Package cache provides an in-process stale-while-revalidate cache with
// single-flight loading per key.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader fetches a fresh value for a key.
type Loader[V any] func(ctx context.Context) (V, error)

// Options configures an SWR cache.
type Options struct {
	TTL            time.Duration    // value is fresh for TTL after it was stored
	StaleWindow    time.Duration    // after TTL, value is served stale for this long while refreshing
	RefreshTimeout time.Duration    // timeout of a single load, shared by all waiters
	Now            func() time.Time // clock, time.Now when nil
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// SWR is safe for concurrent use. At most one load per key runs at a time,
// whether it was triggered by a miss or by a background refresh.
type SWR[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	refreshing map[string]struct{}
	group      singleflight.Group

	ttl            time.Duration
	stale          time.Duration
	refreshTimeout time.Duration
	now            func() time.Time
	log            *zap.Logger
}

// NewSWR creates an empty cache.
func NewSWR[V any](opts Options, log *zap.Logger) *SWR[V] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	refreshTimeout := opts.RefreshTimeout
	if refreshTimeout <= 0 {
		refreshTimeout = 10 * time.Second
	}

	return &SWR[V]{
		entries:        make(map[string]entry[V]),
		refreshing:     make(map[string]struct{}),
		ttl:            opts.TTL,
		stale:          opts.StaleWindow,
		refreshTimeout: refreshTimeout,
		now:            now,
		log:            log,
	}
}

// Get returns the cached value for key. A fresh hit returns immediately, a
// stale hit returns the old value and starts a background refresh, and a miss
// or an expired entry blocks on load. Load errors are never cached.
func (c *SWR[V]) Get(ctx context.Context, key string, load Loader[V]) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		age := c.now().Sub(e.storedAt)
		switch {
		case age < c.ttl:
			return e.value, nil
		case age < c.ttl+c.stale:
			c.refreshAsync(key, load)
			return e.value, nil
		}
	}

	return c.load(ctx, key, load)
}

// Refresh loads key now, bypassing any cached value, and stores the result.
func (c *SWR[V]) Refresh(ctx context.Context, key string, load Loader[V]) (V, error) {
	return c.load(ctx, key, load)
}

// Set stores a value as fresh.
func (c *SWR[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops the entry for key.
func (c *SWR[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Sweep removes entries past both the TTL and the stale window and returns
// how many were removed.
func (c *SWR[V]) Sweep() int {
	cutoff := c.now().Add(-(c.ttl + c.stale))

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !e.storedAt.After(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *SWR[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// load runs at most one loader per key. The loader gets a context detached
// from any single caller and bounded by refreshTimeout; each caller waits
// only as long as its own ctx allows.
func (c *SWR[V]) load(ctx context.Context, key string, load Loader[V]) (V, error) {
	ch := c.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()

		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})

	var zero V
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *SWR[V]) refreshAsync(key string, load Loader[V]) {
	c.mu.Lock()
	if _, busy := c.refreshing[key]; busy {
		c.mu.Unlock()
		return
	}
	c.refreshing[key] = struct{}{}
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, key)
			c.mu.Unlock()
		}()

		if _, err := c.load(context.Background(), key, load); err != nil {
			c.log.Warn("background cache refresh failed", zap.String("key", key), zap.Error(err))
			return
		}
		c.log.Debug("background cache refresh completed", zap.String("key", key))
	}()
}
