package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type productLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per product in process memory.
// Burst equals the limit and the bucket refills Limit tokens per Window.
type MemoryLimiter struct {
	mu       sync.Mutex
	products map[int64]*productLimiter
	r        rate.Limit
	b        int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	cfg = cfg.withDefaults()
	return &MemoryLimiter{
		products: make(map[int64]*productLimiter),
		r:        rate.Every(cfg.Window / time.Duration(cfg.Limit)),
		b:        cfg.Limit,
		window:   cfg.Window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, productID int64) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	p, exists := l.products[productID]
	if !exists {
		p = &productLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.products[productID] = p
	}
	p.lastSeen = now

	return p.limiter.AllowN(now, 1), nil
}

// Sweep drops buckets idle for a full window. Such buckets are full again,
// so dropping them does not change any decision.
func (l *MemoryLimiter) Sweep() int {
	cutoff := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, p := range l.products {
		if p.lastSeen.Before(cutoff) {
			delete(l.products, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked products.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.products)
}

// GetStats returns limiter counters for the metrics endpoint.
func (l *MemoryLimiter) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"tracked_products": l.Len(),
	}
}
