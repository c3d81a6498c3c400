// Package ratelimit caps how many badge clicks are recorded per product.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more click of a product may be recorded.
// An error means the backend could not decide; callers treat it as allowed.
type Limiter interface {
	Allow(ctx context.Context, productID int64) (bool, error)
}

// Config is shared by all limiter implementations.
type Config struct {
	Limit  int           // clicks per window
	Window time.Duration // window length
}

func (c Config) withDefaults() Config {
	if c.Limit <= 0 {
		c.Limit = 10
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	// redis buckets are whole seconds
	if c.Window < time.Second {
		c.Window = time.Second
	}
	return c
}
