// Package analytics records badge click-throughs and aggregates them for
// the owner dashboard.
package analytics

import (
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/ratelimit"
	"AIDIR-Backend/pkg/badgefmt"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidProductID = errors.New("invalid product id")
	ErrRateLimited      = errors.New("click rate limit exceeded")
)

// ClickEvent is one click-through as seen by the transport layer.
type ClickEvent struct {
	ProductID int64
	Referrer  string
	UserAgent string
	ClickedAt time.Time
}

// TrackResult is the soft-fail outcome returned to clients.
type TrackResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ClickSaver persists click records.
type ClickSaver interface {
	SaveClick(ctx context.Context, click *domain.Click) error
}

// DeviceClassifier maps a User-Agent to a device type.
type DeviceClassifier interface {
	DeviceType(userAgent string) string
}

type Tracker struct {
	clicks  ClickSaver
	limiter ratelimit.Limiter
	devices DeviceClassifier
	log     *zap.Logger
	now     func() time.Time
}

// NewTracker creates a tracker. limiter and devices may be nil.
func NewTracker(clicks ClickSaver, limiter ratelimit.Limiter, devices DeviceClassifier, log *zap.Logger) *Tracker {
	return &Tracker{
		clicks:  clicks,
		limiter: limiter,
		devices: devices,
		log:     log,
		now:     time.Now,
	}
}

// Track records a click and never fails loudly. Rate-limited clicks are
// dropped but still reported as successful.
func (t *Tracker) Track(ctx context.Context, ev ClickEvent) TrackResult {
	err := t.Record(ctx, ev)
	switch {
	case err == nil, errors.Is(err, ErrRateLimited):
		return TrackResult{Success: true}
	case errors.Is(err, ErrInvalidProductID):
		return TrackResult{Success: false, Error: ErrInvalidProductID.Error()}
	default:
		return TrackResult{Success: false, Error: "failed to record click"}
	}
}

// Record is the error-returning core of Track.
func (t *Tracker) Record(ctx context.Context, ev ClickEvent) error {
	if ev.ProductID <= 0 {
		return ErrInvalidProductID
	}

	if !t.allow(ctx, ev.ProductID) {
		t.log.Debug("click dropped by rate limiter", zap.Int64("product_id", ev.ProductID))
		return ErrRateLimited
	}

	click := &domain.Click{
		ProductID: ev.ProductID,
		ClickedAt: ev.ClickedAt,
	}
	if click.ClickedAt.IsZero() {
		click.ClickedAt = t.now().UTC()
	}
	if d, ok := badgefmt.ExtractDomain(ev.Referrer); ok {
		click.ReferrerDomain = &d
	}
	if t.devices != nil && ev.UserAgent != "" {
		device := t.devices.DeviceType(ev.UserAgent)
		click.DeviceType = &device
	}

	if err := t.clicks.SaveClick(ctx, click); err != nil {
		t.log.Error("failed to record click", zap.Int64("product_id", ev.ProductID), zap.Error(err))
		return fmt.Errorf("failed to record click: %w", err)
	}

	return nil
}

// allow fails open when the limiter backend is unavailable.
func (t *Tracker) allow(ctx context.Context, productID int64) bool {
	if t.limiter == nil {
		return true
	}
	ok, err := t.limiter.Allow(ctx, productID)
	if err != nil {
		t.log.Warn("rate limiter unavailable, allowing click", zap.Int64("product_id", productID), zap.Error(err))
		return true
	}
	return ok
}
