package analytics

import (
	"AIDIR-Backend/internal/domain"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var ErrNotOwner = errors.New("requester does not own the product")

// StatsStorage is the part of the storage the dashboard reads.
type StatsStorage interface {
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ListClicksSince(ctx context.Context, productID int64, since time.Time) ([]domain.Click, error)
}

type StatsService struct {
	storage      StatsStorage
	windowDays   int
	topReferrers int
	log          *zap.Logger
	now          func() time.Time
}

// NewStatsService creates the dashboard service. Non-positive arguments
// fall back to a 30 day window and 5 referrers.
func NewStatsService(storage StatsStorage, windowDays, topReferrers int, log *zap.Logger) *StatsService {
	if windowDays <= 0 {
		windowDays = 30
	}
	if topReferrers <= 0 {
		topReferrers = 5
	}
	return &StatsService{
		storage:      storage,
		windowDays:   windowDays,
		topReferrers: topReferrers,
		log:          log,
		now:          time.Now,
	}
}

// Stats returns the click summary of a product for its owner.
func (s *StatsService) Stats(ctx context.Context, productID, requesterID int64) (*domain.Stats, error) {
	product, err := s.storage.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != requesterID {
		s.log.Info("stats requested by non-owner",
			zap.Int64("product_id", productID),
			zap.Int64("requester_id", requesterID))
		return nil, ErrNotOwner
	}

	since := s.now().UTC().AddDate(0, 0, -s.windowDays)
	clicks, err := s.storage.ListClicksSince(ctx, productID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load clicks: %w", err)
	}

	stats := Aggregate(clicks, s.topReferrers)
	stats.Period = strconv.Itoa(s.windowDays) + " days"
	return stats, nil
}

// Aggregate counts clicks and ranks referrer domains by count. Ties keep
// the order in which domains first appear in clicks.
func Aggregate(clicks []domain.Click, limit int) *domain.Stats {
	counts := make(map[string]int64)
	var order []string

	for _, c := range clicks {
		if c.ReferrerDomain == nil {
			continue
		}
		d := *c.ReferrerDomain
		if _, seen := counts[d]; !seen {
			order = append(order, d)
		}
		counts[d]++
	}

	top := make([]domain.ReferrerCount, 0, len(order))
	for _, d := range order {
		top = append(top, domain.ReferrerCount{Domain: d, Count: counts[d]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if limit >= 0 && len(top) > limit {
		top = top[:limit]
	}

	return &domain.Stats{
		TotalClicks:  int64(len(clicks)),
		TopReferrers: top,
		Period:       "30 days",
	}
}
