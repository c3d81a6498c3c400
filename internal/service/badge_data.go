package service

import (
	"AIDIR-Backend/internal/cache"
	"AIDIR-Backend/internal/config"
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/pkg/badgefmt"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ProductReader is the part of the storage the fetcher reads.
type ProductReader interface {
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// TierResolver resolves the subscription tier of a product owner.
type TierResolver interface {
	ResolveTier(ctx context.Context, ownerID int64) (domain.Tier, error)
}

// cachedBadge не зависит от вызывающего, IsOwner вычисляется на каждый запрос
type cachedBadge struct {
	data    domain.BadgeData
	ownerID int64
}

// BadgeDataService собирает BadgeData по slug и кэширует результат.
type BadgeDataService struct {
	products      ProductReader
	tiers         TierResolver
	cache         *cache.SWR[cachedBadge]
	lookupTimeout time.Duration
	log           *zap.Logger
}

func NewBadgeDataService(products ProductReader, tiers TierResolver, cfg *config.Badge, log *zap.Logger) *BadgeDataService {
	lookupTimeout := cfg.LookupTimeout
	if lookupTimeout <= 0 {
		lookupTimeout = 3 * time.Second
	}

	return &BadgeDataService{
		products: products,
		tiers:    tiers,
		cache: cache.NewSWR[cachedBadge](cache.Options{
			TTL:            cfg.CacheTTL,
			StaleWindow:    cfg.StaleWindow,
			RefreshTimeout: lookupTimeout,
		}, log),
		lookupTimeout: lookupTimeout,
		log:           log,
	}
}

// Fetch возвращает данные бейджа продукта. live=true обходит кэш и
// сохраняет свежий результат. Ошибки (в том числе ErrProductNotFound) не кэшируются.
func (s *BadgeDataService) Fetch(ctx context.Context, slug string, callerID *int64, live bool) (*domain.BadgeData, error) {
	if !badgefmt.IsValidSlug(slug) {
		return nil, domain.ErrInvalidSlug
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	load := func(ctx context.Context) (cachedBadge, error) {
		return s.load(ctx, slug)
	}

	var (
		entry cachedBadge
		err   error
	)
	if live {
		entry, err = s.cache.Refresh(ctx, slug, load)
	} else {
		entry, err = s.cache.Get(ctx, slug, load)
	}
	if err != nil {
		return nil, err
	}

	data := entry.data
	data.IsOwner = callerID != nil && *callerID == entry.ownerID
	return &data, nil
}

// Invalidate удаляет закэшированные данные продукта
func (s *BadgeDataService) Invalidate(slug string) {
	s.cache.Invalidate(slug)
}

// Sweep удаляет полностью устаревшие записи кэша
func (s *BadgeDataService) Sweep() int {
	return s.cache.Sweep()
}

func (s *BadgeDataService) load(ctx context.Context, slug string) (cachedBadge, error) {
	product, err := s.products.GetProductBySlug(ctx, slug)
	if err != nil {
		return cachedBadge{}, fmt.Errorf("failed to load product %q: %w", slug, err)
	}

	tier, err := s.tiers.ResolveTier(ctx, product.OwnerID)
	if err != nil {
		return cachedBadge{}, err
	}

	s.log.Debug("loaded badge data",
		zap.String("slug", slug),
		zap.Int64("product_id", product.ID),
		zap.String("tier", tier.String()))

	return cachedBadge{
		data: domain.BadgeData{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductSlug:  product.Slug,
			UpvotesCount: product.UpvotesCount,
			UserTier:     tier,
			IsPublished:  product.IsPublished(),
		},
		ownerID: product.OwnerID,
	}, nil
}

// GetStats returns cache counters for the metrics endpoint.
func (s *BadgeDataService) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"cached_products": s.cache.Len(),
	}
}
