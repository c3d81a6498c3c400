package memory

import (
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

type MemStorage struct {
	mu             sync.RWMutex
	productsBySlug map[string]*domain.Product
	productsByID   map[int64]*domain.Product
	subscriptions  []domain.Subscription
	clicks         []domain.Click
	productCounter int64
	subCounter     int64
	clickCounter   int64
}

func New() *MemStorage {
	return &MemStorage{
		productsBySlug: make(map[string]*domain.Product),
		productsByID:   make(map[int64]*domain.Product),
	}
}

// --- Product Methods ---

// SaveProduct добавляет или заменяет продукт. Используется для сидинга и в тестах.
func (s *MemStorage) SaveProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		s.productCounter++
		p.ID = s.productCounter
	} else if p.ID > s.productCounter {
		s.productCounter = p.ID
	}
	if old, ok := s.productsByID[p.ID]; ok {
		delete(s.productsBySlug, old.Slug)
	}

	cp := *p
	s.productsByID[cp.ID] = &cp
	s.productsBySlug[cp.Slug] = &cp
	return nil
}

func (s *MemStorage) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.productsBySlug[slug]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemStorage) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.productsByID[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// --- Subscription Methods ---

// SaveSubscription добавляет подписку. Используется для сидинга и в тестах.
func (s *MemStorage) SaveSubscription(_ context.Context, sub *domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.ID == 0 {
		s.subCounter++
		sub.ID = s.subCounter
	}
	s.subscriptions = append(s.subscriptions, *sub)
	return nil
}

func (s *MemStorage) GetActiveSubscription(_ context.Context, userID int64, now time.Time) (*domain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *domain.Subscription
	for i := range s.subscriptions {
		sub := &s.subscriptions[i]
		if sub.UserID != userID || !sub.IsCurrent(now) {
			continue
		}
		if best == nil || sub.CurrentPeriodEnd.After(*best.CurrentPeriodEnd) {
			best = sub
		}
	}
	if best == nil {
		return nil, repository.ErrSubscriptionNotFound
	}
	cp := *best
	return &cp, nil
}

// --- Click Methods ---

func (s *MemStorage) SaveClick(_ context.Context, click *domain.Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clickCounter++
	click.ID = s.clickCounter
	s.clicks = append(s.clicks, *click)
	return nil
}

func (s *MemStorage) ListClicksSince(_ context.Context, productID int64, since time.Time) ([]domain.Click, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Click
	for _, c := range s.clicks {
		if c.ProductID == productID && !c.ClickedAt.Before(since) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ClickedAt.Equal(out[j].ClickedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ClickedAt.Before(out[j].ClickedAt)
	})
	return out, nil
}

// ClickCount возвращает общее число сохранённых кликов
func (s *MemStorage) ClickCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clicks)
}

func (s *MemStorage) Ping(_ context.Context) error {
	return nil
}
