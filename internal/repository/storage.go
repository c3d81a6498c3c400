package repository

import (
	"AIDIR-Backend/internal/domain"
	"context"
	"errors"
	"time"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type Storage interface {
	// Product methods
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)

	// Subscription methods
	// GetActiveSubscription возвращает активную подписку с наибольшим current_period_end > now
	GetActiveSubscription(ctx context.Context, userID int64, now time.Time) (*domain.Subscription, error)

	// Click methods
	SaveClick(ctx context.Context, click *domain.Click) error
	// ListClicksSince возвращает клики продукта начиная с since, упорядоченные по clicked_at, id
	ListClicksSince(ctx context.Context, productID int64, since time.Time) ([]domain.Click, error)

	Ping(ctx context.Context) error
}
