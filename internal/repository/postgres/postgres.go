package postgres

import (
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresStorage реализует интерфейс Storage поверх GORM.
// Запросы переносимы, поэтому тот же код работает и с SQLite.
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр PostgreSQL storage
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// --- Product Methods ---

// GetProductBySlug получает продукт по slug
func (s *PostgresStorage) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product

	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrProductNotFound
	}
	if err != nil {
		s.log.Error("failed to get product by slug", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetProductByID получает продукт по ID
func (s *PostgresStorage) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrProductNotFound
	}
	if err != nil {
		s.log.Error("failed to get product by id", zap.Int64("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// --- Subscription Methods ---

// GetActiveSubscription возвращает действующую подписку пользователя
func (s *PostgresStorage) GetActiveSubscription(ctx context.Context, userID int64, now time.Time) (*domain.Subscription, error) {
	var sub domain.Subscription

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND current_period_end > ?", userID, domain.SubscriptionStatusActive, now).
		Order("current_period_end DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrSubscriptionNotFound
	}
	if err != nil {
		s.log.Error("failed to get active subscription", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

// --- Click Methods ---

// SaveClick записывает клик по бейджу
func (s *PostgresStorage) SaveClick(ctx context.Context, click *domain.Click) error {
	if click.ClickedAt.IsZero() {
		click.ClickedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(click).Error; err != nil {
		s.log.Error("failed to create click record", zap.Int64("product_id", click.ProductID), zap.Error(err))
		return fmt.Errorf("failed to create click: %w", err)
	}

	s.log.Debug("recorded click", zap.Int64("product_id", click.ProductID), zap.String("device_type", click.GetDeviceType()))
	return nil
}

// ListClicksSince возвращает клики продукта за период
func (s *PostgresStorage) ListClicksSince(ctx context.Context, productID int64, since time.Time) ([]domain.Click, error) {
	var clicks []domain.Click

	err := s.db.WithContext(ctx).
		Where("product_id = ? AND clicked_at >= ?", productID, since).
		Order("clicked_at ASC").Order("id ASC").
		Find(&clicks).Error
	if err != nil {
		s.log.Error("failed to list clicks", zap.Int64("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}

	return clicks, nil
}

// Ping проверяет соединение с базой
func (s *PostgresStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
