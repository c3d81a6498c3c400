package database

import (
	"AIDIR-Backend/internal/domain"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate выполняет автоматические миграции для всех доменных моделей
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	models := []interface{}{
		&domain.Product{},
		&domain.Subscription{},
		&domain.Click{},
	}

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Debug("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData заполняет базу демонстрационными продуктами и подписками
func SeedData(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database seeding")

	// Проверяем, есть ли уже данные
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Info("products already exist, skipping seeding", zap.Int64("existing_count", count))
		return nil
	}

	products, subscriptions := DemoData(time.Now().UTC())

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		if err := tx.Create(&subscriptions).Error; err != nil {
			return fmt.Errorf("failed to seed subscriptions: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to seed database", zap.Error(err))
		return err
	}

	log.Info("database seeding completed successfully",
		zap.Int("products_created", len(products)),
		zap.Int("subscriptions_created", len(subscriptions)))
	return nil
}

// DemoData возвращает набор демонстрационных данных: владелец 1 на плане free,
// 2 на pro, 3 на pro_plus, плюс неопубликованный продукт.
func DemoData(now time.Time) ([]domain.Product, []domain.Subscription) {
	periodEnd := now.AddDate(0, 1, 0)

	products := []domain.Product{
		{OwnerID: 1, Name: "Prompt Studio", Slug: "prompt-studio", UpvotesCount: 87, Status: domain.ProductStatusPublished},
		{OwnerID: 2, Name: "Vector Forge", Slug: "vector-forge", UpvotesCount: 1249, Status: domain.ProductStatusPublished},
		{OwnerID: 3, Name: "Agent Atlas", Slug: "agent-atlas", UpvotesCount: 15320, Status: domain.ProductStatusPublished},
		{OwnerID: 3, Name: "Stealth Project", Slug: "stealth-project", UpvotesCount: 0, Status: "draft"},
	}

	subscriptions := []domain.Subscription{
		{UserID: 2, PlanName: "pro", Status: domain.SubscriptionStatusActive, CurrentPeriodEnd: &periodEnd},
		{UserID: 3, PlanName: "pro_plus", Status: domain.SubscriptionStatusActive, CurrentPeriodEnd: &periodEnd},
	}

	return products, subscriptions
}
