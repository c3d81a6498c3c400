package postgres

import (
	"AIDIR-Backend/internal/database"
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/repository"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestStorage(t *testing.T) (*PostgresStorage, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	return New(db, zap.NewNop()), db
}

func ptr[T any](v T) *T { return &v }

func TestPostgresStorage_Products(t *testing.T) {
	s, db := setupTestStorage(t)
	ctx := context.Background()

	product := domain.Product{OwnerID: 7, Name: "Foo", Slug: "foo", UpvotesCount: 12, Status: domain.ProductStatusPublished}
	require.NoError(t, db.Create(&product).Error)

	got, err := s.GetProductBySlug(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, int64(7), got.OwnerID)
	assert.True(t, got.IsPublished())

	got, err = s.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "foo", got.Slug)

	_, err = s.GetProductBySlug(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	_, err = s.GetProductByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestPostgresStorage_GetActiveSubscription(t *testing.T) {
	s, db := setupTestStorage(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	subs := []domain.Subscription{
		{UserID: 1, PlanName: "pro", Status: "active", CurrentPeriodEnd: ptr(now.Add(24 * time.Hour))},
		{UserID: 1, PlanName: "pro_plus", Status: "active", CurrentPeriodEnd: ptr(now.Add(48 * time.Hour))},
		{UserID: 1, PlanName: "pro_plus", Status: "canceled", CurrentPeriodEnd: ptr(now.Add(72 * time.Hour))},
		{UserID: 2, PlanName: "pro", Status: "active", CurrentPeriodEnd: ptr(now.Add(-time.Hour))},
	}
	require.NoError(t, db.Create(&subs).Error)

	got, err := s.GetActiveSubscription(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, "pro_plus", got.PlanName)
	assert.Equal(t, domain.TierProPlus, got.Tier())

	_, err = s.GetActiveSubscription(ctx, 2, now)
	assert.ErrorIs(t, err, repository.ErrSubscriptionNotFound)

	_, err = s.GetActiveSubscription(ctx, 3, now)
	assert.ErrorIs(t, err, repository.ErrSubscriptionNotFound)
}

func TestPostgresStorage_Clicks(t *testing.T) {
	s, _ := setupTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	clicks := []*domain.Click{
		{ProductID: 1, ReferrerDomain: ptr("b.com"), ClickedAt: base.Add(2 * time.Minute)},
		{ProductID: 1, ReferrerDomain: ptr("a.com"), ClickedAt: base.Add(time.Minute)},
		{ProductID: 1, ClickedAt: base.Add(time.Minute)},
		{ProductID: 1, ReferrerDomain: ptr("old.com"), ClickedAt: base.Add(-31 * 24 * time.Hour)},
		{ProductID: 2, ReferrerDomain: ptr("other.com"), ClickedAt: base},
	}
	for _, c := range clicks {
		require.NoError(t, s.SaveClick(ctx, c))
		assert.NotZero(t, c.ID)
	}

	got, err := s.ListClicksSince(ctx, 1, base.Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)

	// clicked_at, затем id
	assert.Equal(t, "a.com", *got[0].ReferrerDomain)
	assert.Nil(t, got[1].ReferrerDomain)
	assert.Equal(t, "b.com", *got[2].ReferrerDomain)
}

func TestPostgresStorage_SaveClickDefaultsTime(t *testing.T) {
	s, _ := setupTestStorage(t)

	click := &domain.Click{ProductID: 1}
	require.NoError(t, s.SaveClick(context.Background(), click))
	assert.WithinDuration(t, time.Now(), click.ClickedAt, 5*time.Second)
}

func TestPostgresStorage_Ping(t *testing.T) {
	s, _ := setupTestStorage(t)
	assert.NoError(t, s.Ping(context.Background()))
}
