//go:build integration

package postgres

import (
	"AIDIR-Backend/internal/database"
	"AIDIR-Backend/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestPostgresStorage_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("aidir"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	require.NoError(t, database.SeedData(db, zap.NewNop()))

	s := New(db, zap.NewNop())
	require.NoError(t, s.Ping(ctx))

	product, err := s.GetProductBySlug(ctx, "agent-atlas")
	require.NoError(t, err)

	sub, err := s.GetActiveSubscription(ctx, product.OwnerID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.TierProPlus, sub.Tier())

	now := time.Now().UTC()
	require.NoError(t, s.SaveClick(ctx, &domain.Click{ProductID: product.ID, ClickedAt: now}))
	clicks, err := s.ListClicksSince(ctx, product.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, clicks, 1)
}
