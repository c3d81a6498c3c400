package access

import (
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSubscriptions struct {
	mock.Mock
}

func (m *mockSubscriptions) GetActiveSubscription(ctx context.Context, userID int64, now time.Time) (*domain.Subscription, error) {
	args := m.Called(ctx, userID, now)
	sub, _ := args.Get(0).(*domain.Subscription)
	return sub, args.Error(1)
}

func newTestResolver(subs SubscriptionReader, now time.Time) *Resolver {
	r := NewResolver(subs)
	r.now = func() time.Time { return now }
	return r
}

func TestResolver_ResolveTier(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		sub     *domain.Subscription
		err     error
		want    domain.Tier
		wantErr bool
	}{
		{name: "no subscription", err: repository.ErrSubscriptionNotFound, want: domain.TierFree},
		{name: "pro", sub: &domain.Subscription{PlanName: "pro", Status: "active", CurrentPeriodEnd: &future}, want: domain.TierPro},
		{name: "pro plus", sub: &domain.Subscription{PlanName: "pro_plus", Status: "active", CurrentPeriodEnd: &future}, want: domain.TierProPlus},
		{name: "unknown plan", sub: &domain.Subscription{PlanName: "team", Status: "active", CurrentPeriodEnd: &future}, want: domain.TierFree},
		{name: "expired row", sub: &domain.Subscription{PlanName: "pro_plus", Status: "active", CurrentPeriodEnd: &past}, want: domain.TierFree},
		{name: "storage failure", err: errors.New("connection refused"), want: domain.TierFree, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := new(mockSubscriptions)
			subs.On("GetActiveSubscription", mock.Anything, int64(42), now).Return(tt.sub, tt.err)

			got, err := newTestResolver(subs, now).ResolveTier(context.Background(), 42)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			subs.AssertExpectations(t)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	subs := new(mockSubscriptions)
	subs.On("GetActiveSubscription", mock.Anything, int64(1), now).
		Return(&domain.Subscription{PlanName: "pro_plus", Status: "active", CurrentPeriodEnd: &future}, nil)

	e, err := newTestResolver(subs, now).Resolve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TierProPlus, e.Tier)
	assert.True(t, e.IsPaid)
	assert.True(t, e.CanUsePlusVariant)
	assert.Equal(t, []domain.Variant{domain.VariantPro, domain.VariantProPlus}, e.AllowedVariants)
}

func TestEntitlementsFor(t *testing.T) {
	free := EntitlementsFor(domain.TierFree)
	assert.False(t, free.IsPaid)
	assert.False(t, free.CanUsePlusVariant)
	assert.Equal(t, []domain.Variant{domain.VariantPro}, free.AllowedVariants)

	pro := EntitlementsFor(domain.TierPro)
	assert.True(t, pro.IsPaid)
	assert.False(t, pro.CanUsePlusVariant)
}
