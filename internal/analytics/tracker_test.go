package analytics

import (
	"AIDIR-Backend/internal/domain"
	"AIDIR-Backend/internal/ratelimit"
	"AIDIR-Backend/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSaver struct {
	mock.Mock
}

func (m *mockSaver) SaveClick(ctx context.Context, click *domain.Click) error {
	return m.Called(ctx, click).Error(0)
}

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, productID int64) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

type staticDevices string

func (s staticDevices) DeviceType(string) string { return string(s) }

func TestTracker_TrackRecordsClick(t *testing.T) {
	store := memory.New()
	tracker := NewTracker(store, nil, staticDevices("mobile"), zap.NewNop())
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	res := tracker.Track(context.Background(), ClickEvent{
		ProductID: 42,
		Referrer:  "https://Blog.Example.com/post?x=1",
		UserAgent: "Mozilla/5.0 (iPhone)",
		ClickedAt: at,
	})
	assert.Equal(t, TrackResult{Success: true}, res)

	clicks, err := store.ListClicksSince(context.Background(), 42, at.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, clicks, 1)
	require.NotNil(t, clicks[0].ReferrerDomain)
	assert.Equal(t, "blog.example.com", *clicks[0].ReferrerDomain)
	assert.Equal(t, "mobile", clicks[0].GetDeviceType())
	assert.Equal(t, at, clicks[0].ClickedAt)
}

func TestTracker_MissingOrBadReferrerStoresNull(t *testing.T) {
	store := memory.New()
	tracker := NewTracker(store, nil, nil, zap.NewNop())

	for _, ref := range []string{"", "not a url", "/relative/path"} {
		res := tracker.Track(context.Background(), ClickEvent{ProductID: 1, Referrer: ref})
		assert.True(t, res.Success)
	}

	clicks, err := store.ListClicksSince(context.Background(), 1, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, clicks, 3)
	for _, c := range clicks {
		assert.Nil(t, c.ReferrerDomain)
		assert.Nil(t, c.DeviceType)
	}
}

func TestTracker_InvalidProductID(t *testing.T) {
	saver := new(mockSaver)
	tracker := NewTracker(saver, nil, nil, zap.NewNop())

	res := tracker.Track(context.Background(), ClickEvent{ProductID: 0})
	assert.Equal(t, TrackResult{Success: false, Error: "invalid product id"}, res)
	saver.AssertNotCalled(t, "SaveClick", mock.Anything, mock.Anything)
}

func TestTracker_StorageFailureSoftFails(t *testing.T) {
	saver := new(mockSaver)
	saver.On("SaveClick", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	tracker := NewTracker(saver, nil, nil, zap.NewNop())

	res := tracker.Track(context.Background(), ClickEvent{ProductID: 5})
	assert.Equal(t, TrackResult{Success: false, Error: "failed to record click"}, res)
}

func TestTracker_RateLimitedClicksAreDroppedSilently(t *testing.T) {
	store := memory.New()
	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{Limit: 10, Window: time.Minute})
	tracker := NewTracker(store, limiter, nil, zap.NewNop())

	for i := 0; i < 12; i++ {
		res := tracker.Track(context.Background(), ClickEvent{ProductID: 3})
		assert.True(t, res.Success)
		assert.Empty(t, res.Error)
	}

	assert.Equal(t, 10, store.ClickCount())
	assert.ErrorIs(t, tracker.Record(context.Background(), ClickEvent{ProductID: 3}), ErrRateLimited)
}

func TestTracker_LimiterFailureFailsOpen(t *testing.T) {
	store := memory.New()
	limiter := new(mockLimiter)
	limiter.On("Allow", mock.Anything, int64(9)).Return(true, errors.New("redis down"))
	tracker := NewTracker(store, limiter, nil, zap.NewNop())

	res := tracker.Track(context.Background(), ClickEvent{ProductID: 9})
	assert.True(t, res.Success)
	assert.Equal(t, 1, store.ClickCount())
}
