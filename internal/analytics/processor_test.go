package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakyRecorder struct {
	mu       sync.Mutex
	failures int
	calls    int32
	recorded []ClickEvent
	err      error
}

func (r *flakyRecorder) Record(_ context.Context, ev ClickEvent) error {
	atomic.AddInt32(&r.calls, 1)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.failures > 0 {
		r.failures--
		return errors.New("temporary failure")
	}
	r.recorded = append(r.recorded, ev)
	return nil
}

func (r *flakyRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recorded)
}

func testProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		WorkerCount:     2,
		BufferSize:      10,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
		ShutdownTimeout: time.Second,
	}
}

func TestProcessor_RecordsWithRetry(t *testing.T) {
	rec := &flakyRecorder{failures: 2}
	p := NewProcessor(rec, zap.NewNop(), testProcessorConfig())
	require.NoError(t, p.Start())

	require.NoError(t, p.Submit(ClickEvent{ProductID: 1}))
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&rec.calls))

	require.NoError(t, p.Stop())
	assert.Equal(t, int64(1), p.GetStats()["processed"])
}

func TestProcessor_NonRetryableErrors(t *testing.T) {
	rec := &flakyRecorder{err: ErrRateLimited}
	p := NewProcessor(rec, zap.NewNop(), testProcessorConfig())
	require.NoError(t, p.Start())

	require.NoError(t, p.Submit(ClickEvent{ProductID: 1}))
	require.NoError(t, p.Stop())

	assert.Equal(t, int32(1), atomic.LoadInt32(&rec.calls))
}

func TestProcessor_StopDrainsQueue(t *testing.T) {
	rec := &flakyRecorder{}
	p := NewProcessor(rec, zap.NewNop(), testProcessorConfig())
	require.NoError(t, p.Start())

	for i := 0; i < 10; i++ {
		_ = p.Submit(ClickEvent{ProductID: int64(i + 1)})
	}
	require.NoError(t, p.Stop())

	assert.Equal(t, int(atomic.LoadInt32(&rec.calls)), rec.count())
	assert.Error(t, p.Submit(ClickEvent{ProductID: 1}))
	assert.Error(t, p.Start())
}

func TestProcessor_SubmitBeforeStart(t *testing.T) {
	p := NewProcessor(&flakyRecorder{}, zap.NewNop(), testProcessorConfig())
	assert.Error(t, p.Submit(ClickEvent{ProductID: 1}))
	assert.Error(t, p.Stop())
}
