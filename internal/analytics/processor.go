package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Recorder persists a single click event.
type Recorder interface {
	Record(ctx context.Context, ev ClickEvent) error
}

// ProcessorConfig holds configuration for the click processor
type ProcessorConfig struct {
	WorkerCount     int           // Number of worker goroutines
	BufferSize      int           // Size of the job queue buffer
	RetryAttempts   int           // Number of attempts per click
	RetryDelay      time.Duration // Base delay between retries
	AttemptTimeout  time.Duration // Timeout of a single attempt
	ShutdownTimeout time.Duration // Time to wait for the queue to drain
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() ProcessorConfig {
	return ProcessorConfig{
		WorkerCount:     3,
		BufferSize:      1000,
		RetryAttempts:   3,
		RetryDelay:      100 * time.Millisecond,
		AttemptTimeout:  5 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Processor records clicks off the request path with retries.
type Processor struct {
	config   ProcessorConfig
	recorder Recorder
	log      *zap.Logger
	jobQueue chan ClickEvent
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	stopped  bool
	mu       sync.RWMutex

	processed int64
	failed    int64
	dropped   int64
	statsMu   sync.Mutex
}

// NewProcessor creates a new click processor
func NewProcessor(recorder Recorder, log *zap.Logger, config ProcessorConfig) *Processor {
	defaults := DefaultConfig()
	if config.WorkerCount <= 0 {
		config.WorkerCount = defaults.WorkerCount
	}
	if config.BufferSize <= 0 {
		config.BufferSize = defaults.BufferSize
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 1
	}
	if config.AttemptTimeout <= 0 {
		config.AttemptTimeout = defaults.AttemptTimeout
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		config:   config,
		recorder: recorder,
		log:      log,
		jobQueue: make(chan ClickEvent, config.BufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins processing clicks
func (p *Processor) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("processor already started")
	}
	if p.stopped {
		return fmt.Errorf("processor already stopped")
	}

	p.log.Info("starting click processor",
		zap.Int("workers", p.config.WorkerCount),
		zap.Int("buffer_size", p.config.BufferSize),
		zap.Int("retry_attempts", p.config.RetryAttempts),
	)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.started = true
	return nil
}

// Stop closes the queue and waits for workers to drain it.
// Pending retries are abandoned when the shutdown timeout is reached.
func (p *Processor) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return fmt.Errorf("processor not started")
	}

	p.log.Info("stopping click processor", zap.Int("pending", len(p.jobQueue)))

	close(p.jobQueue)
	p.started = false
	p.stopped = true

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.log.Info("click processor stopped gracefully")
		return nil
	case <-time.After(p.config.ShutdownTimeout):
		p.cancel()
		p.log.Warn("click processor shutdown timeout reached")
		return fmt.Errorf("shutdown timeout reached")
	}
}

// Submit queues a click. It never blocks: a full queue drops the click.
func (p *Processor) Submit(ev ClickEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return fmt.Errorf("processor not started")
	}

	select {
	case p.jobQueue <- ev:
		return nil
	default:
		p.count(&p.dropped)
		p.log.Error("click queue is full, dropping click",
			zap.Int64("product_id", ev.ProductID),
			zap.Int("queue_size", len(p.jobQueue)),
		)
		return fmt.Errorf("click queue is full")
	}
}

func (p *Processor) worker(workerID int) {
	defer p.wg.Done()

	log := p.log.With(zap.Int("worker_id", workerID))
	log.Debug("click worker started")

	for ev := range p.jobQueue {
		p.processWithRetry(log, ev)
	}

	log.Debug("click worker stopped")
}

func (p *Processor) processWithRetry(log *zap.Logger, ev ClickEvent) {
	var lastErr error

	for attempt := 1; attempt <= p.config.RetryAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(p.ctx, p.config.AttemptTimeout)
		err := p.recorder.Record(ctx, ev)
		cancel()

		if err == nil || errors.Is(err, ErrRateLimited) {
			if err == nil && attempt > 1 {
				log.Info("click recorded after retry",
					zap.Int64("product_id", ev.ProductID),
					zap.Int("attempt", attempt),
				)
			}
			p.count(&p.processed)
			return
		}
		if errors.Is(err, ErrInvalidProductID) {
			p.count(&p.failed)
			return
		}

		lastErr = err
		log.Warn("click processing failed",
			zap.Int64("product_id", ev.ProductID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.config.RetryAttempts),
			zap.Error(err),
		)

		if attempt == p.config.RetryAttempts {
			break
		}

		// Exponential backoff delay
		delay := p.config.RetryDelay * time.Duration(1<<(attempt-1))
		select {
		case <-time.After(delay):
		case <-p.ctx.Done():
			p.count(&p.failed)
			return
		}
	}

	p.count(&p.failed)
	log.Error("click processing failed after all retries",
		zap.Int64("product_id", ev.ProductID),
		zap.Int("attempts", p.config.RetryAttempts),
		zap.Error(lastErr),
	)
}

func (p *Processor) count(c *int64) {
	p.statsMu.Lock()
	*c++
	p.statsMu.Unlock()
}

// GetStats returns processor statistics
func (p *Processor) GetStats() map[string]interface{} {
	p.mu.RLock()
	started := p.started
	p.mu.RUnlock()

	p.statsMu.Lock()
	defer p.statsMu.Unlock()

	return map[string]interface{}{
		"started":        started,
		"queue_length":   len(p.jobQueue),
		"queue_capacity": cap(p.jobQueue),
		"worker_count":   p.config.WorkerCount,
		"retry_attempts": p.config.RetryAttempts,
		"processed":      p.processed,
		"failed":         p.failed,
		"dropped":        p.dropped,
	}
}
