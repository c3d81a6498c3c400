// Package scheduler runs periodic in-process maintenance: evicting expired
// badge cache entries and idle per-product rate limiters.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Sweeper drops expired state and reports how many entries were removed.
type Sweeper interface {
	Sweep() int
}

type MaintenanceService struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	sweepers  map[string]Sweeper
	log       *zap.Logger

	mu             sync.Mutex
	running        bool
	lastRunAt      time.Time
	runs           int64
	removedLastRun map[string]int
	removedTotal   int64
}

// NewMaintenanceService создает планировщик очистки. Нулевой интервал заменяется минутой.
func NewMaintenanceService(interval time.Duration, sweepers map[string]Sweeper, log *zap.Logger) *MaintenanceService {
	if interval <= 0 {
		interval = time.Minute
	}

	return &MaintenanceService{
		scheduler:      gocron.NewScheduler(time.UTC),
		interval:       interval,
		sweepers:       sweepers,
		log:            log,
		removedLastRun: make(map[string]int),
	}
}

// Start schedules the sweep and stops the scheduler when ctx is cancelled.
// The first sweep runs right away.
func (s *MaintenanceService) Start(ctx context.Context) error {
	s.log.Info("starting maintenance scheduler",
		zap.Duration("interval", s.interval),
		zap.Strings("sweepers", s.names()))

	if _, err := s.scheduler.Every(s.interval).Do(s.RunOnce); err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}
	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop останавливает планировщик. Повторный вызов безопасен.
func (s *MaintenanceService) Stop() {
	if s.scheduler.IsRunning() {
		s.log.Info("stopping maintenance scheduler")
		s.scheduler.Stop()
	}
}

// RunOnce sweeps every registered component. Overlapping calls are skipped.
func (s *MaintenanceService) RunOnce() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Debug("maintenance already running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	removed := make(map[string]int, len(s.sweepers))
	total := 0
	for _, name := range s.names() {
		n := s.sweepers[name].Sweep()
		removed[name] = n
		total += n
	}

	s.mu.Lock()
	s.running = false
	s.lastRunAt = time.Now()
	s.runs++
	s.removedLastRun = removed
	s.removedTotal += int64(total)
	s.mu.Unlock()

	if total > 0 {
		s.log.Debug("maintenance sweep completed", zap.Int("removed", total), zap.Any("by_component", removed))
	}
}

// GetStats возвращает состояние планировщика для /metrics
func (s *MaintenanceService) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := make(map[string]int, len(s.removedLastRun))
	for k, v := range s.removedLastRun {
		last[k] = v
	}

	return map[string]interface{}{
		"interval":         s.interval.String(),
		"runs":             s.runs,
		"last_run_at":      s.lastRunAt,
		"removed_last_run": last,
		"removed_total":    s.removedTotal,
	}
}

func (s *MaintenanceService) names() []string {
	names := make([]string, 0, len(s.sweepers))
	for name := range s.sweepers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
