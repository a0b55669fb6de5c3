package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"feedpoll/internal/logger"
	"feedpoll/internal/service"
)

// Scheduler runs refresh cycles with a fixed delay between the end of one
// cycle and the start of the next.
type Scheduler struct {
	refreshService service.RefreshService
	interval       time.Duration
	after          func(time.Duration) <-chan time.Time
	stopCh         chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	cancelFunc     context.CancelFunc // cancels the current refresh operation
	mu             sync.Mutex         // protects cancelFunc
}

type Option func(*Scheduler)

// WithAfter replaces time.After as the wait between cycles.
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		s.after = after
	}
}

func New(refreshService service.RefreshService, interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		refreshService: refreshService,
		interval:       interval,
		after:          time.After,
		stopCh:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

// Stop prevents further cycles, cancels the running one and waits for the loop
// to exit. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)

		s.mu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	for {
		if s.stopped() {
			return
		}
		s.refresh()
		if s.stopped() {
			return
		}

		select {
		case <-s.after(s.interval):
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) stopped() bool {
	select {
	case <-s.stopCh:
		return true
	default:
		return false
	}
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.stopped() {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	result, err := s.refreshService.RefreshAll(ctx)
	switch {
	case err == nil:
		logger.Debug("scheduled refresh completed", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok",
			"feeds", result.Feeds, "failed", result.Failed, "admitted", result.Admitted)
	case errors.Is(err, service.ErrAlreadyRefreshing):
		logger.Warn("scheduled refresh skipped", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "skipped")
	case ctx.Err() != nil:
		logger.Warn("scheduled refresh cancelled", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "cancelled")
	default:
		logger.Error("scheduled refresh failed", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "failed", "error", err)
	}
}
