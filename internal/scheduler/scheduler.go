// Package scheduler owns the polling cadence for one consumer: one timer
// per instance with an explicit start/stop lifecycle, never ambient global
// state.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/paperdesk/portfolio-sync/internal/logger"
)

var AlreadyStartedError = errors.New("scheduler already started")

type State int

const (
	Idle State = iota
	Polling
	Suspended
)

type RefreshFunc func(ctx context.Context) error

type Scheduler struct {
	name     string
	interval time.Duration
	refresh  RefreshFunc
	clk      clock.Clock
	logger   logger.Logger

	mu     sync.Mutex
	state  State
	runCtx context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func New(name string, interval time.Duration, refresh RefreshFunc, logger logger.Logger) *Scheduler {
	return NewWithClock(name, interval, refresh, clock.New(), logger)
}

func NewWithClock(name string, interval time.Duration, refresh RefreshFunc, clk clock.Clock, logger logger.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		refresh:  refresh,
		clk:      clk,
		logger:   logger,
	}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves idle->polling, issues an immediate refresh, then refreshes on
// every tick of a fixed interval until Stop or ctx cancellation.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return AlreadyStartedError
	}
	s.state = Polling
	s.runCtx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run(s.runCtx)
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	s.doRefresh(ctx)

	ticker := s.clk.Ticker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.State() != Polling {
				continue
			}
			s.doRefresh(ctx)
		}
	}
}

func (s *Scheduler) doRefresh(ctx context.Context) {
	if err := s.refresh(ctx); err != nil && ctx.Err() == nil {
		s.logger.Errorf("%s: %s refresh failed, keeping last good state", err, s.name)
	}
}

// RefreshNow runs one out-of-band refresh inline. The next scheduled tick is
// measured from the scheduled time, not reset by the manual refresh, so
// manual refreshes close together can't starve the cadence.
func (s *Scheduler) RefreshNow(ctx context.Context) error {
	return s.refresh(ctx)
}

// Suspend parks the cadence: ticks keep arriving but trigger nothing.
func (s *Scheduler) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Polling {
		s.state = Suspended
	}
}

// Resume returns to polling and fires a catch-up refresh.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	if s.state != Suspended {
		s.mu.Unlock()
		return
	}
	s.state = Polling
	ctx := s.runCtx
	s.mu.Unlock()

	s.doRefresh(ctx)
}

// Stop cancels the pending tick deterministically and waits for the loop to
// exit; no orphaned timers remain.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state == Idle {
		s.mu.Unlock()
		return
	}
	s.state = Idle
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
}
