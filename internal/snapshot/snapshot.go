// Package snapshot owns the portfolio view: cash plus positions, replaced
// wholesale on every successful refresh so readers never observe a mix of
// old and new positions.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/paperdesk/portfolio-sync/internal/logger"
	"github.com/paperdesk/portfolio-sync/internal/model"
)

var ClosedError = errors.New("snapshot holder closed")

type PortfolioFetcher interface {
	GetPortfolio(ctx context.Context) (model.Portfolio, error)
}

type Holder struct {
	fetcher PortfolioFetcher
	logger  logger.Logger

	mu      sync.RWMutex
	current *model.Portfolio
	epoch   uint64
	closed  bool
}

func NewHolder(fetcher PortfolioFetcher, logger logger.Logger) *Holder {
	return &Holder{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Refresh replaces the entire snapshot atomically. On failure the prior
// snapshot is retained and the error reported upward; there is no built-in
// retry loop, the scheduler's next tick is the retry.
func (h *Holder) Refresh(ctx context.Context) (model.Portfolio, error) {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return model.Portfolio{}, ClosedError
	}
	epoch := h.epoch
	h.mu.RUnlock()

	p, err := h.fetcher.GetPortfolio(ctx)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("%w: can't refresh portfolio", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.epoch != epoch {
		h.logger.Debugf("discarding stale portfolio (epoch %d != %d)", epoch, h.epoch)
		return model.Portfolio{}, ClosedError
	}
	h.current = &p

	return h.copyLocked(), nil
}

// Current hands out a copy, never a shared reference. Aggregates on the
// returned value are recomputed from its positions on each call.
func (h *Holder) Current() (model.Portfolio, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return model.Portfolio{}, false
	}
	return h.copyLocked(), true
}

func (h *Holder) copyLocked() model.Portfolio {
	positions := make([]model.Position, len(h.current.Positions))
	copy(positions, h.current.Positions)
	return model.Portfolio{
		CashBalance: h.current.CashBalance,
		Positions:   positions,
	}
}

// Close detaches the holder; late in-flight refreshes are discarded.
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.epoch++
}
