// Package pricecache keeps the latest known quote per instrument.
// A failed refresh leaves the previous quote in place: stale-but-available
// beats unavailable for a display surface.
package pricecache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/paperdesk/portfolio-sync/internal/logger"
	"github.com/paperdesk/portfolio-sync/internal/model"
)

var ClosedError = errors.New("price cache closed")

type PriceFetcher interface {
	GetPrice(ctx context.Context, i model.Instrument) (model.PriceQuote, error)
}

type Cache struct {
	fetcher PriceFetcher
	logger  logger.Logger

	mu     sync.RWMutex
	quotes map[string]model.PriceQuote
	epoch  uint64
	closed bool
}

func NewCache(fetcher PriceFetcher, logger logger.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		logger:  logger,
		quotes:  make(map[string]model.PriceQuote),
	}
}

// Refresh fetches and stores the latest quote for one instrument only.
// On failure the prior quote stays served and the error goes to the caller;
// the next poll is the retry. A response landing after Close is discarded.
func (c *Cache) Refresh(ctx context.Context, i model.Instrument) (model.PriceQuote, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return model.PriceQuote{}, ClosedError
	}
	epoch := c.epoch
	c.mu.RUnlock()

	quote, err := c.fetcher.GetPrice(ctx, i)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("%w: can't refresh quote for %s", err, i.Symbol)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Debugf("discarding stale quote for %s (epoch %d != %d)", i.Symbol, epoch, c.epoch)
		return model.PriceQuote{}, ClosedError
	}
	c.quotes[i.Symbol] = quote

	return quote, nil
}

// Latest returns the last known quote. Quotes have no hard expiry; callers
// decide staleness from ObservedAt.
func (c *Cache) Latest(symbol string) (model.PriceQuote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[symbol]
	return q, ok
}

// Close detaches the cache from its consumer. In-flight refreshes that
// complete afterwards are discarded instead of applied.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.epoch++
}
