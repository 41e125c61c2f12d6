package trading

import (
	"context"
	"fmt"
	"io"

	"github.com/paperdesk/portfolio-sync/internal/model"
)

// Strategy CRUD passthrough. Strategy execution itself lives in the engine;
// the client only round-trips records.

func (c *Client) ListStrategies(ctx context.Context) ([]model.Strategy, error) {
	body, err := c.get(ctx, _strategiesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: can't list strategies", err)
	}
	return model.DecodeStrategies(body)
}

func (c *Client) CreateStrategy(ctx context.Context, req model.StrategyRequest) (model.Strategy, error) {
	body, err := c.post(ctx, _strategiesURL, req)
	if err != nil {
		return model.Strategy{}, fmt.Errorf("%w: can't create strategy", err)
	}
	return model.DecodeStrategy(body)
}

func (c *Client) UpdateStrategy(ctx context.Context, id int64, req model.StrategyRequest) (model.Strategy, error) {
	c.ordersRateLimiter.Take()

	resp, err := c.c.R().
		SetContext(ctx).
		SetBody(req).
		Put(fmt.Sprintf(_strategyURL, id))
	if err != nil {
		return model.Strategy{}, fmt.Errorf("%w: can't update strategy %d", err, id)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Strategy{}, fmt.Errorf("%w: can't read response body", err)
	}
	if resp.IsError() {
		return model.Strategy{}, c.rejection(resp.StatusCode(), body)
	}

	return model.DecodeStrategy(body)
}

func (c *Client) DeleteStrategy(ctx context.Context, id int64) error {
	c.ordersRateLimiter.Take()

	resp, err := c.c.R().
		SetContext(ctx).
		Delete(fmt.Sprintf(_strategyURL, id))
	if err != nil {
		return fmt.Errorf("%w: can't delete strategy %d", err, id)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		body, _ := io.ReadAll(resp.Body)
		return c.rejection(resp.StatusCode(), body)
	}
	return nil
}

func (c *Client) ActivateStrategy(ctx context.Context, id int64) error {
	if _, err := c.post(ctx, fmt.Sprintf(_strategyActivateURL, id), nil); err != nil {
		return fmt.Errorf("%w: can't activate strategy %d", err, id)
	}
	return nil
}

func (c *Client) DeactivateStrategy(ctx context.Context, id int64) error {
	if _, err := c.post(ctx, fmt.Sprintf(_strategyDeactivate, id), nil); err != nil {
		return fmt.Errorf("%w: can't deactivate strategy %d", err, id)
	}
	return nil
}
