// Package trading is the REST boundary to the external order-matching
// engine. Every payload is decoded parse-or-fail into internal/model types;
// nothing past this package handles raw JSON.
package trading

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/paperdesk/portfolio-sync/internal/config"
	"github.com/paperdesk/portfolio-sync/internal/logger"
	"github.com/paperdesk/portfolio-sync/internal/model"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	_pairsURL     = "/trading/pairs/"
	_priceURL     = "/trading/pairs/%d/price/"
	_ordersURL    = "/trading/orders/"
	_orderCancel  = "/trading/orders/%d/cancel/"
	_portfolioURL = "/trading/orders/portfolio/"
	_statementURL = "/trading/orders/pnl_statement/"

	_strategiesURL       = "/trading/strategies/"
	_strategyURL         = "/trading/strategies/%d/"
	_strategyActivateURL = "/trading/strategies/%d/activate/"
	_strategyDeactivate  = "/trading/strategies/%d/deactivate/"

	_orderIDPrefix = "paperdesk-"
)

// RejectionError carries the engine's verbatim message for a structurally
// valid request it refused (price moved, inventory check, etc). Never
// retried automatically.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	return e.Message
}

type engineError struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

type Client struct {
	c   *resty.Client
	cfg config.EngineConfig

	mdRateLimiter     ratelimit.Limiter // pairs + prices + portfolio + statement
	ordersRateLimiter ratelimit.Limiter

	logger logger.Logger
}

func NewClient(cfg config.EngineConfig, sessionToken string, logger logger.Logger) *Client {
	client := resty.New().
		SetLogger(logger).
		SetBaseURL(cfg.Address).
		SetTimeout(cfg.Timeout)

	if sessionToken != "" {
		client.SetAuthScheme("Token").SetAuthToken(sessionToken)
	}

	return &Client{
		c:                 client,
		cfg:               cfg,
		mdRateLimiter:     ratelimit.New(600, ratelimit.Per(1*time.Minute)),
		ordersRateLimiter: ratelimit.New(100, ratelimit.Per(1*time.Minute)),
		logger:            logger,
	}
}

func (c *Client) get(ctx context.Context, url string, query map[string]string) ([]byte, error) {
	c.mdRateLimiter.Take()

	req := c.c.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: can't send request %s", err, url)
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: can't read response body %s", err, url)
	}

	if resp.IsError() {
		return nil, c.rejection(resp.StatusCode(), body)
	}

	return body, nil
}

func (c *Client) post(ctx context.Context, url string, body any) ([]byte, error) {
	c.ordersRateLimiter.Take()

	req := c.c.R().
		SetContext(ctx).
		SetHeader("X-Client-Order-Id", _orderIDPrefix+uuid.NewString())
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: can't marshal request body", err)
		}
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	resp, err := req.Post(url)
	if err != nil {
		return nil, fmt.Errorf("%w: can't send request %s", err, url)
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: can't read response body %s", err, url)
	}

	if resp.IsError() {
		return nil, c.rejection(resp.StatusCode(), respBody)
	}

	return respBody, nil
}

func (c *Client) rejection(status int, body []byte) error {
	var e engineError
	if err := sonic.Unmarshal(body, &e); err != nil {
		return &RejectionError{StatusCode: status, Message: fmt.Sprintf("engine returned status %d", status)}
	}
	return &RejectionError{
		StatusCode: status,
		Message:    cmp.Or(e.Error, e.Detail, fmt.Sprintf("engine returned status %d", status)),
	}
}

// ListPairs loads the whole instrument catalog. The catalog is refreshed
// wholesale, never patched field by field.
func (c *Client) ListPairs(ctx context.Context) ([]model.Instrument, error) {
	body, err := c.get(ctx, _pairsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: can't list trading pairs", err)
	}
	return model.DecodeInstruments(body)
}

func (c *Client) GetPrice(ctx context.Context, i model.Instrument) (model.PriceQuote, error) {
	body, err := c.get(ctx, fmt.Sprintf(_priceURL, i.ID), nil)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("%w: can't get price for %s", err, i.Symbol)
	}
	return model.DecodePriceQuote(body, i, time.Now().UTC())
}

func (c *Client) GetPortfolio(ctx context.Context) (model.Portfolio, error) {
	body, err := c.get(ctx, _portfolioURL, nil)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("%w: can't get portfolio", err)
	}
	return model.DecodePortfolio(body)
}

func (c *Client) GetStatement(ctx context.Context, filterType, fromDate, toDate string) (model.EngineStatement, error) {
	query := map[string]string{"filter_type": filterType}
	if fromDate != "" {
		query["from_date"] = fromDate
	}
	if toDate != "" {
		query["to_date"] = toDate
	}

	body, err := c.get(ctx, _statementURL, query)
	if err != nil {
		return model.EngineStatement{}, fmt.Errorf("%w: can't get pnl statement", err)
	}
	return model.DecodeEngineStatement(body)
}

// SubmitOrder sends a validated order to the engine. The engine re-validates
// independently; its refusal surfaces as a RejectionError.
func (c *Client) SubmitOrder(ctx context.Context, order model.NormalizedOrder) (model.Order, error) {
	body, err := c.post(ctx, _ordersURL, order)
	if err != nil {
		return model.Order{}, fmt.Errorf("%w: can't submit order", err)
	}
	return model.DecodeOrder(body)
}

func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	if _, err := c.post(ctx, fmt.Sprintf(_orderCancel, id), nil); err != nil {
		return fmt.Errorf("%w: can't cancel order %d", err, id)
	}
	return nil
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	body, err := c.get(ctx, _ordersURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: can't list orders", err)
	}
	return model.DecodeOrders(body)
}
