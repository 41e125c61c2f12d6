// Package validator performs client-side admission checks on draft orders.
// It is purely advisory: prices move between check and submission, and the
// engine re-validates everything. Its job is immediate feedback on
// obviously-invalid submissions, not serializing access to shared balance.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paperdesk/portfolio-sync/internal/currency"
	"github.com/paperdesk/portfolio-sync/internal/model"
)

type ErrorKind string

const (
	InstrumentNotFound  ErrorKind = "instrument_not_found"
	InsufficientBalance ErrorKind = "insufficient_balance"
	InvalidLimitPrice   ErrorKind = "invalid_limit_price"
	InvalidAmount       ErrorKind = "invalid_amount"
)

// ValidationError blocks a submission and is surfaced inline, never retried.
// Required/Available are canonical-unit figures for InsufficientBalance.
type ValidationError struct {
	Kind      ErrorKind
	Required  float64
	Available float64
	Reason    string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InsufficientBalance:
		return fmt.Sprintf("insufficient balance: required %s, available %s",
			currency.Format(e.Required, currency.Canonical),
			currency.Format(e.Available, currency.Canonical))
	case InstrumentNotFound:
		return fmt.Sprintf("trading pair not found: %s", e.Reason)
	case InvalidLimitPrice:
		return "limit price must be a positive number"
	case InvalidAmount:
		return "amount must be a positive number"
	default:
		return string(e.Kind)
	}
}

// Validate admits or rejects a draft order against the current snapshot and
// quote, and computes the normalized payload the engine accepts.
//
// With no usable quote the canonical amount stands in 1:1 for the base-asset
// amount (explicit degraded mode); the true conversion is deferred to the
// engine. Sell orders are never balance-checked client-side: the engine owns
// inventory checks for sells.
func Validate(draft model.DraftOrder, portfolio model.Portfolio, quote model.PriceQuote, catalog model.Catalog) (model.NormalizedOrder, error) {
	instrument, ok := catalog.Lookup(draft.Symbol)
	if !ok {
		return model.NormalizedOrder{}, &ValidationError{Kind: InstrumentNotFound, Reason: draft.Symbol}
	}

	if draft.Amount.Value() <= 0 {
		return model.NormalizedOrder{}, &ValidationError{Kind: InvalidAmount}
	}

	amountBase, requiredCost, haveCost := resolveAmount(draft.Amount, quote)

	if draft.Side == model.Buy && haveCost && requiredCost > portfolio.CashBalance {
		return model.NormalizedOrder{}, &ValidationError{
			Kind:      InsufficientBalance,
			Required:  requiredCost,
			Available: portfolio.CashBalance,
		}
	}

	order := model.NormalizedOrder{
		TradingPair: instrument.ID,
		OrderType:   draft.Type,
		OrderSide:   draft.Side,
		Amount:      amountBase,
	}

	if draft.Type == model.Limit {
		price, err := parseLimitPrice(draft.LimitPrice)
		if err != nil {
			return model.NormalizedOrder{}, &ValidationError{Kind: InvalidLimitPrice, Reason: draft.LimitPrice}
		}
		order.Price = &price
	}

	return order, nil
}

// resolveAmount converts the draft amount to base-asset units and, where
// determinable, the canonical cost of a buy. haveCost is false only in base
// mode without a quote, where the cost cannot be estimated at all.
func resolveAmount(a model.Amount, quote model.PriceQuote) (amountBase, requiredCost float64, haveCost bool) {
	switch a.Mode() {
	case model.AmountDisplay:
		canonical := currency.ToCanonical(a.Value(), a.Currency())
		if quote.Price > 0 {
			return canonical / quote.Price, canonical, true
		}
		return canonical, canonical, true
	default:
		if quote.Price > 0 {
			return a.Value(), a.Value() * quote.Price, true
		}
		return a.Value(), 0, false
	}
}

func parseLimitPrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty limit price")
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: can't parse limit price", err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("non-positive limit price")
	}
	return price, nil
}

// MaxBuyAmount mirrors the order form's MAX hint: the largest amount the
// current balance can buy, in the draft's unit. Zero when it can't be
// computed (no price in base mode).
func MaxBuyAmount(portfolio model.Portfolio, quote model.PriceQuote, mode model.AmountMode, currencyCode string) float64 {
	switch mode {
	case model.AmountDisplay:
		return currency.ToDisplay(portfolio.CashBalance, currencyCode)
	default:
		if quote.Price <= 0 {
			return 0
		}
		return portfolio.CashBalance / quote.Price
	}
}
