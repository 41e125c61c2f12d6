package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePortfolio(t *testing.T) {
	// the engine mixes string and numeric decimals; both must decode
	payload := []byte(`{
		"cash_balance": "1000.50",
		"positions_value": 5000,
		"total_value": 6000.50,
		"positions": [
			{"symbol": "BTC/USDT", "base_asset": "BTC", "amount": "0.1",
			 "average_buy_price": 45000, "current_price": "50000",
			 "value": 5000, "profit_loss": 500, "profit_loss_pct": 11.11},
			{"symbol": "DOGE/USDT", "base_asset": "DOGE", "amount": 0,
			 "average_buy_price": 0.1, "current_price": 0.2}
		]
	}`)

	p, err := DecodePortfolio(payload)
	require.NoError(t, err)

	assert.InDelta(t, 1000.50, p.CashBalance, 1e-9)
	// zero-amount rows are not positions
	require.Len(t, p.Positions, 1)
	assert.Equal(t, "BTC/USDT", p.Positions[0].Symbol)
	assert.InDelta(t, 0.1, p.Positions[0].Amount, 1e-9)

	// derived figures come from our arithmetic, not the wire copy
	assert.InDelta(t, 5000, p.Positions[0].Value(), 1e-9)
	assert.InDelta(t, 500, p.Positions[0].ProfitLoss(), 1e-9)
}

func TestDecodePortfolioRejectsNegativeAmount(t *testing.T) {
	payload := []byte(`{"cash_balance": 10, "positions": [
		{"symbol": "BTC/USDT", "amount": -1, "average_buy_price": 1, "current_price": 1}
	]}`)
	_, err := DecodePortfolio(payload)
	assert.Error(t, err)
}

func TestDecodePortfolioRejectsMissingSymbol(t *testing.T) {
	payload := []byte(`{"cash_balance": 10, "positions": [{"amount": 1}]}`)
	_, err := DecodePortfolio(payload)
	assert.Error(t, err)
}

func TestDecodePriceQuote(t *testing.T) {
	i := Instrument{ID: 7, Symbol: "ETH/USDT"}
	now := time.Now().UTC()

	q, err := DecodePriceQuote([]byte(`{"price": "2800.25"}`), i, now)
	require.NoError(t, err)
	assert.Equal(t, int64(7), q.InstrumentID)
	assert.Equal(t, "ETH/USDT", q.Symbol)
	assert.InDelta(t, 2800.25, q.Price, 1e-9)
	assert.Equal(t, now, q.ObservedAt)
}

func TestDecodePriceQuoteRejectsNonPositive(t *testing.T) {
	i := Instrument{ID: 7, Symbol: "ETH/USDT"}
	_, err := DecodePriceQuote([]byte(`{"price": 0}`), i, time.Now())
	assert.Error(t, err)
	_, err = DecodePriceQuote([]byte(`{"price": "-5"}`), i, time.Now())
	assert.Error(t, err)
}

func TestDecodeInstruments(t *testing.T) {
	payload := []byte(`[
		{"id": 1, "symbol": "BTC/USDT", "base_asset": "BTC", "quote_asset": "USDT", "is_active": true},
		{"id": 2, "symbol": "ETH/USDT", "base_asset": "ETH", "quote_asset": "USDT", "is_active": false}
	]`)

	instruments, err := DecodeInstruments(payload)
	require.NoError(t, err)
	require.Len(t, instruments, 2)

	catalog := NewCatalog(instruments)
	assert.Equal(t, 2, catalog.Len())

	i, ok := catalog.Lookup("BTC/USDT")
	assert.True(t, ok)
	assert.Equal(t, int64(1), i.ID)

	_, ok = catalog.Lookup("XRP/USDT")
	assert.False(t, ok)
}

func TestDecodeInstrumentsRejectsMissingSymbol(t *testing.T) {
	_, err := DecodeInstruments([]byte(`[{"id": 1}]`))
	assert.Error(t, err)
}

func TestNumberUnmarshal(t *testing.T) {
	var n Number
	require.NoError(t, n.UnmarshalJSON([]byte(`"42.5"`)))
	assert.InDelta(t, 42.5, n.Float(), 1e-9)

	require.NoError(t, n.UnmarshalJSON([]byte(`13`)))
	assert.InDelta(t, 13, n.Float(), 1e-9)

	require.NoError(t, n.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, 0.0, n.Float())

	assert.Error(t, n.UnmarshalJSON([]byte(`"not a number"`)))
}

func TestDecodeEngineStatement(t *testing.T) {
	payload := []byte(`{
		"total_trades": 2,
		"realized_pnl": "150.5",
		"unrealized_pnl": -20,
		"win_rate": 50,
		"winning_trades": 1,
		"losing_trades": 1,
		"trades": [
			{"symbol": "BTC/USDT", "entry_price": 100, "exit_price": 120,
			 "amount": 1, "profit_loss": 20, "profit_loss_pct": 20,
			 "exit_date": "2025-02-10T12:00:00Z"}
		]
	}`)

	s, err := DecodeEngineStatement(payload)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalTrades)
	assert.InDelta(t, 150.5, s.RealizedPnL.Float(), 1e-9)
	require.Len(t, s.Trades, 1)
	assert.Equal(t, 2025, s.Trades[0].ExitDate.Year())
}
