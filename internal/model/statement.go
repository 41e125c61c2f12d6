package model

import "time"

// ClosedTrade is a realized buy/sell round trip reported by the engine.
// Read-only: the aggregator folds and filters, never mutates.
type ClosedTrade struct {
	Symbol        string    `json:"symbol"`
	EntryPrice    Number    `json:"entry_price"`
	ExitPrice     Number    `json:"exit_price"`
	Amount        Number    `json:"amount"`
	ProfitLoss    Number    `json:"profit_loss"`
	ProfitLossPct Number    `json:"profit_loss_pct"`
	EntryDate     time.Time `json:"entry_date"`
	ExitDate      time.Time `json:"exit_date"`
}

// Statement is the aggregate over a filtered set of closed trades.
// Best/Worst are nil when the filtered set is empty.
type Statement struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	RealizedPnL   float64
	UnrealizedPnL float64
	TotalPnL      float64
	WinRate       float64
	TotalVolume   float64
	Best          *ClosedTrade
	Worst         *ClosedTrade
	Trades        []ClosedTrade
}

// EngineStatement carries the engine's own precomputed statement aggregates
// alongside the raw trades. The local aggregator recomputes the figures the
// views display; these stay available for reconciliation.
type EngineStatement struct {
	TotalTrades    int           `json:"total_trades"`
	RealizedPnL    Number        `json:"realized_pnl"`
	UnrealizedPnL  Number        `json:"unrealized_pnl"`
	TotalPnL       Number        `json:"total_pnl"`
	WinRate        Number        `json:"win_rate"`
	WinningTrades  int           `json:"winning_trades"`
	LosingTrades   int           `json:"losing_trades"`
	TotalVolume    Number        `json:"total_volume"`
	CurrentBalance Number        `json:"current_balance"`
	Trades         []ClosedTrade `json:"trades"`
}
