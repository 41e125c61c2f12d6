package model

import "time"

type StrategyType string

const (
	ManualStrategy     StrategyType = "manual"
	GridStrategy       StrategyType = "grid"
	DCAStrategy        StrategyType = "dca"
	StopLimitStrategy  StrategyType = "stop_limit"
	TakeProfitStrategy StrategyType = "take_profit"
)

// Strategy is an automated strategy record owned by the engine. The client
// only round-trips it through the CRUD surface.
type Strategy struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	StrategyType      StrategyType `json:"strategy_type"`
	TradingPair       int64        `json:"trading_pair"`
	IsActive          bool         `json:"is_active"`
	BuyPrice          Number       `json:"buy_price"`
	SellPrice         Number       `json:"sell_price"`
	Amount            Number       `json:"amount"`
	StopLossPct       Number       `json:"stop_loss_percentage"`
	TakeProfitPct     Number       `json:"take_profit_percentage"`
	ExecutionInterval string       `json:"execution_interval"`
	LastExecutedAt    *time.Time   `json:"last_executed_at"`
	TotalExecutions   int          `json:"total_executions"`
	CreatedAt         time.Time    `json:"created_at"`
}

// StrategyRequest is the writable subset for create/update calls.
type StrategyRequest struct {
	Name              string       `json:"name"`
	StrategyType      StrategyType `json:"strategy_type"`
	TradingPair       int64        `json:"trading_pair"`
	BuyPrice          *float64     `json:"buy_price,omitempty"`
	SellPrice         *float64     `json:"sell_price,omitempty"`
	Amount            float64      `json:"amount"`
	StopLossPct       *float64     `json:"stop_loss_percentage,omitempty"`
	TakeProfitPct     *float64     `json:"take_profit_percentage,omitempty"`
	ExecutionInterval string       `json:"execution_interval,omitempty"`
}
