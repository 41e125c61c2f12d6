package model

import "time"

// DraftOrder is unvalidated user input for a prospective trade. It exists
// only client-side until the validator admits it.
type DraftOrder struct {
	Symbol     string
	Side       OrderSide
	Type       OrderType
	Amount     Amount
	LimitPrice string // raw user input, parsed by the validator
}

// NormalizedOrder is the only representation the engine accepts: base-asset
// amount, canonical-unit limit price.
type NormalizedOrder struct {
	TradingPair int64     `json:"trading_pair"`
	OrderType   OrderType `json:"order_type"`
	OrderSide   OrderSide `json:"order_side"`
	Amount      float64   `json:"amount"`
	Price       *float64  `json:"price,omitempty"`
}

// Order is the engine's record of a submitted order.
type Order struct {
	ID           int64       `json:"id"`
	TradingPair  int64       `json:"trading_pair"`
	OrderType    OrderType   `json:"order_type"`
	OrderSide    OrderSide   `json:"order_side"`
	Status       OrderStatus `json:"status"`
	Price        Number      `json:"price"`
	Amount       Number      `json:"amount"`
	FilledAmount Number      `json:"filled_amount"`
	FilledPrice  Number      `json:"filled_price"`
	CreatedAt    time.Time   `json:"created_at"`
	FilledAt     *time.Time  `json:"filled_at"`
}
