package model

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// Boundary decoding: raw engine payloads parse into the typed entities above
// or fail. Internal logic never touches untyped data.

type wirePosition struct {
	Symbol       string `json:"symbol"`
	BaseAsset    string `json:"base_asset"`
	Amount       Number `json:"amount"`
	AvgBuyPrice  Number `json:"average_buy_price"`
	CurrentPrice Number `json:"current_price"`
}

type wirePortfolio struct {
	CashBalance Number         `json:"cash_balance"`
	Positions   []wirePosition `json:"positions"`
}

// DecodePortfolio parses the engine's portfolio payload. Derived fields the
// engine also sends (value, profit_loss) are intentionally dropped: they are
// recomputed from the stored fields so every view agrees.
func DecodePortfolio(data []byte) (Portfolio, error) {
	var w wirePortfolio
	if err := sonic.Unmarshal(data, &w); err != nil {
		return Portfolio{}, fmt.Errorf("%w: can't decode portfolio payload", err)
	}

	positions := make([]Position, 0, len(w.Positions))
	for _, p := range w.Positions {
		if p.Symbol == "" {
			return Portfolio{}, fmt.Errorf("portfolio position without symbol")
		}
		if p.Amount < 0 {
			return Portfolio{}, fmt.Errorf("negative amount %f for %s", p.Amount.Float(), p.Symbol)
		}
		if p.Amount == 0 {
			continue
		}
		positions = append(positions, Position{
			Symbol:       p.Symbol,
			BaseAsset:    p.BaseAsset,
			Amount:       p.Amount.Float(),
			AvgEntry:     p.AvgBuyPrice.Float(),
			CurrentPrice: p.CurrentPrice.Float(),
		})
	}

	return Portfolio{
		CashBalance: w.CashBalance.Float(),
		Positions:   positions,
	}, nil
}

type wireQuote struct {
	Price  Number `json:"price"`
	Symbol string `json:"symbol"`
}

func DecodePriceQuote(data []byte, i Instrument, observedAt time.Time) (PriceQuote, error) {
	var w wireQuote
	if err := sonic.Unmarshal(data, &w); err != nil {
		return PriceQuote{}, fmt.Errorf("%w: can't decode price payload", err)
	}
	if w.Price <= 0 {
		return PriceQuote{}, fmt.Errorf("non-positive price %f for %s", w.Price.Float(), i.Symbol)
	}

	return PriceQuote{
		InstrumentID: i.ID,
		Symbol:       i.Symbol,
		Price:        w.Price.Float(),
		ObservedAt:   observedAt,
	}, nil
}

func DecodeInstruments(data []byte) ([]Instrument, error) {
	var instruments []Instrument
	if err := sonic.Unmarshal(data, &instruments); err != nil {
		return nil, fmt.Errorf("%w: can't decode trading pairs payload", err)
	}
	for _, i := range instruments {
		if i.Symbol == "" {
			return nil, fmt.Errorf("trading pair id=%d without symbol", i.ID)
		}
	}
	return instruments, nil
}

func DecodeOrder(data []byte) (Order, error) {
	var o Order
	if err := sonic.Unmarshal(data, &o); err != nil {
		return Order{}, fmt.Errorf("%w: can't decode order payload", err)
	}
	return o, nil
}

func DecodeOrders(data []byte) ([]Order, error) {
	var orders []Order
	if err := sonic.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("%w: can't decode orders payload", err)
	}
	return orders, nil
}

func DecodeEngineStatement(data []byte) (EngineStatement, error) {
	var s EngineStatement
	if err := sonic.Unmarshal(data, &s); err != nil {
		return EngineStatement{}, fmt.Errorf("%w: can't decode pnl statement payload", err)
	}
	return s, nil
}

func DecodeStrategy(data []byte) (Strategy, error) {
	var s Strategy
	if err := sonic.Unmarshal(data, &s); err != nil {
		return Strategy{}, fmt.Errorf("%w: can't decode strategy payload", err)
	}
	return s, nil
}

func DecodeStrategies(data []byte) ([]Strategy, error) {
	var strategies []Strategy
	if err := sonic.Unmarshal(data, &strategies); err != nil {
		return nil, fmt.Errorf("%w: can't decode strategies payload", err)
	}
	return strategies, nil
}
