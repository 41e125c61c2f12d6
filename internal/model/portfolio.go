package model

// Position is a non-zero holding. Value and profit figures are derived from
// the stored fields on every call so they can't drift from each other.
type Position struct {
	Symbol       string
	BaseAsset    string
	Amount       float64
	AvgEntry     float64
	CurrentPrice float64
}

func (p Position) Value() float64 {
	return p.Amount * p.CurrentPrice
}

func (p Position) CostBasis() float64 {
	return p.Amount * p.AvgEntry
}

func (p Position) ProfitLoss() float64 {
	return p.Value() - p.CostBasis()
}

func (p Position) ProfitLossPct() float64 {
	cost := p.CostBasis()
	if cost <= 0 {
		return 0
	}
	return p.ProfitLoss() / cost * 100
}

// Portfolio is one internally consistent view of cash and positions.
// Aggregates are recomputed from the positions on every read.
type Portfolio struct {
	CashBalance float64
	Positions   []Position
}

func (p Portfolio) PositionsValue() float64 {
	var sum float64
	for _, pos := range p.Positions {
		sum += pos.Value()
	}
	return sum
}

func (p Portfolio) TotalValue() float64 {
	return p.CashBalance + p.PositionsValue()
}

func (p Portfolio) TotalProfitLoss() float64 {
	var sum float64
	for _, pos := range p.Positions {
		sum += pos.ProfitLoss()
	}
	return sum
}

// TotalProfitLossPct relates aggregate profit to the aggregate cost basis
// (total value minus profit). A non-positive denominator reports 0 rather
// than an undefined percentage.
func (p Portfolio) TotalProfitLossPct() float64 {
	pl := p.TotalProfitLoss()
	base := p.TotalValue() - pl
	if base <= 0 {
		return 0
	}
	return pl / base * 100
}
