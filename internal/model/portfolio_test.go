package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionDerivedFields(t *testing.T) {
	p := Position{
		Symbol:       "BTC/USDT",
		Amount:       0.5,
		AvgEntry:     40000,
		CurrentPrice: 50000,
	}

	assert.InDelta(t, 25000, p.Value(), 1e-9)
	assert.InDelta(t, 20000, p.CostBasis(), 1e-9)
	assert.InDelta(t, 5000, p.ProfitLoss(), 1e-9)
	assert.InDelta(t, 25, p.ProfitLossPct(), 1e-9)
}

func TestPositionZeroCostBasisPct(t *testing.T) {
	p := Position{Amount: 1, AvgEntry: 0, CurrentPrice: 100}
	assert.Equal(t, 0.0, p.ProfitLossPct())
}

func TestPortfolioTotalValueIdentity(t *testing.T) {
	p := Portfolio{
		CashBalance: 1000,
		Positions: []Position{
			{Symbol: "BTC/USDT", Amount: 0.1, AvgEntry: 45000, CurrentPrice: 50000},
			{Symbol: "ETH/USDT", Amount: 2, AvgEntry: 3000, CurrentPrice: 2800},
		},
	}

	var positionsSum float64
	for _, pos := range p.Positions {
		positionsSum += pos.Value()
	}

	// the identity must hold exactly: aggregates are recomputed, never cached
	assert.Equal(t, p.CashBalance+positionsSum, p.TotalValue())
	assert.InDelta(t, 5000+(-400), p.TotalProfitLoss(), 1e-9)
}

func TestPortfolioAggregatePctGuards(t *testing.T) {
	empty := Portfolio{}
	assert.Equal(t, 0.0, empty.TotalProfitLossPct())

	// denominator totalValue - totalPL can go non-positive for near-zero cost
	// basis portfolios; the percentage must report 0 instead of Inf
	weird := Portfolio{
		Positions: []Position{{Amount: 1, AvgEntry: 0, CurrentPrice: 100}},
	}
	assert.Equal(t, 0.0, weird.TotalProfitLossPct())
}

func TestPortfolioAggregatePct(t *testing.T) {
	p := Portfolio{
		CashBalance: 500,
		Positions: []Position{
			{Amount: 1, AvgEntry: 100, CurrentPrice: 150},
		},
	}
	// totalValue = 650, totalPL = 50, base = 600
	assert.InDelta(t, 50.0/600.0*100, p.TotalProfitLossPct(), 1e-9)
}
