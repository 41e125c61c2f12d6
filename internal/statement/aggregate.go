// Package statement folds closed trades into profit and loss figures.
// The aggregator is stateless and deterministic: identical input always
// yields an identical statement.
package statement

import (
	"time"

	"github.com/paperdesk/portfolio-sync/internal/model"
)

// Aggregate filters trades by exit timestamp and computes realized P&L,
// win rate, best/worst trade and total volume. It never mutates its input.
func Aggregate(trades []model.ClosedTrade, f Filter, now time.Time) model.Statement {
	filtered := make([]model.ClosedTrade, 0, len(trades))
	for _, t := range trades {
		if f.Contains(t.ExitDate, now) {
			filtered = append(filtered, t)
		}
	}

	st := model.Statement{
		TotalTrades: len(filtered),
		Trades:      filtered,
	}

	for i := range filtered {
		t := filtered[i]
		pl := t.ProfitLoss.Float()

		st.RealizedPnL += pl
		st.TotalVolume += t.EntryPrice.Float() * t.Amount.Float()

		if pl > 0 {
			st.WinningTrades++
		} else {
			st.LosingTrades++
		}

		if st.Best == nil || pl > st.Best.ProfitLoss.Float() {
			st.Best = &filtered[i]
		}
		if st.Worst == nil || pl < st.Worst.ProfitLoss.Float() {
			st.Worst = &filtered[i]
		}
	}

	if st.TotalTrades > 0 {
		st.WinRate = float64(st.WinningTrades) / float64(st.TotalTrades) * 100
	}

	st.TotalPnL = st.RealizedPnL
	return st
}
