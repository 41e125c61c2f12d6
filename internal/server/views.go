package server

import (
	"time"

	"github.com/paperdesk/portfolio-sync/internal/currency"
	"github.com/paperdesk/portfolio-sync/internal/model"
	"github.com/paperdesk/portfolio-sync/internal/settings"
	"github.com/paperdesk/portfolio-sync/internal/validator"
)

// View payloads. Raw numbers stay canonical; formatted strings go through
// the currency package, the single formatting authority.

type QuoteView struct {
	Symbol         string    `json:"symbol"`
	Price          float64   `json:"price"`
	PriceFormatted string    `json:"price_formatted"`
	ObservedAt     time.Time `json:"observed_at"`
}

func quoteView(q model.PriceQuote, code string) QuoteView {
	return QuoteView{
		Symbol:         q.Symbol,
		Price:          q.Price,
		PriceFormatted: currency.Format(q.Price, code),
		ObservedAt:     q.ObservedAt,
	}
}

type PositionView struct {
	Symbol         string  `json:"symbol"`
	BaseAsset      string  `json:"base_asset"`
	Amount         float64 `json:"amount"`
	AvgEntry       float64 `json:"average_buy_price"`
	CurrentPrice   float64 `json:"current_price"`
	Value          float64 `json:"value"`
	ValueFormatted string  `json:"value_formatted"`
	ProfitLoss     float64 `json:"profit_loss"`
	ProfitLossFmt  string  `json:"profit_loss_formatted"`
	ProfitLossPct  float64 `json:"profit_loss_pct"`
}

type PortfolioView struct {
	Currency           string         `json:"currency"`
	CashBalance        float64        `json:"cash_balance"`
	CashBalanceFmt     string         `json:"cash_balance_formatted"`
	PositionsValue     float64        `json:"positions_value"`
	TotalValue         float64        `json:"total_value"`
	TotalValueFmt      string         `json:"total_value_formatted"`
	TotalProfitLoss    float64        `json:"total_profit_loss"`
	TotalProfitLossFmt string         `json:"total_profit_loss_formatted"`
	TotalProfitLossPct float64        `json:"total_profit_loss_pct"`
	Positions          []PositionView `json:"positions"`
}

func portfolioView(p model.Portfolio, code string) PortfolioView {
	positions := make([]PositionView, 0, len(p.Positions))
	for _, pos := range p.Positions {
		positions = append(positions, PositionView{
			Symbol:         pos.Symbol,
			BaseAsset:      pos.BaseAsset,
			Amount:         pos.Amount,
			AvgEntry:       pos.AvgEntry,
			CurrentPrice:   pos.CurrentPrice,
			Value:          pos.Value(),
			ValueFormatted: currency.Format(pos.Value(), code),
			ProfitLoss:     pos.ProfitLoss(),
			ProfitLossFmt:  currency.Format(pos.ProfitLoss(), code),
			ProfitLossPct:  pos.ProfitLossPct(),
		})
	}

	return PortfolioView{
		Currency:           code,
		CashBalance:        p.CashBalance,
		CashBalanceFmt:     currency.Format(p.CashBalance, code),
		PositionsValue:     p.PositionsValue(),
		TotalValue:         p.TotalValue(),
		TotalValueFmt:      currency.Format(p.TotalValue(), code),
		TotalProfitLoss:    p.TotalProfitLoss(),
		TotalProfitLossFmt: currency.Format(p.TotalProfitLoss(), code),
		TotalProfitLossPct: p.TotalProfitLossPct(),
	}
}

type StatementView struct {
	Currency       string             `json:"currency"`
	TotalTrades    int                `json:"total_trades"`
	WinningTrades  int                `json:"winning_trades"`
	LosingTrades   int                `json:"losing_trades"`
	WinRate        float64            `json:"win_rate"`
	RealizedPnL    float64            `json:"realized_pnl"`
	RealizedFmt    string             `json:"realized_pnl_formatted"`
	UnrealizedPnL  float64            `json:"unrealized_pnl"`
	UnrealizedFmt  string             `json:"unrealized_pnl_formatted"`
	TotalPnL       float64            `json:"total_pnl"`
	TotalPnLFmt    string             `json:"total_pnl_formatted"`
	TotalVolume    float64            `json:"total_volume"`
	TotalVolumeFmt string             `json:"total_volume_formatted"`
	Best           *model.ClosedTrade `json:"best_trade"`
	Worst          *model.ClosedTrade `json:"worst_trade"`
	Trades         []model.ClosedTrade `json:"trades"`
}

func statementView(st model.Statement, code string) StatementView {
	return StatementView{
		Currency:       code,
		TotalTrades:    st.TotalTrades,
		WinningTrades:  st.WinningTrades,
		LosingTrades:   st.LosingTrades,
		WinRate:        st.WinRate,
		RealizedPnL:    st.RealizedPnL,
		RealizedFmt:    currency.Format(st.RealizedPnL, code),
		UnrealizedPnL:  st.UnrealizedPnL,
		UnrealizedFmt:  currency.Format(st.UnrealizedPnL, code),
		TotalPnL:       st.TotalPnL,
		TotalPnLFmt:    currency.Format(st.TotalPnL, code),
		TotalVolume:    st.TotalVolume,
		TotalVolumeFmt: currency.Format(st.TotalVolume, code),
		Best:           st.Best,
		Worst:          st.Worst,
		Trades:         st.Trades,
	}
}

type SettingsView struct {
	DisplayCurrency string `json:"display_currency"`
	CurrencySymbol  string `json:"currency_symbol"`
	CurrencyName    string `json:"currency_name"`
	HasSession      bool   `json:"has_session"`
}

func settingsView(st settings.Settings) SettingsView {
	return SettingsView{
		DisplayCurrency: st.DisplayCurrency,
		CurrencySymbol:  currency.Symbol(st.DisplayCurrency),
		CurrencyName:    currency.Name(st.DisplayCurrency),
		HasSession:      st.SessionToken != "",
	}
}

type ValidationErrorView struct {
	Error     string  `json:"error"`
	Kind      string  `json:"kind"`
	Required  float64 `json:"required,omitempty"`
	Available float64 `json:"available,omitempty"`
}

func validationErrorView(err *validator.ValidationError) ValidationErrorView {
	return ValidationErrorView{
		Error:     err.Error(),
		Kind:      string(err.Kind),
		Required:  err.Required,
		Available: err.Available,
	}
}
