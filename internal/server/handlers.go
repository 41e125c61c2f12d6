package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/paperdesk/portfolio-sync/internal/logger"
	"github.com/paperdesk/portfolio-sync/internal/model"
	"github.com/paperdesk/portfolio-sync/internal/pricecache"
	"github.com/paperdesk/portfolio-sync/internal/scheduler"
	"github.com/paperdesk/portfolio-sync/internal/settings"
	"github.com/paperdesk/portfolio-sync/internal/snapshot"
	"github.com/paperdesk/portfolio-sync/internal/statement"
	"github.com/paperdesk/portfolio-sync/internal/trading"
	"github.com/paperdesk/portfolio-sync/internal/validator"
)

// The source dashboard is single-user; settings live under one fixed key.
const _defaultUserID = "default"

type Handler struct {
	catalog    func() model.Catalog
	prices     *pricecache.Cache
	snapshots  *snapshot.Holder
	statements *statement.Service
	client     *trading.Client
	store      *settings.Store

	// out-of-band snapshot refresh after a successful submission
	portfolioSched *scheduler.Scheduler

	logger logger.Logger
}

func NewHandler(
	catalog func() model.Catalog,
	prices *pricecache.Cache,
	snapshots *snapshot.Holder,
	statements *statement.Service,
	client *trading.Client,
	store *settings.Store,
	portfolioSched *scheduler.Scheduler,
	logger logger.Logger,
) *Handler {
	return &Handler{
		catalog:        catalog,
		prices:         prices,
		snapshots:      snapshots,
		statements:     statements,
		client:         client,
		store:          store,
		portfolioSched: portfolioSched,
		logger:         logger,
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/pairs", h.listPairs)
	mux.HandleFunc("GET /api/prices/{symbol}", h.latestPrice)
	mux.HandleFunc("GET /api/portfolio", h.portfolio)
	mux.HandleFunc("GET /api/statement", h.pnlStatement)

	mux.HandleFunc("GET /api/orders", h.listOrders)
	mux.HandleFunc("POST /api/orders", h.submitOrder)
	mux.HandleFunc("POST /api/orders/{id}/cancel", h.cancelOrder)

	mux.HandleFunc("GET /api/settings", h.getSettings)
	mux.HandleFunc("PUT /api/settings", h.putSettings)

	mux.HandleFunc("GET /api/strategies", h.listStrategies)
	mux.HandleFunc("POST /api/strategies", h.createStrategy)
	mux.HandleFunc("PUT /api/strategies/{id}", h.updateStrategy)
	mux.HandleFunc("DELETE /api/strategies/{id}", h.deleteStrategy)
	mux.HandleFunc("POST /api/strategies/{id}/activate", h.activateStrategy)
	mux.HandleFunc("POST /api/strategies/{id}/deactivate", h.deactivateStrategy)

	return mux
}

func (h *Handler) displayCurrency(ctx context.Context) string {
	st, err := h.store.Load(ctx, _defaultUserID)
	if err != nil {
		h.logger.Warnf("%s: can't load settings, using canonical currency", err)
		return ""
	}
	return st.DisplayCurrency
}

func (h *Handler) listPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.client.ListPairs(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, pairs)
}

func (h *Handler) latestPrice(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	quote, ok := h.prices.Latest(symbol)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "no quote for " + symbol})
		return
	}
	h.writeJSON(w, http.StatusOK, quoteView(quote, h.displayCurrency(r.Context())))
}

func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	p, ok := h.snapshots.Current()
	if !ok {
		h.writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "portfolio not loaded yet"})
		return
	}
	h.writeJSON(w, http.StatusOK, portfolioView(p, h.displayCurrency(r.Context())))
}

func (h *Handler) pnlStatement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := statement.ParseFilter(q.Get("filter_type"), q.Get("from_date"), q.Get("to_date"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	st, err := h.statements.Statement(r.Context(), f)
	if err != nil {
		if errors.Is(err, statement.InvalidRangeError) {
			h.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statementView(st, h.displayCurrency(r.Context())))
}

type orderRequest struct {
	Symbol     string          `json:"symbol"`
	OrderSide  model.OrderSide `json:"order_side"`
	OrderType  model.OrderType `json:"order_type"`
	Amount     float64         `json:"amount"`
	AmountMode string          `json:"amount_mode"` // "base" or "currency"
	Currency   string          `json:"currency"`
	LimitPrice string          `json:"limit_price"`
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "can't read request body"})
		return
	}

	var req orderRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed order request"})
		return
	}
	if !req.OrderSide.Valid() || !req.OrderType.Valid() {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "order_side must be buy|sell, order_type must be market|limit"})
		return
	}

	amount := model.BaseAmount(req.Amount)
	if req.AmountMode == "currency" {
		amount = model.DisplayAmount(req.Amount, req.Currency)
	}

	draft := model.DraftOrder{
		Symbol:     req.Symbol,
		Side:       req.OrderSide,
		Type:       req.OrderType,
		Amount:     amount,
		LimitPrice: req.LimitPrice,
	}

	portfolio, _ := h.snapshots.Current()
	quote, _ := h.prices.Latest(req.Symbol)

	normalized, err := validator.Validate(draft, portfolio, quote, h.catalog())
	if err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			h.writeJSON(w, http.StatusBadRequest, validationErrorView(vErr))
			return
		}
		h.writeError(w, err)
		return
	}

	order, err := h.client.SubmitOrder(r.Context(), normalized)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Successful submission moved balance and positions; pull the snapshot
	// forward without disturbing the regular tick schedule.
	if err := h.portfolioSched.RefreshNow(r.Context()); err != nil {
		h.logger.Warnf("%s: post-order portfolio refresh failed", err)
	}

	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid order id"})
		return
	}
	if err := h.client.CancelOrder(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.client.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

type settingsRequest struct {
	DisplayCurrency string `json:"display_currency"`
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Load(r.Context(), _defaultUserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, settingsView(st))
}

func (h *Handler) putSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "can't read request body"})
		return
	}

	var req settingsRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed settings request"})
		return
	}

	st, err := h.store.UpdateDisplayCurrency(r.Context(), _defaultUserID, req.DisplayCurrency)
	if err != nil {
		if errors.Is(err, settings.UnknownCurrencyError) {
			h.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, settingsView(st))
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		h.logger.Errorf("%s: can't marshal response", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Debugf("%s: can't write response", err)
	}
}

// writeError maps engine rejections to their original status and message
// verbatim; everything else is a plain upstream failure.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var rej *trading.RejectionError
	if errors.As(err, &rej) {
		status := rej.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		h.writeJSON(w, status, errorBody{Error: rej.Message})
		return
	}
	h.logger.Errorf("%s: request failed", err)
	h.writeJSON(w, http.StatusBadGateway, errorBody{Error: "engine unavailable"})
}
