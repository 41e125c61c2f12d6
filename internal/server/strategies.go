package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/paperdesk/portfolio-sync/internal/model"
)

func (h *Handler) listStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := h.client.ListStrategies(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, strategies)
}

func (h *Handler) createStrategy(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStrategy(w, r)
	if !ok {
		return
	}
	s, err := h.client.CreateStrategy(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) updateStrategy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.strategyID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeStrategy(w, r)
	if !ok {
		return
	}
	s, err := h.client.UpdateStrategy(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *Handler) deleteStrategy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.strategyID(w, r)
	if !ok {
		return
	}
	if err := h.client.DeleteStrategy(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) activateStrategy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.strategyID(w, r)
	if !ok {
		return
	}
	if err := h.client.ActivateStrategy(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deactivateStrategy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.strategyID(w, r)
	if !ok {
		return
	}
	if err := h.client.DeactivateStrategy(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) strategyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid strategy id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeStrategy(w http.ResponseWriter, r *http.Request) (model.StrategyRequest, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "can't read request body"})
		return model.StrategyRequest{}, false
	}

	var req model.StrategyRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed strategy request"})
		return model.StrategyRequest{}, false
	}
	if req.Name == "" || req.TradingPair == 0 || req.Amount <= 0 {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "name, trading_pair and a positive amount are required"})
		return model.StrategyRequest{}, false
	}
	return req, true
}
