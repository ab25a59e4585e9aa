package handler

import (
	"encoding/json"
	"fxconvert/internal/rate"
	"net/http"
)

type SetBaseRequest struct {
	Code string `json:"code" example:"eur"`
}

// SetBase godoc
// @Summary Swap base currency
// @Description Makes code the base currency; the previous base joins the selection
// @Tags Converter
// @Accept json
// @Produce json
// @Param request body SetBaseRequest true "New base currency"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errorResponse
// @Router /base [put]
func (h *Handler) SetBase(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req SetBaseRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code := rate.Normalize(req.Code)
	if err := h.validator.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SwapBaseCurrency(code); err != nil {
		writeStoreError(w, "SetBase", err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(h.store.Snapshot()))
}

// DropBase godoc
// @Summary Remove base currency
// @Description The first other selected currency, or usd, becomes the base
// @Tags Converter
// @Produce json
// @Success 200 {object} StateResponse
// @Router /base [delete]
func (h *Handler) DropBase(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.DropBaseCurrency(); err != nil {
		writeStoreError(w, "DropBase", err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(h.store.Snapshot()))
}
