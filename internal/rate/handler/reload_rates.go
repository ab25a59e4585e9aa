package handler

import "net/http"

// ReloadRates godoc
// @Summary Reload rates
// @Description Fetches rates for the current base unless they are still fresh
// @Tags Converter
// @Produce json
// @Success 202 {object} StateResponse
// @Failure 503 {object} errorResponse
// @Router /rates/reload [post]
func (h *Handler) ReloadRates(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.LoadRates(); err != nil {
		writeStoreError(w, "ReloadRates", err)
		return
	}
	writeJSON(w, http.StatusAccepted, newStateResponse(h.store.Snapshot()))
}
