package handler

import (
	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CurrenciesResponse struct {
	Favorites []domain.Currency `json:"favorites"`
	Available []domain.Currency `json:"available"`
}

// ListCurrencies godoc
// @Summary Selection screen
// @Description Selected currencies and the rest of the catalog, filtered by name or code
// @Tags Currencies
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} CurrenciesResponse
// @Router /currencies [get]
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, CurrenciesResponse{
		Favorites: h.store.Favorites(query),
		Available: h.store.Available(query),
	})
}

// ToggleCurrency godoc
// @Summary Toggle currency
// @Tags Currencies
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errorResponse
// @Router /currencies/{code}/toggle [post]
func (h *Handler) ToggleCurrency(w http.ResponseWriter, r *http.Request) {
	h.mutateSelection(w, r, "ToggleCurrency", h.store.ToggleCurrency)
}

// AddCurrency godoc
// @Summary Select currency
// @Tags Currencies
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errorResponse
// @Router /currencies/{code} [put]
func (h *Handler) AddCurrency(w http.ResponseWriter, r *http.Request) {
	h.mutateSelection(w, r, "AddCurrency", h.store.AddCurrency)
}

// RemoveCurrency godoc
// @Summary Deselect currency
// @Tags Currencies
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errorResponse
// @Router /currencies/{code} [delete]
func (h *Handler) RemoveCurrency(w http.ResponseWriter, r *http.Request) {
	h.mutateSelection(w, r, "RemoveCurrency", h.store.RemoveCurrency)
}

func (h *Handler) mutateSelection(w http.ResponseWriter, r *http.Request, name string, mutate func(code string) error) {
	code := rate.Normalize(chi.URLParam(r, "code"))
	if err := h.validator.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := mutate(code); err != nil {
		writeStoreError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(h.store.Snapshot()))
}
