package handler

import (
	"fxconvert/internal/rate"
	"net/http"
	"time"
)

type StateResponse struct {
	Base      string     `json:"base" example:"usd"`
	Selected  []string   `json:"selected" example:"eur,gel"`
	Status    string     `json:"status" example:"loaded"`
	Loading   bool       `json:"loading"`
	Reason    string     `json:"reason,omitempty" example:"No internet connection"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
	Connected bool       `json:"connected"`
	RatesBase string     `json:"rates_base,omitempty" example:"usd"`
	RatesDate string     `json:"rates_date,omitempty" example:"2024-01-01"`
}

func newStateResponse(snap rate.Snapshot) StateResponse {
	res := StateResponse{
		Base:      snap.Base,
		Selected:  snap.Selected,
		Status:    string(snap.State.Status),
		Loading:   snap.State.IsLoading(),
		Reason:    snap.State.Reason,
		Connected: snap.Connected,
		RatesBase: snap.Rates.Base,
		RatesDate: snap.Rates.Date,
	}
	if res.Selected == nil {
		res.Selected = []string{}
	}
	if !snap.State.LoadedAt.IsZero() {
		loadedAt := snap.State.LoadedAt
		res.LoadedAt = &loadedAt
	}
	return res
}

// GetState godoc
// @Summary Converter state
// @Description Base currency, selection, load status and connectivity
// @Tags Converter
// @Produce json
// @Success 200 {object} StateResponse
// @Router /state [get]
func (h *Handler) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(h.store.Snapshot()))
}
