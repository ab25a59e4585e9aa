package handler

import (
	"net/http"
)

type GetSupportedCodesResponse struct {
	Codes []string `json:"codes" example:"eur,jpy,usd"`
}

// GetSupportedCodes godoc
// @Summary List supported currencies
// @Description Retrieve all currency codes known to the catalog
// @Tags Currencies
// @Produce json
// @Success 200 {object} GetSupportedCodesResponse
// @Router /currencies/supported [get]
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GetSupportedCodesResponse{
		Codes: h.validator.SupportedCodes(),
	})
}
