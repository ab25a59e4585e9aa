package handler

import (
	"fxconvert/internal/convert"
	"net/http"
)

type RowResponse struct {
	Code      string  `json:"code" example:"eur"`
	Name      string  `json:"name" example:"Euro"`
	Flag      string  `json:"flag" example:"🇪🇺"`
	Rate      float64 `json:"rate" example:"0.9"`
	Converted string  `json:"converted" example:"9.00"`
}

type GetRowsResponse struct {
	Base   string        `json:"base" example:"usd"`
	Amount string        `json:"amount" example:"10"`
	Rows   []RowResponse `json:"rows"`
}

// GetRows godoc
// @Summary Converted rows
// @Description One row per selected currency, converted from amount units of the base currency
// @Tags Converter
// @Produce json
// @Param amount query string false "Amount in base currency, defaults to 1"
// @Success 200 {object} GetRowsResponse
// @Router /rows [get]
func (h *Handler) GetRows(w http.ResponseWriter, r *http.Request) {
	input := convert.Sanitize(r.URL.Query().Get("amount"))
	amount := convert.ParseAmount(input)

	base, rows := h.store.Rows()
	res := GetRowsResponse{
		Base:   base,
		Amount: amount.String(),
		Rows:   make([]RowResponse, 0, len(rows)),
	}
	for _, row := range rows {
		res.Rows = append(res.Rows, RowResponse{
			Code:      row.Currency.Code,
			Name:      row.Currency.Name,
			Flag:      row.Currency.Flag,
			Rate:      row.Rate,
			Converted: convert.Format(convert.Convert(amount, row.Rate)),
		})
	}
	writeJSON(w, http.StatusOK, res)
}
