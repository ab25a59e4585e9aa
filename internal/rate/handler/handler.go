package handler

import (
	"encoding/json"
	"errors"
	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Validator interface {
	ValidateCode(code string) error
	SupportedCodes() []string
}

// Store is the part of rate.Store the API drives.
type Store interface {
	Snapshot() rate.Snapshot
	Rows() (string, []domain.DisplayRow)
	Favorites(query string) []domain.Currency
	Available(query string) []domain.Currency
	LoadRates() error
	SwapBaseCurrency(to string) error
	DropBaseCurrency() error
	AddCurrency(code string) error
	RemoveCurrency(code string) error
	ToggleCurrency(code string) error
}

type Handler struct {
	validator Validator
	store     Store
}

func NewRateHandler(validator Validator, store Store) *Handler {
	return &Handler{validator: validator, store: store}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeStoreError reports a failed store call. handlerName is only used for logging.
func writeStoreError(w http.ResponseWriter, handlerName string, err error) {
	if errors.Is(err, domain.ErrStoreClosed) {
		writeError(w, http.StatusServiceUnavailable, "converter is shutting down")
		return
	}
	msg := "ups, couldn't update the converter this time"
	logrus.WithError(err).WithField("handler", handlerName).Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
}
