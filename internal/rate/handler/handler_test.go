package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateCode(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockValidator) SupportedCodes() []string {
	args := m.Called()
	codes, _ := args.Get(0).([]string)
	return codes
}

type MockStore struct{ mock.Mock }

func (m *MockStore) Snapshot() rate.Snapshot {
	args := m.Called()
	snap, _ := args.Get(0).(rate.Snapshot)
	return snap
}

func (m *MockStore) Rows() (string, []domain.DisplayRow) {
	args := m.Called()
	rows, _ := args.Get(1).([]domain.DisplayRow)
	return args.String(0), rows
}

func (m *MockStore) Favorites(query string) []domain.Currency {
	args := m.Called(query)
	c, _ := args.Get(0).([]domain.Currency)
	return c
}

func (m *MockStore) Available(query string) []domain.Currency {
	args := m.Called(query)
	c, _ := args.Get(0).([]domain.Currency)
	return c
}

func (m *MockStore) LoadRates() error {
	return m.Called().Error(0)
}

func (m *MockStore) SwapBaseCurrency(to string) error {
	return m.Called(to).Error(0)
}

func (m *MockStore) DropBaseCurrency() error {
	return m.Called().Error(0)
}

func (m *MockStore) AddCurrency(code string) error {
	return m.Called(code).Error(0)
}

func (m *MockStore) RemoveCurrency(code string) error {
	return m.Called(code).Error(0)
}

func (m *MockStore) ToggleCurrency(code string) error {
	return m.Called(code).Error(0)
}

type errorJSON struct {
	Error string `json:"error"`
}

func withCode(req *http.Request, code string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("code", code)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func loadedSnapshot() rate.Snapshot {
	return rate.Snapshot{
		Base:     "usd",
		Selected: []string{"eur", "gel"},
		Rates:    domain.RateTable{Base: "usd", Date: "2024-01-01", Rates: map[string]float64{"eur": 0.9, "gel": 2.7}},
		State: domain.LoadState{
			Status:   domain.StatusLoaded,
			LoadedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		Connected: true,
	}
}

// --- GetState ---

func TestHandler_GetState_Loaded(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("Snapshot").Return(loadedSnapshot()).Once()

	rr := httptest.NewRecorder()
	h.GetState(rr, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var got StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "usd", got.Base)
	require.Equal(t, []string{"eur", "gel"}, got.Selected)
	require.Equal(t, "loaded", got.Status)
	require.False(t, got.Loading)
	require.True(t, got.Connected)
	require.Equal(t, "2024-01-01", got.RatesDate)
	require.NotNil(t, got.LoadedAt)
	require.True(t, got.LoadedAt.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	require.Empty(t, got.Reason)
}

func TestHandler_GetState_Failed(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("Snapshot").Return(rate.Snapshot{
		Base:  "usd",
		State: domain.LoadState{Status: domain.StatusFailed, Reason: rate.ReasonNoConnection},
	}).Once()

	rr := httptest.NewRecorder()
	h.GetState(rr, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "failed", got.Status)
	require.Equal(t, rate.ReasonNoConnection, got.Reason)
	require.Nil(t, got.LoadedAt)
	require.NotNil(t, got.Selected)
	require.Empty(t, got.Selected)
}

// --- GetRows ---

func TestHandler_GetRows_ConvertsAmount(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("Rows").Return("usd", []domain.DisplayRow{
		{Currency: domain.Currency{Code: "eur", Name: "Euro", Flag: "🇪🇺"}, Rate: 0.9},
		{Currency: domain.Currency{Code: "xyz", Name: "Test"}, Rate: 0},
	}).Once()

	rr := httptest.NewRecorder()
	h.GetRows(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rows?amount=1,0.5.0", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got GetRowsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "usd", got.Base)
	require.Equal(t, "10.5", got.Amount)
	require.Len(t, got.Rows, 2)
	require.Equal(t, RowResponse{Code: "eur", Name: "Euro", Flag: "🇪🇺", Rate: 0.9, Converted: "9.45"}, got.Rows[0])
	require.Equal(t, "0.00", got.Rows[1].Converted)
	mockStore.AssertExpectations(t)
}

func TestHandler_GetRows_DefaultAmountIsOne(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("Rows").Return("usd", []domain.DisplayRow{
		{Currency: domain.Currency{Code: "gel", Name: "Georgian Lari"}, Rate: 2.7},
	}).Once()

	rr := httptest.NewRecorder()
	h.GetRows(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rows", nil))

	var got GetRowsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "1", got.Amount)
	require.Equal(t, "2.70", got.Rows[0].Converted)
}

func TestHandler_GetRows_NoRowsIsEmptyList(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("Rows").Return("usd", []domain.DisplayRow{}).Once()

	rr := httptest.NewRecorder()
	h.GetRows(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rows", nil))

	require.JSONEq(t, `{"base":"usd","amount":"1","rows":[]}`, rr.Body.String())
}

// --- ReloadRates ---

func TestHandler_ReloadRates_Accepted(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("LoadRates").Return(nil).Once()
	mockStore.On("Snapshot").Return(rate.Snapshot{Base: "usd", State: domain.LoadState{Status: domain.StatusLoading}}).Once()

	rr := httptest.NewRecorder()
	h.ReloadRates(rr, httptest.NewRequest(http.MethodPost, "/api/v1/rates/reload", nil))

	require.Equal(t, http.StatusAccepted, rr.Code)
	var got StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.True(t, got.Loading)
	mockStore.AssertExpectations(t)
}

func TestHandler_ReloadRates_StoreClosed(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("LoadRates").Return(domain.ErrStoreClosed).Once()

	rr := httptest.NewRecorder()
	h.ReloadRates(rr, httptest.NewRequest(http.MethodPost, "/api/v1/rates/reload", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	mockStore.AssertNotCalled(t, "Snapshot")
}

// --- SetBase / DropBase ---

func TestHandler_SetBase_InvalidJSON(t *testing.T) {
	mockValidator := new(MockValidator)
	mockStore := new(MockStore)
	h := NewRateHandler(mockValidator, mockStore)

	rr := httptest.NewRecorder()
	h.SetBase(rr, httptest.NewRequest(http.MethodPut, "/api/v1/base", bytes.NewBufferString("{")))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "invalid request body", ej.Error)
	mockValidator.AssertNotCalled(t, "ValidateCode", mock.Anything)
}

func TestHandler_SetBase_UnknownField(t *testing.T) {
	h := NewRateHandler(new(MockValidator), new(MockStore))

	rr := httptest.NewRecorder()
	h.SetBase(rr, httptest.NewRequest(http.MethodPut, "/api/v1/base", bytes.NewBufferString(`{"code":"eur","extra":1}`)))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_SetBase_BodyTooLarge(t *testing.T) {
	h := NewRateHandler(new(MockValidator), new(MockStore))
	body := `{"code":"` + string(bytes.Repeat([]byte("a"), 512)) + `"}`

	rr := httptest.NewRecorder()
	h.SetBase(rr, httptest.NewRequest(http.MethodPut, "/api/v1/base", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_SetBase_ValidationErrors(t *testing.T) {
	cases := []struct {
		name         string
		validatorErr error
	}{
		{name: "code required", validatorErr: rate.ErrCodeRequired},
		{name: "code unsupported", validatorErr: rate.ErrCodeUnsupported},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockStore := new(MockStore)
			h := NewRateHandler(mockValidator, mockStore)
			mockValidator.On("ValidateCode", "abc").Return(tc.validatorErr).Once()

			rr := httptest.NewRecorder()
			h.SetBase(rr, httptest.NewRequest(http.MethodPut, "/api/v1/base", bytes.NewBufferString(`{"code":" ABC "}`)))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.validatorErr.Error(), ej.Error)
			mockStore.AssertNotCalled(t, "SwapBaseCurrency", mock.Anything)
		})
	}
}

func TestHandler_SetBase_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockStore := new(MockStore)
	h := NewRateHandler(mockValidator, mockStore)
	mockValidator.On("ValidateCode", "eur").Return(nil).Once()
	mockStore.On("SwapBaseCurrency", "eur").Return(nil).Once()
	mockStore.On("Snapshot").Return(rate.Snapshot{
		Base:     "eur",
		Selected: []string{"gel", "usd"},
		State:    domain.LoadState{Status: domain.StatusLoading},
	}).Once()

	rr := httptest.NewRecorder()
	h.SetBase(rr, httptest.NewRequest(http.MethodPut, "/api/v1/base", bytes.NewBufferString(`{"code":"EUR"}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	var got StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "eur", got.Base)
	require.Equal(t, []string{"gel", "usd"}, got.Selected)
	mockValidator.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestHandler_SetBase_InternalError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockStore := new(MockStore)
	h := NewRateHandler(mockValidator, mockStore)
	mockValidator.On("ValidateCode", "eur").Return(nil).Once()
	mockStore.On("SwapBaseCurrency", "eur").Return(errors.New("boom")).Once()

	rr := httptest.NewRecorder()
	h.SetBase(rr, httptest.NewRequest(http.MethodPut, "/api/v1/base", bytes.NewBufferString(`{"code":"eur"}`)))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "ups, couldn't update the converter this time", ej.Error)
}

func TestHandler_DropBase(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("DropBaseCurrency").Return(nil).Once()
	mockStore.On("Snapshot").Return(rate.Snapshot{Base: "gel", Selected: []string{"eur"}}).Once()

	rr := httptest.NewRecorder()
	h.DropBase(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/base", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "gel", got.Base)
	mockStore.AssertExpectations(t)
}

// --- Currencies ---

func TestHandler_ListCurrencies(t *testing.T) {
	mockStore := new(MockStore)
	h := NewRateHandler(new(MockValidator), mockStore)
	mockStore.On("Favorites", "dollar").Return([]domain.Currency{{Code: "usd", Name: "United States Dollar"}}).Once()
	mockStore.On("Available", "dollar").Return([]domain.Currency{{Code: "aud", Name: "Australian Dollar"}}).Once()

	rr := httptest.NewRecorder()
	h.ListCurrencies(rr, httptest.NewRequest(http.MethodGet, "/api/v1/currencies?q=dollar", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got CurrenciesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "usd", got.Favorites[0].Code)
	require.Equal(t, "aud", got.Available[0].Code)
	mockStore.AssertExpectations(t)
}

func TestHandler_SelectionMutations(t *testing.T) {
	cases := []struct {
		name   string
		method string
		call   func(h *Handler) http.HandlerFunc
	}{
		{name: "ToggleCurrency", method: http.MethodPost, call: func(h *Handler) http.HandlerFunc { return h.ToggleCurrency }},
		{name: "AddCurrency", method: http.MethodPut, call: func(h *Handler) http.HandlerFunc { return h.AddCurrency }},
		{name: "RemoveCurrency", method: http.MethodDelete, call: func(h *Handler) http.HandlerFunc { return h.RemoveCurrency }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockStore := new(MockStore)
			h := NewRateHandler(mockValidator, mockStore)
			mockValidator.On("ValidateCode", "gel").Return(nil).Once()
			mockStore.On(tc.name, "gel").Return(nil).Once()
			mockStore.On("Snapshot").Return(loadedSnapshot()).Once()

			req := withCode(httptest.NewRequest(tc.method, "/api/v1/currencies/GEL", nil), " GEL ")
			rr := httptest.NewRecorder()
			tc.call(h)(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			mockValidator.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestHandler_SelectionMutation_UnsupportedCode(t *testing.T) {
	mockValidator := new(MockValidator)
	mockStore := new(MockStore)
	h := NewRateHandler(mockValidator, mockStore)
	mockValidator.On("ValidateCode", "zzz").Return(rate.ErrCodeUnsupported).Once()

	rr := httptest.NewRecorder()
	h.ToggleCurrency(rr, withCode(httptest.NewRequest(http.MethodPost, "/api/v1/currencies/zzz/toggle", nil), "zzz"))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, rate.ErrCodeUnsupported.Error(), ej.Error)
	mockStore.AssertNotCalled(t, "ToggleCurrency", mock.Anything)
}

func TestHandler_SelectionMutation_StoreClosed(t *testing.T) {
	mockValidator := new(MockValidator)
	mockStore := new(MockStore)
	h := NewRateHandler(mockValidator, mockStore)
	mockValidator.On("ValidateCode", "eur").Return(nil).Once()
	mockStore.On("RemoveCurrency", "eur").Return(domain.ErrStoreClosed).Once()

	rr := httptest.NewRecorder()
	h.RemoveCurrency(rr, withCode(httptest.NewRequest(http.MethodDelete, "/api/v1/currencies/eur", nil), "eur"))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHandler_GetSupportedCodes(t *testing.T) {
	mockValidator := new(MockValidator)
	h := NewRateHandler(mockValidator, new(MockStore))
	mockValidator.On("SupportedCodes").Return([]string{"eur", "usd"}).Once()

	rr := httptest.NewRecorder()
	h.GetSupportedCodes(rr, httptest.NewRequest(http.MethodGet, "/api/v1/currencies/supported", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"codes":["eur","usd"]}`, rr.Body.String())
}
