package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func requireFetchKind(t *testing.T, err error, kind domain.FetchErrorKind) *domain.FetchError {
	t.Helper()
	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr), "expected *domain.FetchError, got %T", err)
	require.Equal(t, kind, fetchErr.Kind)
	return fetchErr
}

func TestExchangeRateClient_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
            "date": "2024-01-01",
            "usd": {"eur": 0.9, "gel": 2.7}
        }`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v1/currencies/", time.Second)

	table, err := c.GetExchangeRates(context.Background(), "usd")
	require.NoError(t, err)
	require.Equal(t, "/v1/currencies/usd.json", gotPath)
	require.Equal(t, "usd", table.Base)
	require.Equal(t, "2024-01-01", table.Date)
	require.Len(t, table.Rates, 2)
	require.InDelta(t, 0.9, table.Rates["eur"], 1e-9)
	require.InDelta(t, 2.7, table.Rates["gel"], 1e-9)
}

func TestExchangeRateClient_IgnoresForeignKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"date": "2024-01-01", "note": "cached", "eur": {"usd": 1.1}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL, time.Second)

	table, err := c.GetExchangeRates(context.Background(), "eur")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"usd": 1.1}, table.Rates)
}

func TestExchangeRateClient_DecodeErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "invalid json", body: "{", wantMsg: "failed to decode response"},
		{name: "missing date", body: `{"usd": {"eur": 0.9}}`, wantMsg: `response has no "date" field`},
		{name: "date not a string", body: `{"date": 1, "usd": {"eur": 0.9}}`, wantMsg: `failed to decode "date" field`},
		{name: "missing base key", body: `{"date": "2024-01-01", "eur": {"usd": 1.1}}`, wantMsg: `response has no rates for "usd"`},
		{name: "rates not numbers", body: `{"date": "2024-01-01", "usd": {"eur": "0.9"}}`, wantMsg: `failed to decode rates for "usd"`},
		{name: "rates null", body: `{"date": "2024-01-01", "usd": null}`, wantMsg: `rates for "usd" are not an object`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			c := NewExchangeRateClient(srv.Client(), srv.URL, time.Second)

			_, err := c.GetExchangeRates(context.Background(), "usd")
			require.Error(t, err)
			requireFetchKind(t, err, domain.FetchDecode)
			require.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestExchangeRateClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL, time.Second)

	_, err := c.GetExchangeRates(context.Background(), "usd")
	requireFetchKind(t, err, domain.FetchDecode)
	require.ErrorContains(t, err, "unexpected status code 503")
	require.ErrorContains(t, err, `"usd"`)
}

func TestExchangeRateClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL, 50*time.Millisecond)

	_, err := c.GetExchangeRates(context.Background(), "usd")
	requireFetchKind(t, err, domain.FetchTimeout)
}

func TestExchangeRateClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := NewExchangeRateClient(&http.Client{}, baseURL, time.Second)

	_, err := c.GetExchangeRates(context.Background(), "usd")
	requireFetchKind(t, err, domain.FetchNetwork)
	require.ErrorContains(t, err, "failed to execute request")
}

func TestExchangeRateClient_InvalidRequest(t *testing.T) {
	c := NewExchangeRateClient(&http.Client{}, "http://example.com", time.Second)

	for _, code := range []string{"", "USD", "us d", "../eur"} {
		_, err := c.GetExchangeRates(context.Background(), code)
		requireFetchKind(t, err, domain.FetchInvalidRequest)
	}
}

func TestExchangeRateClient_BaseURLParseError(t *testing.T) {
	c := NewExchangeRateClient(&http.Client{}, "http://::1]", time.Second)

	_, err := c.GetExchangeRates(context.Background(), "usd")
	requireFetchKind(t, err, domain.FetchInvalidRequest)
	require.ErrorContains(t, err, "failed to parse base URL")
}

func TestNewExchangeRateClient_DefaultsTimeout(t *testing.T) {
	c := NewExchangeRateClient(&http.Client{}, "http://example.com", 0)
	require.Equal(t, DefaultTimeout, c.timeout)
}
