package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fxconvert/internal/domain"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	dateField      = "date"
)

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

// GetExchangeRates fetches <baseURL>/<base>.json. The response carries the
// rates under a key equal to the requested code, next to a "date" field.
func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context, base string) (domain.RateTable, error) {
	if !isValidCode(base) {
		return domain.RateTable{}, fetchError(domain.FetchInvalidRequest, base, fmt.Errorf("malformed currency code %q", base))
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.RateTable{}, fetchError(domain.FetchInvalidRequest, base, fmt.Errorf("failed to parse base URL: %w", err))
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + base + ".json"

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RateTable{}, fetchError(domain.FetchInvalidRequest, base, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return domain.RateTable{}, fetchError(domain.FetchTimeout, base, fmt.Errorf("no response within %s: %w", c.timeout, err))
		}
		return domain.RateTable{}, fetchError(domain.FetchNetwork, base, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.RateTable{}, fetchError(domain.FetchDecode, base, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status))
	}

	table, err := decodeRates(resp.Body, base)
	if err != nil {
		if isTimeout(err) {
			return domain.RateTable{}, fetchError(domain.FetchTimeout, base, fmt.Errorf("body not received within %s: %w", c.timeout, err))
		}
		return domain.RateTable{}, fetchError(domain.FetchDecode, base, err)
	}
	return table, nil
}

func decodeRates(r io.Reader, base string) (domain.RateTable, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode response: %w", err)
	}

	rawDate, ok := body[dateField]
	if !ok {
		return domain.RateTable{}, fmt.Errorf("response has no %q field", dateField)
	}
	var date string
	if err := json.Unmarshal(rawDate, &date); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode %q field: %w", dateField, err)
	}

	rawRates, ok := body[base]
	if !ok {
		return domain.RateTable{}, fmt.Errorf("response has no rates for %q", base)
	}
	var rates map[string]float64
	if err := json.Unmarshal(rawRates, &rates); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode rates for %q: %w", base, err)
	}
	if rates == nil {
		return domain.RateTable{}, fmt.Errorf("rates for %q are not an object", base)
	}

	return domain.RateTable{Base: base, Date: date, Rates: rates}, nil
}

func fetchError(kind domain.FetchErrorKind, base string, err error) error {
	return &domain.FetchError{Kind: kind, Base: base, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isValidCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string, timeout time.Duration) *ExchangeRateClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, timeout: timeout}
}
