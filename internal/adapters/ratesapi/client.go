package ratesapi

import (
	"context"
	"net/http"
	"net/url"
)

// Client probes the rates provider host. Any HTTP answer, whatever its status,
// means the network path is up.
type Client struct {
	http    *http.Client
	baseURL string
}

func (c *Client) Reachable(ctx context.Context) bool {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Host == "" {
		return false
	}

	// Probe the host root, not the rates path
	u.Path = "/"
	u.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: baseURL}
}
