// Where: internal/infra/ipecho/ipecho.go
// What: Public address lookup through a plain-text IP-echo endpoint.
// Why: A page must still render when the echo service is down, so failures degrade to a placeholder.
package ipecho

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Unavailable is shown when the echo service cannot be reached in time.
const Unavailable = "Unable to retrieve"

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 5 * time.Second

// Client fetches the caller's public address.
type Client struct {
	url    string
	client *http.Client
	// OnFallback is called with the cause whenever Unavailable is returned.
	OnFallback func(error)
}

// New returns a Client for url with the given timeout (DefaultTimeout when zero).
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// PublicAddress returns the response body unmodified, whatever the status
// code. Transport errors, timeouts and read errors yield Unavailable.
func (c *Client) PublicAddress(ctx context.Context) string {
	body, err := c.fetch(ctx)
	if err != nil {
		if c.OnFallback != nil {
			c.OnFallback(err)
		}
		return Unavailable
	}
	return body
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("ip echo client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create ip echo request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ip echo request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ip echo response: %w", err)
	}
	return string(payload), nil
}
