package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"seat-status-probe/internal/auth"
)

// statusSuccess is the envelope's application-level success sentinel.
const statusSuccess = 1

// envelope models the outer wrapper every API response carries.
type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Client is the single point of contact with the seat API. Any failure is
// fatal for the run: no retries, no backoff.
type Client struct {
	session *auth.Session
	limiter *rate.Limiter
}

// New wraps a logged-in session. limit spaces outgoing requests so the
// traversal does not hammer the tunnel; pass rate.Inf to disable pacing.
func New(session *auth.Session, limit rate.Limit, burst int) *Client {
	return &Client{
		session: session,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Fetch issues one GET with the session's cookies and headers, following
// redirects, and returns the envelope's data payload.
func (c *Client) Fetch(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for request slot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	for key, values := range c.session.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.session.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ProtocolError{URL: rawURL, Err: err}
	}
	if env.Status != statusSuccess {
		return nil, &ProtocolError{URL: rawURL, Status: env.Status}
	}

	return env.Data, nil
}
