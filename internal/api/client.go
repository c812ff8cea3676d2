// Package api implements the HTTP client for the DailyBot CLI and agent
// endpoints. Every operation is a single round trip with a bounded timeout;
// failures come back as *Error values classified by kind.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dailybot/dailybot-cli/internal/buildinfo"
	"github.com/dailybot/dailybot-cli/internal/debug"
	"github.com/dailybot/dailybot-cli/internal/identity"
)

const (
	defaultTimeout = 30 * time.Second
	// Update submissions fan out to check-in integrations server-side and
	// can take much longer than other calls.
	updateTimeout = 120 * time.Second

	maxErrorBody    = 8 * 1024
	maxResponseBody = 1 << 20
)

// Client talks to one DailyBot API base URL as one identity.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Identity   identity.Identity
}

// New returns a client for the given base URL acting as id. A zero identity
// sends unauthenticated requests, which only the login endpoints accept.
func New(baseURL string, id identity.Identity) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTPClient: &http.Client{},
		Identity:   id,
	}
}

// errorResponse is the error body shape used across the API.
type errorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// do performs one round trip: marshal payload, send, classify failures, and
// decode the JSON response into out when out is non-nil. The timeout bounds
// the whole exchange.
func (c *Client) do(method, path string, query url.Values, payload, out any, timeout time.Duration) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return NewError(KindInvalidPayload, fmt.Sprintf("encoding request: %v", err))
		}
		body = bytes.NewReader(data)
	}

	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return NewError(KindInvalidPayload, fmt.Sprintf("building request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if !c.Identity.Zero() {
		name, value := c.Identity.AuthHeader()
		req.Header.Set(name, value)
	}

	debug.LogKV("api", "request", "method", method, "url", reqURL)
	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		if isTimeout(err) {
			debug.LogKV("api", "request timed out", "method", method, "url", reqURL, "after", time.Since(start).Truncate(time.Millisecond))
			return &Error{Kind: KindTimeout, Detail: fmt.Sprintf("request timed out after %s", timeout)}
		}
		debug.LogKV("api", "request failed", "method", method, "url", reqURL, "err", err)
		return &Error{Kind: KindService, Detail: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()
	debug.LogKV("api", "response", "status", resp.StatusCode, "elapsed", time.Since(start).Truncate(time.Millisecond))

	if resp.StatusCode >= 400 {
		return c.errorFrom(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &Error{Kind: KindService, StatusCode: resp.StatusCode, Detail: fmt.Sprintf("reading response: %v", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindService, StatusCode: resp.StatusCode, Detail: fmt.Sprintf("decoding response: %v", err)}
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return c.HTTPClient
}

// errorFrom classifies a non-2xx response, preferring the server's detail
// or error field for the message. An auth failure on a session identity is
// rewritten to point at re-login; API key failures keep the server's words.
func (c *Client) errorFrom(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	detail := strings.TrimSpace(string(body))
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case strings.TrimSpace(parsed.Detail) != "":
			detail = strings.TrimSpace(parsed.Detail)
		case strings.TrimSpace(parsed.Error) != "":
			detail = strings.TrimSpace(parsed.Error)
		}
	}
	kind := classifyStatus(resp.StatusCode)
	if detail == "" {
		switch kind {
		case KindRateLimited:
			detail = "Rate limited. Try again later."
		case KindService:
			detail = "Service error. Try again later."
		default:
			detail = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
	}
	if kind == KindUnauthenticated && c.Identity.Kind == identity.KindSession {
		detail = "Session expired or invalid. Run 'dailybot login' to re-authenticate."
	}
	return &Error{Kind: kind, StatusCode: resp.StatusCode, Detail: detail}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
