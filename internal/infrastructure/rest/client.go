package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
)

// Client is the generic verb wrapper over the REST data store. Secure
// variants refuse to touch the network unless the request context carries a
// session; a 401 or 403 from the store fires the OnAuthReject hook exactly
// once per response, so session teardown is a wiring concern rather than
// per-call logic.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	onAuthReject func(ctx context.Context, status int)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAuthRejectHook installs the cross-cutting 401/403 handler.
func WithAuthRejectHook(hook func(ctx context.Context, status int)) Option {
	return func(c *Client) { c.onAuthReject = hook }
}

// NewClient creates a client for the store at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request issues method against endpoint. A non-nil body is sent as JSON and
// a non-nil out receives the decoded response. When requireAuth is set and
// the context carries no session, the call fails with ErrUnauthenticated
// before any network I/O.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any, requireAuth bool) error {
	if requireAuth && domain.SessionFromContext(ctx) == nil {
		return domain.ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &domain.HTTPError{StatusCode: resp.StatusCode, Method: method, Endpoint: endpoint}
		if httpErr.IsAuthReject() && c.onAuthReject != nil {
			c.onAuthReject(ctx, resp.StatusCode)
		}
		return httpErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}

// Get issues an unauthenticated GET.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, out, false)
}

// Post issues an unauthenticated POST.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, http.MethodPost, endpoint, body, out, false)
}

// SecureGet issues a GET gated on an authenticated context.
func (c *Client) SecureGet(ctx context.Context, endpoint string, out any) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, out, true)
}

// SecurePost issues a POST gated on an authenticated context.
func (c *Client) SecurePost(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, http.MethodPost, endpoint, body, out, true)
}

// SecurePut issues a PUT gated on an authenticated context. PUT replaces
// the full record in the store.
func (c *Client) SecurePut(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, http.MethodPut, endpoint, body, out, true)
}

// SecurePatch issues a PATCH gated on an authenticated context.
func (c *Client) SecurePatch(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, http.MethodPatch, endpoint, body, out, true)
}

// SecureDelete issues a DELETE gated on an authenticated context.
func (c *Client) SecureDelete(ctx context.Context, endpoint string) error {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, nil, true)
}

// LogAuthReject is the default OnAuthReject hook used when no session
// teardown is wired yet.
func LogAuthReject(_ context.Context, status int) {
	log.Printf("STORE_AUTH_REJECT: status=%d", status)
}
