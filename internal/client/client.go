// Package client is the typed HTTP client for the server REST API. When the
// profile carries an envelope secret every call is routed through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"neptis/internal/errs"
	"neptis/internal/models"
	"neptis/internal/secret"
)

// Client is safe for concurrent use. No lock is held across a request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	codec      *secret.Codec
	now        func() time.Time

	mu    sync.RWMutex
	token string
}

// New creates a client for baseURL. codec may be nil for a plaintext channel.
// The underlying http.Client has no timeout; callers bound calls with ctx.
func New(baseURL string, codec *secret.Codec) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		codec:      codec,
		now:        time.Now,
	}
}

// NewFromProfile builds a client for a stored profile.
func NewFromProfile(p *models.Profile) (*Client, error) {
	if _, err := url.ParseRequestURI(p.Endpoint); err != nil {
		return nil, errs.E(errs.Configuration, "client.new", fmt.Errorf("invalid endpoint %q: %w", p.Endpoint, err))
	}

	var codec *secret.Codec
	if p.Secret != "" {
		c, err := secret.Parse(p.Secret)
		if err != nil {
			return nil, err
		}
		codec = c
	}
	return New(p.BaseURL(), codec), nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// Encrypted reports whether calls go through the envelope.
func (c *Client) Encrypted() bool { return c.codec != nil }

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Status int
	Body   string
	Typed  *models.ErrorPayload
}

func (e *APIError) Error() string {
	if e.Typed != nil && e.Typed.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Typed.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// Kind maps the status code to an error kind.
func (e *APIError) Kind() errs.Kind {
	switch e.Status {
	case http.StatusUnauthorized:
		return errs.Unauthorized
	case http.StatusForbidden:
		return errs.Denied
	case http.StatusNotFound:
		return errs.NotFound
	case http.StatusConflict:
		return errs.Conflict
	}
	return errs.Transport
}

func (e *APIError) Unwrap() error { return e.Kind() }

// request describes one call before it is put on the wire.
type request struct {
	method   string
	endpoint string
	query    url.Values
	body     []byte
	ctype    string
}

func (r *request) pathAndQuery() string {
	p := "/api" + r.endpoint
	if len(r.query) > 0 {
		p += "?" + r.query.Encode()
	}
	return p
}

// makeRequest sends a JSON call and decodes a 2xx body into response.
func (c *Client) makeRequest(ctx context.Context, method, endpoint string, query url.Values, body, response interface{}) error {
	req := request{method: method, endpoint: endpoint, query: query}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		req.body = data
		req.ctype = "application/json"
	}

	data, err := c.send(ctx, req)
	if err != nil {
		return err
	}

	if response != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, response); err != nil {
			return errs.E(errs.ParseError, method+" "+endpoint, err)
		}
	}
	return nil
}

// send performs the call, retrying at most once when the request straddled
// an envelope key rollover.
func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	data, straddled, err := c.roundTrip(ctx, req)
	if err == nil || !straddled || !isEnvelopeFailure(err) {
		return data, err
	}

	slog.Debug("retrying request across key rollover", "method", req.method, "endpoint", req.endpoint)
	data, _, err = c.roundTrip(ctx, req)
	return data, err
}

func isEnvelopeFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity) && apiErr.Typed == nil
	}
	return errors.Is(err, errEnvelope)
}

var errEnvelope = errors.New("envelope")

func sameMinute(a, b time.Time) bool {
	return a.UTC().Truncate(time.Minute).Equal(b.UTC().Truncate(time.Minute))
}

func (c *Client) roundTrip(ctx context.Context, req request) ([]byte, bool, error) {
	sent := c.now()

	target := req.pathAndQuery()
	body := req.body
	if c.codec != nil {
		var err error
		target, body, err = c.codec.EncodeRequest(target, req.body, sent)
		if err != nil {
			return nil, false, err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+target, reader)
	if err != nil {
		return nil, false, errs.E(errs.Configuration, "client.request", err)
	}
	if req.ctype != "" {
		httpReq.Header.Set("Content-Type", req.ctype)
	}
	if token := c.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, errs.E(errs.Cancelled, req.method+" "+req.endpoint, ctx.Err())
		}
		return nil, false, errs.E(errs.Transport, req.method+" "+req.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, errs.E(errs.Transport, req.method+" "+req.endpoint, err)
	}

	received := c.now()
	straddled := c.codec != nil && !sameMinute(sent, received)

	payload, decodeErr := c.decode(raw, sent, received)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		text := raw
		if decodeErr == nil {
			text = payload
		}
		apiErr.Body = string(text)
		var typed models.ErrorPayload
		if json.Unmarshal(text, &typed) == nil && typed.Message != "" {
			apiErr.Typed = &typed
		}
		return nil, straddled, apiErr
	}

	if decodeErr != nil {
		return nil, straddled, errs.E(errs.Transport, req.method+" "+req.endpoint, fmt.Errorf("%w: %v", errEnvelope, decodeErr))
	}
	return payload, straddled, nil
}

// decode opens an envelope body with the key of the receive minute, falling
// back to the key of the send minute.
func (c *Client) decode(raw []byte, sent, received time.Time) ([]byte, error) {
	if c.codec == nil {
		return raw, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return raw, nil
	}
	plain, err := c.codec.DecodeResponse(raw, received)
	if err == nil || sameMinute(sent, received) {
		return plain, err
	}
	return c.codec.DecodeResponse(raw, sent)
}
