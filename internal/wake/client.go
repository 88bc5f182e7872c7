// Package wake sends authenticated power-on pulses to a server's
// out-of-band wake endpoint.
package wake

import (
	"context"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"neptis/internal/errs"
)

const (
	tokenPeriod     = 15
	defaultAttempts = 3
	defaultDelay    = 2 * time.Second
)

// Client sends wake pulses to one endpoint.
type Client struct {
	baseURL    string
	keyA, keyB []byte
	httpClient *http.Client

	attempts int
	delay    time.Duration
	now      func() time.Time
}

// NewClient parses a "<b64 Ka>;<b64 Kb>" seed.
func NewClient(endpoint, seed string) (*Client, error) {
	if endpoint == "" {
		return nil, errs.Errorf(errs.Configuration, "wake.new", "empty endpoint")
	}
	parts := strings.Split(strings.TrimSpace(seed), ";")
	if len(parts) != 2 {
		return nil, errs.Errorf(errs.Configuration, "wake.new", "expected 2 seed parts, got %d", len(parts))
	}
	ka, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errs.E(errs.Configuration, "wake.new", err)
	}
	kb, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errs.E(errs.Configuration, "wake.new", err)
	}

	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		keyA:    ka,
		keyB:    kb,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		attempts: defaultAttempts,
		delay:    defaultDelay,
		now:      time.Now,
	}, nil
}

// Token returns the wake token valid at t: the sum of the two six digit codes.
func (c *Client) Token(t time.Time) (uint64, error) {
	var total uint64
	for _, key := range [][]byte{c.keyA, c.keyB} {
		code, err := totp.GenerateCodeCustom(base32.StdEncoding.EncodeToString(key), t.UTC(), totp.ValidateOpts{
			Period:    tokenPeriod,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		if err != nil {
			return 0, errs.E(errs.Configuration, "wake.token", err)
		}
		n, err := strconv.ParseUint(code, 10, 64)
		if err != nil {
			return 0, errs.E(errs.Configuration, "wake.token", err)
		}
		total += n
	}
	return total, nil
}

// Pulse sends a single wake request.
func (c *Client) Pulse(ctx context.Context) error {
	token, err := c.Token(c.now())
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/start", nil)
	if err != nil {
		return errs.E(errs.Configuration, "wake.pulse", err)
	}
	req.Header.Set("Authorization", "Bearer "+strconv.FormatUint(token, 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.E(errs.Transport, "wake.pulse", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errs.E(errs.Transport, "wake.pulse", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body)))
	}
	return nil
}

// Wake sends pulses until one is accepted, up to three attempts two seconds
// apart. Success means the endpoint took the pulse, not that the server is up.
func (c *Client) Wake(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		lastErr = c.Pulse(ctx)
		if lastErr == nil {
			slog.Info("wake pulse accepted", "endpoint", c.baseURL, "attempt", attempt)
			return nil
		}
		slog.Warn("wake pulse failed", "endpoint", c.baseURL, "attempt", attempt, "error", lastErr)

		if attempt == c.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return errs.E(errs.Cancelled, "wake", ctx.Err())
		case <-time.After(c.delay):
		}
	}
	return errs.E(errs.Unreachable, "wake", lastErr)
}
