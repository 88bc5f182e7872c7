package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"neptis/internal/errs"
	"neptis/internal/models"
)

// Client talks to a running daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the daemon listening on addr (host:port).
func NewClient(addr string) *Client {
	return &Client{
		baseURL:    "http://" + strings.TrimPrefix(addr, "http://"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Ping(ctx context.Context) (*PingResponse, error) {
	var out PingResponse
	if err := c.do(ctx, http.MethodGet, "/ping", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListJobs(ctx context.Context) ([]*models.TransferJob, error) {
	var out []*models.TransferJob
	if err := c.do(ctx, http.MethodGet, "/jobs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*models.TransferJob, error) {
	var out models.TransferJob
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/jobs/"+url.PathEscape(id)+"/cancel", nil)
}

func (c *Client) StartScheduleNow(ctx context.Context, serverName, scheduleName string) error {
	endpoint := fmt.Sprintf("/schedules/%s/%s/start", url.PathEscape(serverName), url.PathEscape(scheduleName))
	return c.do(ctx, http.MethodPost, endpoint, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, out interface{}) error {
	op := "ipc." + strings.ToLower(method)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+endpoint, nil)
	if err != nil {
		return errs.E(errs.Configuration, op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errs.E(errs.Cancelled, op, ctx.Err())
		}
		return errs.E(errs.Unreachable, op, fmt.Errorf("background service is not running: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.E(errs.Transport, op, err)
	}

	var envelope APIResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errs.E(errs.ParseError, op, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err))
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		msg := envelope.Error
		if envelope.Message != "" {
			msg += ": " + envelope.Message
		}
		return errs.Errorf(kindFor(resp.StatusCode), op, "%s", msg)
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errs.E(errs.ParseError, op, err)
	}
	return nil
}

func kindFor(status int) errs.Kind {
	switch status {
	case http.StatusNotFound:
		return errs.NotFound
	case http.StatusConflict:
		return errs.Conflict
	case http.StatusGatewayTimeout:
		return errs.Timeout
	case http.StatusBadRequest:
		return errs.Configuration
	}
	return errs.Transport
}
