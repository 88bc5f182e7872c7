package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"neptis/internal/models"
)

func pathName(name string) string {
	return "/" + url.PathEscape(name)
}

// Login authenticates and stores the bearer token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.makeRequest(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// GetInfo doubles as the reachability probe.
func (c *Client) GetInfo(ctx context.Context) (*models.InfoSummary, error) {
	var info models.InfoSummary
	if err := c.makeRequest(ctx, http.MethodGet, "/infos/summary", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.makeRequest(ctx, http.MethodGet, "/users", nil, nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := c.makeRequest(ctx, http.MethodGet, "/users"+pathName(name), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, user models.User) error {
	return c.makeRequest(ctx, http.MethodPost, "/users", nil, user, nil)
}

func (c *Client) UpdateUser(ctx context.Context, name string, user models.User) error {
	return c.makeRequest(ctx, http.MethodPut, "/users"+pathName(name), nil, user, nil)
}

func (c *Client) DeleteUser(ctx context.Context, name string) error {
	return c.makeRequest(ctx, http.MethodDelete, "/users"+pathName(name), nil, nil, nil)
}

// Mounts

func (c *Client) ListMounts(ctx context.Context) ([]models.Mount, error) {
	var mounts []models.Mount
	err := c.makeRequest(ctx, http.MethodGet, "/mounts", nil, nil, &mounts)
	return mounts, err
}

func (c *Client) GetMount(ctx context.Context, name string) (*models.Mount, error) {
	var mount models.Mount
	if err := c.makeRequest(ctx, http.MethodGet, "/mounts"+pathName(name), nil, nil, &mount); err != nil {
		return nil, err
	}
	return &mount, nil
}

func (c *Client) CreateMount(ctx context.Context, mount models.Mount) error {
	return c.makeRequest(ctx, http.MethodPost, "/mounts", nil, mount, nil)
}

func (c *Client) UpdateMount(ctx context.Context, name string, mount models.Mount) error {
	return c.makeRequest(ctx, http.MethodPut, "/mounts"+pathName(name), nil, mount, nil)
}

func (c *Client) DeleteMount(ctx context.Context, name string) error {
	return c.makeRequest(ctx, http.MethodDelete, "/mounts"+pathName(name), nil, nil, nil)
}

// Snapshots

func (c *Client) ListSnapshots(ctx context.Context, mount string) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := c.makeRequest(ctx, http.MethodGet, "/mounts"+pathName(mount)+"/snapshots", nil, nil, &snapshots)
	return snapshots, err
}

func (c *Client) CreateSnapshot(ctx context.Context, mount string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := c.makeRequest(ctx, http.MethodPost, "/mounts"+pathName(mount)+"/snapshots", nil, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Server jobs

func (c *Client) StartBackup(ctx context.Context, mount string) (*models.ServerJob, error) {
	return c.startJob(ctx, mount, "backup", nil)
}

func (c *Client) StartCheck(ctx context.Context, mount string) (*models.ServerJob, error) {
	return c.startJob(ctx, mount, "check", nil)
}

func (c *Client) StartRestore(ctx context.Context, mount string, req models.RestoreRequest) (*models.ServerJob, error) {
	return c.startJob(ctx, mount, "restore", req)
}

func (c *Client) startJob(ctx context.Context, mount, kind string, body interface{}) (*models.ServerJob, error) {
	var job models.ServerJob
	if err := c.makeRequest(ctx, http.MethodPost, "/mounts"+pathName(mount)+"/"+kind, nil, body, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) ListJobs(ctx context.Context) ([]models.ServerJob, error) {
	var jobs []models.ServerJob
	err := c.makeRequest(ctx, http.MethodGet, "/jobs", nil, nil, &jobs)
	return jobs, err
}

func (c *Client) GetJob(ctx context.Context, id string) (*models.ServerJob, error) {
	var job models.ServerJob
	if err := c.makeRequest(ctx, http.MethodGet, "/jobs"+pathName(id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Messages and subscriptions

func (c *Client) ListMessages(ctx context.Context, unreadOnly bool) ([]models.Message, error) {
	var messages []models.Message
	query := url.Values{"unread_only": {strconv.FormatBool(unreadOnly)}}
	err := c.makeRequest(ctx, http.MethodGet, "/messages", query, nil, &messages)
	return messages, err
}

func (c *Client) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := c.makeRequest(ctx, http.MethodGet, "/subscriptions", nil, nil, &subs)
	return subs, err
}

// Filesystem

func (c *Client) Browse(ctx context.Context, path string) ([]models.Node, error) {
	var nodes []models.Node
	err := c.makeRequest(ctx, http.MethodGet, "/files/browse", url.Values{"path": {path}}, nil, &nodes)
	return nodes, err
}

// Dump returns up to size bytes of path starting at offset. A negative size
// reads to the end of the file.
func (c *Client) Dump(ctx context.Context, path string, offset, size int64) ([]byte, error) {
	query := url.Values{
		"path":   {path},
		"offset": {strconv.FormatInt(offset, 10)},
	}
	if size >= 0 {
		query.Set("size", strconv.FormatInt(size, 10))
	}
	return c.send(ctx, request{method: http.MethodGet, endpoint: "/files/dump", query: query})
}

func (c *Client) CreateFile(ctx context.Context, path string, isDir bool) error {
	query := url.Values{"path": {path}, "dir": {strconv.FormatBool(isDir)}}
	return c.makeRequest(ctx, http.MethodPost, "/files", query, nil, nil)
}

func (c *Client) WriteFile(ctx context.Context, patch models.FilePatch) error {
	return c.makeRequest(ctx, http.MethodPut, "/files", nil, patch, nil)
}

func (c *Client) DeleteFile(ctx context.Context, path string) error {
	return c.makeRequest(ctx, http.MethodDelete, "/files", url.Values{"path": {path}}, nil, nil)
}
