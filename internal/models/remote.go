package models

import "time"

// Payloads exchanged with the server REST API.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ErrorPayload is the body the server returns with 4xx/5xx responses.
type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type InfoSummary struct {
	Version   string `json:"version"`
	Hostname  string `json:"hostname,omitempty"`
	Uptime    int64  `json:"uptime,omitempty"`
	DiskTotal int64  `json:"disk_total,omitempty"`
	DiskFree  int64  `json:"disk_free,omitempty"`
}

type User struct {
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Mount is a storage point with its data and repo quotas.
type Mount struct {
	Name       string `json:"name"`
	Owner      string `json:"owner,omitempty"`
	DataMax    int64  `json:"data_max"`
	DataUsed   int64  `json:"data_used"`
	RepoMax    int64  `json:"repo_max"`
	RepoUsed   int64  `json:"repo_used"`
	Locked     bool   `json:"locked,omitempty"`
	LastBackup *int64 `json:"last_backup,omitempty"`
}

type Snapshot struct {
	ID        string    `json:"id"`
	Mount     string    `json:"mount"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

type ServerJobStatus string

const (
	ServerJobPending    ServerJobStatus = "pending"
	ServerJobRunning    ServerJobStatus = "running"
	ServerJobSuccessful ServerJobStatus = "successful"
	ServerJobFailed     ServerJobStatus = "failed"
)

// ServerJob is a backup, check or restore job running on the server.
type ServerJob struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Mount     string          `json:"mount"`
	Status    ServerJobStatus `json:"status"`
	Progress  float64         `json:"progress"`
	Errors    []string        `json:"errors,omitempty"`
	StartedAt *time.Time      `json:"started_at,omitempty"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"`
}

func (j *ServerJob) IsTerminal() bool {
	return j.Status == ServerJobSuccessful || j.Status == ServerJobFailed
}

type RestoreRequest struct {
	Snapshot string `json:"snapshot"`
	Target   string `json:"target,omitempty"`
}

type Message struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type Subscription struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Target  string `json:"target"`
	Topic   string `json:"topic,omitempty"`
}
