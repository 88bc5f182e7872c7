package interfaces

import (
	"context"
	"time"

	"neptis/internal/models"
)

// FileAPI is the server filesystem surface the virtual filesystem projects.
type FileAPI interface {
	Browse(ctx context.Context, path string) ([]models.Node, error)
	Dump(ctx context.Context, path string, offset, size int64) ([]byte, error)
	CreateFile(ctx context.Context, path string, isDir bool) error
	WriteFile(ctx context.Context, patch models.FilePatch) error
	DeleteFile(ctx context.Context, path string) error
}

// ServerAPI is the part of the REST client used by the background daemon
type ServerAPI interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	GetInfo(ctx context.Context) (*models.InfoSummary, error)
	StartBackup(ctx context.Context, mount string) (*models.ServerJob, error)
	GetJob(ctx context.Context, id string) (*models.ServerJob, error)
	ListMessages(ctx context.Context, unreadOnly bool) ([]models.Message, error)
}

// ClientFactory builds a fresh API client for a profile.
type ClientFactory func(p *models.Profile) (ServerAPI, error)

// Waker asks a profile's out-of-band endpoint to power the server on
type Waker interface {
	Wake(ctx context.Context) error
}

// WakerFactory returns nil, nil when the profile has no wake endpoint.
type WakerFactory func(p *models.Profile) (Waker, error)

// GateDecision represents whether an operation can proceed
type GateDecision struct {
	Allowed bool                   `json:"allowed"`
	Reason  string                 `json:"reason"`
	Details map[string]interface{} `json:"details,omitempty"`

	// Warnings do not block the operation but belong on the job.
	Warnings []string `json:"warnings,omitempty"`
}

// Gatekeeper decides whether a transfer may start
type Gatekeeper interface {
	CheckLocalFolder(path string) GateDecision
	CheckReachable(ctx context.Context, api ServerAPI, waker Waker) GateDecision
}

// Fingerprinter computes a content fingerprint of a local folder
type Fingerprinter interface {
	Fingerprint(ctx context.Context, root string) (string, error)
}

// Mover drives the external transfer tool
type Mover interface {
	Install(ctx context.Context) (string, error)
	Sync(ctx context.Context, req models.SyncRequest) (MoverProcess, error)
	CleanTemp() (int, error)
}

// MoverProcess is one running sync. Events is closed once output ends;
// Done is closed once the process has exited.
type MoverProcess interface {
	Events() <-chan models.MoverEvent
	Done() <-chan struct{}
	Err() error
	Kill() error
}

// JobStore is the persistence the supervisor needs from the local store
type JobStore interface {
	GetProfile(ctx context.Context, serverName string) (*models.Profile, error)
	LoadSchedules(ctx context.Context) ([]models.ScheduleWithActions, error)
	GetJob(ctx context.Context, id string) (*models.TransferJob, error)
	ListJobs(ctx context.Context, filter models.JobFilter) ([]*models.TransferJob, error)
	SaveJob(ctx context.Context, job *models.TransferJob) error
	SaveJobs(ctx context.Context, jobs []*models.TransferJob) error
	FailUnfinishedJobs(ctx context.Context, msg string) (int, error)
	PruneJobs(ctx context.Context, cutoff time.Time) (int64, error)
}

// ProfileStore lists the profiles the message watcher polls
type ProfileStore interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

// Supervisor is what the local IPC endpoint exposes
type Supervisor interface {
	ListJobs(ctx context.Context) ([]*models.TransferJob, error)
	GetJob(ctx context.Context, id string) (*models.TransferJob, error)
	CancelJob(ctx context.Context, id string) error
	StartScheduleNow(serverName, scheduleName string) error
}

// Notifier surfaces events on the user's desktop
type Notifier interface {
	IsEnabled() bool
	NotifyMessage(serverName string, msg models.Message) error
	NotifyJobFailed(job *models.TransferJob) error
	NotifyJobCompleted(job *models.TransferJob) error
}
