package models

import (
	"database/sql/driver"
	"encoding/json"
)

// TransferStats is the last statistics record observed for a job. Field
// names follow the mover's JSON log.
type TransferStats struct {
	Bytes               int64   `json:"bytes"`
	Speed               float64 `json:"speed"`
	Checks              int64   `json:"checks"`
	Deletes             int64   `json:"deletes"`
	Renames             int64   `json:"renames"`
	Listed              int64   `json:"listed"`
	RetryError          bool    `json:"retryError"`
	DeletedDirs         int64   `json:"deletedDirs"`
	ServerSideCopies    int64   `json:"serverSideCopies"`
	ServerSideCopyBytes int64   `json:"serverSideCopyBytes"`
	ServerSideMoveBytes int64   `json:"serverSideMoveBytes"`
	ServerSideMoves     int64   `json:"serverSideMoves"`
	TotalBytes          int64   `json:"totalBytes"`
	TotalChecks         int64   `json:"totalChecks"`
	TotalTransfers      int64   `json:"totalTransfers"`
	Transfers           int64   `json:"transfers"`
	Errors              int64   `json:"errors"`
	FatalError          bool    `json:"fatalError"`
	LastError           string  `json:"lastError,omitempty"`

	// Set while the post-sync server backup is being tracked.
	OnBackup       bool    `json:"onBackup,omitempty"`
	BackupProgress float64 `json:"backupProgress,omitempty"`
}

// Percentage returns bytes done over total bytes, 0 when the total is unknown.
func (s *TransferStats) Percentage() float64 {
	if s.TotalBytes <= 0 {
		return 0
	}
	return float64(s.Bytes) / float64(s.TotalBytes) * 100
}

func (s TransferStats) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *TransferStats) Scan(value interface{}) error {
	return scanJSON(value, s, "TransferStats")
}
