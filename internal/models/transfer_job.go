package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type JobState string

const (
	JobStatePending    JobState = "pending"
	JobStateRunning    JobState = "running"
	JobStateSuccessful JobState = "successful"
	JobStateFailed     JobState = "failed"
)

// CancelledMessage is the fatal error recorded on a job stopped by the user.
const CancelledMessage = "Operation cancelled"

// TransferJob is one run of a transfer action. Its state is derived from
// the start and end dates and the fatal error list.
type TransferJob struct {
	ID           string              `json:"id" db:"id"`
	ServerName   string              `json:"server_name" db:"server_name"`
	ScheduleName string              `json:"schedule_name,omitempty" db:"schedule_name"`
	ActionName   string              `json:"action_name,omitempty" db:"action_name"`
	RemoteFolder string              `json:"remote_folder" db:"remote_folder"`
	LocalFolder  string              `json:"local_folder" db:"local_folder"`
	Credentials  TransferCredentials `json:"credentials" db:"credentials"`
	StartDate    *time.Time          `json:"start_date,omitempty" db:"start_date"`
	EndDate      *time.Time          `json:"end_date,omitempty" db:"end_date"`
	LastUpdated  time.Time           `json:"last_updated" db:"last_updated"`
	FatalErrors  StringList          `json:"fatal_errors" db:"fatal_errors"`
	Warnings     StringList          `json:"warnings" db:"warnings"`
	LastStats    *TransferStats      `json:"last_stats,omitempty" db:"last_stats"`
	InitHash     string              `json:"init_hash,omitempty" db:"init_hash"`
	PostBackup   bool                `json:"post_backup" db:"post_backup"`
}

// TransferCredentials is the credential snapshot a job runs with.
type TransferCredentials struct {
	ShareUser     string `json:"share_user"`
	SharePassword string `json:"share_password,omitempty"`
	UserPassword  string `json:"user_password,omitempty"`
}

func (c TransferCredentials) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *TransferCredentials) Scan(value interface{}) error {
	return scanJSON(value, c, "TransferCredentials")
}

// State derives the lifecycle state from the job's fields.
func (j *TransferJob) State() JobState {
	switch {
	case j.EndDate != nil && len(j.FatalErrors) > 0:
		return JobStateFailed
	case j.EndDate != nil:
		return JobStateSuccessful
	case j.StartDate != nil:
		return JobStateRunning
	}
	return JobStatePending
}

func (j *TransferJob) IsRunning() bool {
	return j.State() == JobStateRunning
}

// IsTerminal reports whether the job can no longer run.
func (j *TransferJob) IsTerminal() bool {
	return j.EndDate != nil
}

// LastRan returns the later of the end and start dates, or nil when neither is set.
func (j *TransferJob) LastRan() *time.Time {
	switch {
	case j.EndDate != nil && j.StartDate != nil:
		if j.EndDate.After(*j.StartDate) {
			return j.EndDate
		}
		return j.StartDate
	case j.EndDate != nil:
		return j.EndDate
	}
	return j.StartDate
}

// Touch bumps last_updated without letting it move backwards.
func (j *TransferJob) Touch(now time.Time) {
	if now.After(j.LastUpdated) {
		j.LastUpdated = now
	}
}

func (j *TransferJob) MarkStarted(now time.Time) {
	j.StartDate = &now
	j.Touch(now)
}

func (j *TransferJob) AddWarning(msg string, now time.Time) {
	j.Warnings = append(j.Warnings, msg)
	j.Touch(now)
}

// AddFatal records an error without finishing the job.
func (j *TransferJob) AddFatal(msg string, now time.Time) {
	j.FatalErrors = append(j.FatalErrors, msg)
	j.Touch(now)
}

// Fail records msg and finishes the job if it is still runnable.
func (j *TransferJob) Fail(msg string, now time.Time) {
	j.AddFatal(msg, now)
	j.Finish(now)
}

// Finish sets the end date. A job that never started gets start = end.
func (j *TransferJob) Finish(now time.Time) {
	if j.EndDate != nil {
		return
	}
	if j.StartDate == nil {
		j.StartDate = &now
	} else if now.Before(*j.StartDate) {
		now = *j.StartDate
	}
	j.EndDate = &now
	j.Touch(now)
}

func (j *TransferJob) UpdateStats(stats TransferStats, now time.Time) {
	j.LastStats = &stats
	j.Touch(now)
}

// Matches reports whether the job ran the given triple.
func (j *TransferJob) Matches(server, schedule, action string) bool {
	return j.ServerName == server && j.ScheduleName == schedule && j.ActionName == action
}

// Clone returns a deep copy safe to hand to another goroutine.
func (j *TransferJob) Clone() *TransferJob {
	c := *j
	if j.StartDate != nil {
		t := *j.StartDate
		c.StartDate = &t
	}
	if j.EndDate != nil {
		t := *j.EndDate
		c.EndDate = &t
	}
	if j.LastStats != nil {
		s := *j.LastStats
		c.LastStats = &s
	}
	c.FatalErrors = append(StringList(nil), j.FatalErrors...)
	c.Warnings = append(StringList(nil), j.Warnings...)
	return &c
}

// Redacted returns a copy with passwords removed, for display outside the daemon.
func (j *TransferJob) Redacted() *TransferJob {
	c := j.Clone()
	c.Credentials.SharePassword = ""
	c.Credentials.UserPassword = ""
	return c
}

// JobFilter represents filtering options for transfer job queries
type JobFilter struct {
	ServerName   string `json:"server_name,omitempty"`
	ScheduleName string `json:"schedule_name,omitempty"`
	ActionName   string `json:"action_name,omitempty"`
	LocalFolder  string `json:"local_folder,omitempty"`
	Unfinished   bool   `json:"unfinished,omitempty"`
	Successful   bool   `json:"successful,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// StringList is an ordered list of strings stored as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l, "StringList")
}

func scanJSON(value interface{}, dst interface{}, name string) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into %s", value, name)
	}
	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, dst)
}
