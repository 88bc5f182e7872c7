package models

import "time"

// Schedule groups transfer actions under a cron expression and shared credentials.
type Schedule struct {
	ServerName     string        `json:"server_name" db:"server_name"`
	ScheduleName   string        `json:"schedule_name" db:"schedule_name"`
	Cron           string        `json:"cron" db:"cron"`
	ShareUser      string        `json:"share_user" db:"share_user"`
	SharePassword  string        `json:"share_password" db:"share_password"`
	UserPassword   string        `json:"user_password,omitempty" db:"user_password"`
	BackupOnFinish bool          `json:"backup_on_finish" db:"backup_on_finish"`
	LastUpdated    time.Time     `json:"last_updated" db:"last_updated"`
	MoverOptions   *MoverOptions `json:"mover_options,omitempty" db:"mover_options"`
}

// ScheduleKey identifies a schedule.
type ScheduleKey struct {
	ServerName   string `json:"server_name"`
	ScheduleName string `json:"schedule_name"`
}

func (s *Schedule) Key() ScheduleKey {
	return ScheduleKey{ServerName: s.ServerName, ScheduleName: s.ScheduleName}
}

// WantsBackup reports whether a server-side backup should follow a clean sync.
func (s *Schedule) WantsBackup() bool {
	return s.BackupOnFinish && s.UserPassword != ""
}

// Action is one local folder to remote folder pairing inside a schedule.
type Action struct {
	ServerName   string `json:"server_name" db:"server_name"`
	ScheduleName string `json:"schedule_name" db:"schedule_name"`
	ActionName   string `json:"action_name" db:"action_name"`
	RemoteFolder string `json:"remote_folder" db:"remote_folder"`
	LocalFolder  string `json:"local_folder" db:"local_folder"`
	Enabled      bool   `json:"enabled" db:"enabled"`
}

func (a *Action) ScheduleKey() ScheduleKey {
	return ScheduleKey{ServerName: a.ServerName, ScheduleName: a.ScheduleName}
}

// ScheduleWithActions is a schedule together with its actions, as loaded by the supervisor.
type ScheduleWithActions struct {
	Schedule Schedule `json:"schedule"`
	Actions  []Action `json:"actions"`
}
