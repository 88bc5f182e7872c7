package models

import (
	"encoding/json"
	"time"
)

// SyncRequest describes one mover run. RemoteFolder is already rewritten to
// the share layout.
type SyncRequest struct {
	JobID         string        `json:"job_id"`
	LocalFolder   string        `json:"local_folder"`
	RemoteFolder  string        `json:"remote_folder"`
	Host          string        `json:"host"`
	ShareUser     string        `json:"share_user"`
	SharePassword string        `json:"-"`
	Options       *MoverOptions `json:"options,omitempty"`
}

// MoverEvent is one line of the mover's JSON log.
type MoverEvent struct {
	Level  string         `json:"level"`
	Msg    string         `json:"msg"`
	Source string         `json:"source,omitempty"`
	Object string         `json:"object,omitempty"`
	Time   time.Time      `json:"time"`
	Stats  *TransferStats `json:"stats,omitempty"`
}

// IsStats reports whether the event carries a statistics record.
func (e *MoverEvent) IsStats() bool {
	return e.Stats != nil
}

// IsError reports whether the mover logged the line at error level.
func (e *MoverEvent) IsError() bool {
	return e.Level == "error" || e.Level == "critical"
}

// Terminal reports whether the event ends the run: a stats record with no
// message and the fatal flag set.
func (e *MoverEvent) Terminal() bool {
	return e.Msg == "" && e.Stats != nil && e.Stats.FatalError
}

// ParseMoverEvent decodes one log line. ok is false for anything that is not
// a JSON object from the mover.
func ParseMoverEvent(line []byte) (MoverEvent, bool) {
	var ev MoverEvent
	if len(line) == 0 || line[0] != '{' {
		return ev, false
	}
	if err := json.Unmarshal(line, &ev); err != nil {
		return MoverEvent{}, false
	}
	if ev.Level == "" && ev.Stats == nil {
		return MoverEvent{}, false
	}
	return ev, true
}
