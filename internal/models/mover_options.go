package models

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
)

// MoverOptions tunes a schedule's sync runs.
// All fields are optional - nil values will use defaults
type MoverOptions struct {
	Transfers *int    `json:"transfers,omitempty"`
	Checkers  *int    `json:"checkers,omitempty"`
	BwLimit   *string `json:"bw_limit,omitempty"`

	// Sync behavior settings
	DeleteExcluded *bool    `json:"delete_excluded,omitempty"`
	Checksum       *bool    `json:"checksum,omitempty"`
	Excludes       []string `json:"excludes,omitempty"`
}

// DefaultMoverOptions returns the options used when a schedule sets none.
func DefaultMoverOptions() *MoverOptions {
	transfers := 4
	checkers := 8
	checksum := false
	deleteExcluded := false

	return &MoverOptions{
		Transfers:      &transfers,
		Checkers:       &checkers,
		Checksum:       &checksum,
		DeleteExcluded: &deleteExcluded,
	}
}

// MergeWithDefaults returns a new set of options with unset fields filled from defaults
func (o *MoverOptions) MergeWithDefaults() *MoverOptions {
	defaults := DefaultMoverOptions()
	if o == nil {
		return defaults
	}

	merged := &MoverOptions{
		Transfers:      pick(o.Transfers, defaults.Transfers),
		Checkers:       pick(o.Checkers, defaults.Checkers),
		BwLimit:        pick(o.BwLimit, defaults.BwLimit),
		DeleteExcluded: pick(o.DeleteExcluded, defaults.DeleteExcluded),
		Checksum:       pick(o.Checksum, defaults.Checksum),
	}
	if len(o.Excludes) > 0 {
		merged.Excludes = append([]string(nil), o.Excludes...)
	}
	return merged
}

func pick[T any](v, fallback *T) *T {
	if v != nil {
		return v
	}
	return fallback
}

// Args renders the merged options as mover command line flags.
func (o *MoverOptions) Args() []string {
	merged := o.MergeWithDefaults()

	var args []string
	if merged.Transfers != nil {
		args = append(args, "--transfers", strconv.Itoa(*merged.Transfers))
	}
	if merged.Checkers != nil {
		args = append(args, "--checkers", strconv.Itoa(*merged.Checkers))
	}
	if merged.BwLimit != nil && *merged.BwLimit != "" {
		args = append(args, "--bwlimit", *merged.BwLimit)
	}
	if merged.Checksum != nil && *merged.Checksum {
		args = append(args, "--checksum")
	}
	if merged.DeleteExcluded != nil && *merged.DeleteExcluded {
		args = append(args, "--delete-excluded")
	}
	for _, pattern := range merged.Excludes {
		args = append(args, "--exclude", pattern)
	}
	return args
}

// Database value methods for custom types
func (o MoverOptions) Value() (driver.Value, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *MoverOptions) Scan(value interface{}) error {
	return scanJSON(value, o, "MoverOptions")
}
