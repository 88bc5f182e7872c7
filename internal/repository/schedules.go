package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"neptis/internal/models"
)

const scheduleColumns = `server_name, schedule_name, cron, share_user, share_password,
	user_password, backup_on_finish, last_updated, mover_options`

func scanSchedule(row rowScanner) (*models.Schedule, error) {
	var s models.Schedule
	var moverOptions sql.NullString

	err := row.Scan(&s.ServerName, &s.ScheduleName, &s.Cron, &s.ShareUser, &s.SharePassword,
		&s.UserPassword, &s.BackupOnFinish, &s.LastUpdated, &moverOptions)
	if err != nil {
		return nil, err
	}
	s.LastUpdated = s.LastUpdated.UTC()

	if moverOptions.Valid && moverOptions.String != "" {
		s.MoverOptions = &models.MoverOptions{}
		if err := s.MoverOptions.Scan(moverOptions.String); err != nil {
			slog.Warn("failed to parse mover_options, ignoring",
				"server_name", s.ServerName, "schedule_name", s.ScheduleName, "error", err)
			s.MoverOptions = nil
		}
	}
	return &s, nil
}

// ListSchedules returns the schedules of serverName, or of every server when it is empty.
func (r *Repository) ListSchedules(ctx context.Context, serverName string) ([]models.Schedule, error) {
	query := "SELECT " + scheduleColumns + " FROM schedules"
	var args []any
	if serverName != "" {
		query += " WHERE server_name = ?"
		args = append(args, serverName)
	}
	query += " ORDER BY server_name, schedule_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("repository.list_schedules", fmt.Errorf("failed to query schedules: %w", err))
	}
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, storageErr("repository.list_schedules", fmt.Errorf("failed to scan schedule: %w", err))
		}
		schedules = append(schedules, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("repository.list_schedules", err)
	}
	return schedules, nil
}

func (r *Repository) GetSchedule(ctx context.Context, serverName, scheduleName string) (*models.Schedule, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+scheduleColumns+" FROM schedules WHERE server_name = ? AND schedule_name = ?",
		serverName, scheduleName)
	s, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("repository.get_schedule", "schedule %s/%s not found", serverName, scheduleName)
		}
		return nil, storageErr("repository.get_schedule", err)
	}
	return s, nil
}

// SaveSchedule inserts or updates a schedule. A zero LastUpdated is set to now.
func (r *Repository) SaveSchedule(ctx context.Context, s *models.Schedule) error {
	if s.LastUpdated.IsZero() {
		s.LastUpdated = r.now().UTC()
	}

	var moverOptions sql.NullString
	if s.MoverOptions != nil {
		v, err := s.MoverOptions.Value()
		if err != nil {
			return fmt.Errorf("failed to encode mover options: %w", err)
		}
		moverOptions = sql.NullString{String: v.(string), Valid: true}
	}

	query := `
		INSERT INTO schedules (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (server_name, schedule_name) DO UPDATE SET
			cron = excluded.cron,
			share_user = excluded.share_user,
			share_password = excluded.share_password,
			user_password = excluded.user_password,
			backup_on_finish = excluded.backup_on_finish,
			last_updated = excluded.last_updated,
			mover_options = excluded.mover_options
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ServerName, s.ScheduleName, s.Cron, s.ShareUser, s.SharePassword,
		s.UserPassword, s.BackupOnFinish, utc(s.LastUpdated), moverOptions)
	if err != nil {
		return storageErr("repository.save_schedule", fmt.Errorf("failed to save schedule %s/%s: %w", s.ServerName, s.ScheduleName, err))
	}
	return nil
}

// DeleteSchedule removes a schedule and its actions. Job history is kept.
func (r *Repository) DeleteSchedule(ctx context.Context, serverName, scheduleName string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM schedules WHERE server_name = ? AND schedule_name = ?", serverName, scheduleName)
	if err != nil {
		return storageErr("repository.delete_schedule", err)
	}
	return requireAffected(res, "repository.delete_schedule", "schedule %s/%s not found", serverName, scheduleName)
}

const actionColumns = `server_name, schedule_name, action_name, remote_folder, local_folder, enabled`

func scanAction(row rowScanner) (*models.Action, error) {
	var a models.Action
	if err := row.Scan(&a.ServerName, &a.ScheduleName, &a.ActionName, &a.RemoteFolder, &a.LocalFolder, &a.Enabled); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListActions(ctx context.Context, serverName, scheduleName string) ([]models.Action, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+actionColumns+" FROM actions WHERE server_name = ? AND schedule_name = ? ORDER BY action_name",
		serverName, scheduleName)
	if err != nil {
		return nil, storageErr("repository.list_actions", err)
	}
	defer rows.Close()

	var actions []models.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, storageErr("repository.list_actions", fmt.Errorf("failed to scan action: %w", err))
		}
		actions = append(actions, *a)
	}
	return actions, storageErr("repository.list_actions", rows.Err())
}

func (r *Repository) GetAction(ctx context.Context, serverName, scheduleName, actionName string) (*models.Action, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+actionColumns+" FROM actions WHERE server_name = ? AND schedule_name = ? AND action_name = ?",
		serverName, scheduleName, actionName)
	a, err := scanAction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("repository.get_action", "action %s/%s/%s not found", serverName, scheduleName, actionName)
		}
		return nil, storageErr("repository.get_action", err)
	}
	return a, nil
}

// SaveAction inserts or updates an action. The schedule must exist.
func (r *Repository) SaveAction(ctx context.Context, a *models.Action) error {
	query := `
		INSERT INTO actions (` + actionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (server_name, schedule_name, action_name) DO UPDATE SET
			remote_folder = excluded.remote_folder,
			local_folder = excluded.local_folder,
			enabled = excluded.enabled
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ServerName, a.ScheduleName, a.ActionName, a.RemoteFolder, a.LocalFolder, a.Enabled)
	if err != nil {
		return storageErr("repository.save_action", fmt.Errorf("failed to save action %s: %w", a.ActionName, err))
	}
	return nil
}

func (r *Repository) DeleteAction(ctx context.Context, serverName, scheduleName, actionName string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM actions WHERE server_name = ? AND schedule_name = ? AND action_name = ?",
		serverName, scheduleName, actionName)
	if err != nil {
		return storageErr("repository.delete_action", err)
	}
	return requireAffected(res, "repository.delete_action", "action %s/%s/%s not found", serverName, scheduleName, actionName)
}

// LoadSchedules returns every schedule with its actions, as the supervisor
// consumes them on each tick.
func (r *Repository) LoadSchedules(ctx context.Context) ([]models.ScheduleWithActions, error) {
	schedules, err := r.ListSchedules(ctx, "")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT "+actionColumns+" FROM actions ORDER BY server_name, schedule_name, action_name")
	if err != nil {
		return nil, storageErr("repository.load_schedules", err)
	}
	defer rows.Close()

	byKey := make(map[models.ScheduleKey][]models.Action)
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, storageErr("repository.load_schedules", err)
		}
		byKey[a.ScheduleKey()] = append(byKey[a.ScheduleKey()], *a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("repository.load_schedules", err)
	}

	out := make([]models.ScheduleWithActions, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, models.ScheduleWithActions{Schedule: s, Actions: byKey[s.Key()]})
	}
	return out, nil
}
