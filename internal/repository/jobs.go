package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"neptis/internal/models"
)

const jobColumns = `id, server_name, schedule_name, action_name, remote_folder, local_folder,
	credentials, start_date, end_date, last_updated, fatal_errors, warnings,
	last_stats, init_hash, post_backup`

func scanJob(row rowScanner) (*models.TransferJob, error) {
	var job models.TransferJob
	var scheduleName, actionName, lastStats sql.NullString
	var startDate, endDate sql.NullTime

	err := row.Scan(&job.ID, &job.ServerName, &scheduleName, &actionName, &job.RemoteFolder, &job.LocalFolder,
		&job.Credentials, &startDate, &endDate, &job.LastUpdated, &job.FatalErrors, &job.Warnings,
		&lastStats, &job.InitHash, &job.PostBackup)
	if err != nil {
		return nil, err
	}

	job.ScheduleName = scheduleName.String
	job.ActionName = actionName.String
	job.StartDate = timePtr(startDate)
	job.EndDate = timePtr(endDate)
	job.LastUpdated = job.LastUpdated.UTC()

	if lastStats.Valid && lastStats.String != "" {
		job.LastStats = &models.TransferStats{}
		if err := job.LastStats.Scan(lastStats.String); err != nil {
			slog.Warn("failed to parse last_stats, ignoring", "job_id", job.ID, "error", err)
			job.LastStats = nil
		}
	}
	return &job, nil
}

// SaveJob upserts a job row.
func (r *Repository) SaveJob(ctx context.Context, job *models.TransferJob) error {
	return saveJob(ctx, r.db, job)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveJob(ctx context.Context, db execer, job *models.TransferJob) error {
	var lastStats sql.NullString
	if job.LastStats != nil {
		v, err := job.LastStats.Value()
		if err != nil {
			return fmt.Errorf("failed to encode stats: %w", err)
		}
		lastStats = sql.NullString{String: v.(string), Valid: true}
	}

	query := `
		INSERT INTO transfer_jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			remote_folder = excluded.remote_folder,
			local_folder = excluded.local_folder,
			credentials = excluded.credentials,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			last_updated = excluded.last_updated,
			fatal_errors = excluded.fatal_errors,
			warnings = excluded.warnings,
			last_stats = excluded.last_stats,
			init_hash = excluded.init_hash,
			post_backup = excluded.post_backup
	`
	_, err := db.ExecContext(ctx, query,
		job.ID, job.ServerName, nullString(job.ScheduleName), nullString(job.ActionName),
		job.RemoteFolder, job.LocalFolder, job.Credentials,
		nullTime(job.StartDate), nullTime(job.EndDate), utc(job.LastUpdated),
		job.FatalErrors, job.Warnings, lastStats, job.InitHash, job.PostBackup)
	if err != nil {
		return storageErr("repository.save_job", fmt.Errorf("failed to save job %s: %w", job.ID, err))
	}
	return nil
}

// SaveJobs upserts several job rows in one transaction.
func (r *Repository) SaveJobs(ctx context.Context, jobs []*models.TransferJob) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.withTx(ctx, "repository.save_jobs", func(tx *sql.Tx) error {
		for _, job := range jobs {
			if err := saveJob(ctx, tx, job); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetJob(ctx context.Context, id string) (*models.TransferJob, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM transfer_jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("repository.get_job", "job %s not found", id)
		}
		return nil, storageErr("repository.get_job", fmt.Errorf("failed to get job: %w", err))
	}
	return job, nil
}

// ListJobs returns jobs matching filter, newest first.
func (r *Repository) ListJobs(ctx context.Context, filter models.JobFilter) ([]*models.TransferJob, error) {
	query := "SELECT " + jobColumns + " FROM transfer_jobs"

	var conditions []string
	var args []any

	if filter.ServerName != "" {
		conditions = append(conditions, "server_name = ?")
		args = append(args, filter.ServerName)
	}
	if filter.ScheduleName != "" {
		conditions = append(conditions, "schedule_name = ?")
		args = append(args, filter.ScheduleName)
	}
	if filter.ActionName != "" {
		conditions = append(conditions, "action_name = ?")
		args = append(args, filter.ActionName)
	}
	if filter.LocalFolder != "" {
		conditions = append(conditions, "local_folder = ?")
		args = append(args, filter.LocalFolder)
	}
	if filter.Unfinished {
		conditions = append(conditions, "end_date IS NULL")
	}
	if filter.Successful {
		conditions = append(conditions, "end_date IS NOT NULL AND fatal_errors = '[]'")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY COALESCE(end_date, start_date, last_updated) DESC, last_updated DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("repository.list_jobs", fmt.Errorf("failed to query jobs: %w", err))
	}
	defer rows.Close()

	var jobs []*models.TransferJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, storageErr("repository.list_jobs", fmt.Errorf("failed to scan job: %w", err))
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("repository.list_jobs", fmt.Errorf("error iterating jobs: %w", err))
	}
	return jobs, nil
}

// FailUnfinishedJobs closes every job left without an end date, recording msg
// as a fatal error. It returns the number of jobs closed.
func (r *Repository) FailUnfinishedJobs(ctx context.Context, msg string) (int, error) {
	jobs, err := r.ListJobs(ctx, models.JobFilter{Unfinished: true})
	if err != nil {
		return 0, err
	}

	now := r.now().UTC()
	for _, job := range jobs {
		job.Fail(msg, now)
	}
	if err := r.SaveJobs(ctx, jobs); err != nil {
		return 0, err
	}
	return len(jobs), nil
}

// PruneJobs deletes finished jobs that ended before cutoff.
func (r *Repository) PruneJobs(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transfer_jobs WHERE end_date IS NOT NULL AND end_date < ?", cutoff.UTC())
	if err != nil {
		return 0, storageErr("repository.prune_jobs", fmt.Errorf("failed to prune jobs: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("repository.prune_jobs", err)
	}
	return n, nil
}

func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transfer_jobs WHERE id = ?", id)
	if err != nil {
		return storageErr("repository.delete_job", err)
	}
	return requireAffected(res, "repository.delete_job", "job %s not found", id)
}
