package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"neptis/internal/errs"
	"neptis/internal/interfaces"
	"neptis/internal/models"
	"neptis/internal/paths"
)

// UnchangedWarning is recorded when a transfer is skipped because the local
// folder matches the last successful run.
const UnchangedWarning = "Local folder unchanged since last successful transfer, skipping transfer"

// worker owns one running job.
type worker struct {
	job       *models.TransferJob
	cancel    context.CancelFunc
	done      chan struct{}
	cancelled atomic.Bool

	mu   sync.Mutex
	proc interfaces.MoverProcess
}

// stop flags the worker as cancelled, aborts its context and kills the mover.
func (w *worker) stop() {
	w.cancelled.Store(true)
	w.cancel()

	w.mu.Lock()
	proc := w.proc
	w.mu.Unlock()
	if proc != nil {
		if err := proc.Kill(); err != nil {
			slog.Warn("Failed to kill mover", "job_id", w.job.ID, "error", err)
		}
	}
}

// attach records the mover process, killing it right away if the job was
// cancelled while it was starting.
func (w *worker) attach(proc interfaces.MoverProcess) {
	w.mu.Lock()
	w.proc = proc
	w.mu.Unlock()

	if w.cancelled.Load() {
		if err := proc.Kill(); err != nil {
			slog.Warn("Failed to kill mover", "job_id", w.job.ID, "error", err)
		}
	}
}

func (s *Supervisor) run(ctx context.Context, w *worker, schedule models.Schedule, action models.Action) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.workers, w.job.ID)
		s.mu.Unlock()
		w.cancel()
		close(w.done)
	}()

	err := s.execute(ctx, w, schedule, action)
	if w.cancelled.Load() {
		// CancelJob may have given up waiting, so the worker ends the job.
		s.update(ctx, w.job, func(j *models.TransferJob, now time.Time) {
			if !j.IsTerminal() {
				j.Fail(models.CancelledMessage, now)
			}
		})
		return
	}

	job := w.job
	if err != nil {
		slog.Error("Transfer job failed", "job_id", job.ID, "error", err)
		s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
			j.Fail(err.Error(), now)
		})
	} else {
		s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
			j.Finish(now)
		})
	}

	s.notify(job)
}

// execute takes the job from its fingerprint to the end of the optional
// server backup. A returned error becomes the job's fatal error.
func (s *Supervisor) execute(ctx context.Context, w *worker, schedule models.Schedule, action models.Action) error {
	job := w.job

	d := s.gate.CheckLocalFolder(action.LocalFolder)
	if !d.Allowed {
		return errors.New(d.Reason)
	}
	slog.Debug("Local folder checked", "job_id", job.ID, "details", d.Details)
	if len(d.Warnings) > 0 {
		s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
			for _, msg := range d.Warnings {
				j.AddWarning(msg, now)
			}
		})
	}

	hash, err := s.hasher.Fingerprint(ctx, action.LocalFolder)
	if err != nil {
		return fmt.Errorf("failed to fingerprint %s: %w", action.LocalFolder, err)
	}
	s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
		j.InitHash = hash
	})

	unchanged, err := s.unchanged(ctx, job, hash)
	if err != nil {
		slog.Warn("Failed to look up previous transfer", "job_id", job.ID, "error", err)
	}
	if unchanged {
		slog.Info("Local folder unchanged, skipping transfer", "job_id", job.ID, "folder", action.LocalFolder)
		s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
			j.AddWarning(UnchangedWarning, now)
		})
		return nil
	}

	profile, err := s.store.GetProfile(ctx, action.ServerName)
	if err != nil {
		return fmt.Errorf("failed to load server %s: %w", action.ServerName, err)
	}
	api, err := s.clients(profile)
	if err != nil {
		return fmt.Errorf("failed to create client for %s: %w", action.ServerName, err)
	}

	var waker interfaces.Waker
	if s.wakers != nil {
		waker, err = s.wakers(profile)
		if err != nil {
			slog.Warn("Wake endpoint unusable", "server", profile.ServerName, "error", err)
			waker = nil
		}
	}
	if d := s.gate.CheckReachable(ctx, api, waker); !d.Allowed {
		return errs.E(errs.Unreachable, "", errors.New(d.Reason))
	}

	remote, err := paths.ShareRemote(schedule.ShareUser, action.RemoteFolder)
	if err != nil {
		return err
	}
	s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
		j.RemoteFolder = remote
	})

	proc, err := s.mover.Sync(ctx, models.SyncRequest{
		JobID:         job.ID,
		LocalFolder:   action.LocalFolder,
		RemoteFolder:  remote,
		Host:          hostOf(profile.Endpoint),
		ShareUser:     schedule.ShareUser,
		SharePassword: schedule.SharePassword,
		Options:       schedule.MoverOptions,
	})
	if err != nil {
		return err
	}
	w.attach(proc)

	s.consume(ctx, job, proc)
	<-proc.Done()
	if w.cancelled.Load() {
		return nil
	}
	if err := proc.Err(); err != nil {
		return fmt.Errorf("mover failed: %w", err)
	}
	if job.IsTerminal() {
		return nil
	}

	if schedule.WantsBackup() {
		return s.backup(ctx, job, api, schedule, action)
	}
	return nil
}

// unchanged reports whether hash equals the fingerprint of the newest
// successful job for the same action and local folder.
func (s *Supervisor) unchanged(ctx context.Context, job *models.TransferJob, hash string) (bool, error) {
	prev, err := s.store.ListJobs(ctx, models.JobFilter{
		ServerName:   job.ServerName,
		ScheduleName: job.ScheduleName,
		ActionName:   job.ActionName,
		LocalFolder:  job.LocalFolder,
		Successful:   true,
		Limit:        1,
	})
	if err != nil || len(prev) == 0 {
		return false, err
	}
	return prev[0].InitHash != "" && prev[0].InitHash == hash, nil
}

// consume folds mover events into the job until the output ends.
func (s *Supervisor) consume(ctx context.Context, job *models.TransferJob, proc interfaces.MoverProcess) {
	for ev := range proc.Events() {
		switch {
		case ev.Terminal():
			msg := ev.Stats.LastError
			if msg == "" {
				msg = "Mover reported a fatal error"
			}
			stats := *ev.Stats
			s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
				j.UpdateStats(stats, now)
				j.Fail(msg, now)
			})
		case ev.IsStats():
			stats := *ev.Stats
			s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
				j.UpdateStats(stats, now)
			})
		case ev.IsError():
			msg := ev.Msg
			s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
				j.AddWarning(msg, now)
			})
		}
	}
}

// backup starts a server-side backup of the action's mount and polls it,
// reporting its progress through the job's stats.
func (s *Supervisor) backup(ctx context.Context, job *models.TransferJob, api interfaces.ServerAPI, schedule models.Schedule, action models.Action) error {
	parts := paths.Components(action.RemoteFolder)
	if len(parts) == 0 {
		return fmt.Errorf("cannot back up %s: no mount", action.RemoteFolder)
	}
	mount := parts[0]

	if _, err := api.Login(ctx, schedule.ShareUser, schedule.UserPassword); err != nil {
		return fmt.Errorf("backup login failed: %w", err)
	}
	sj, err := api.StartBackup(ctx, mount)
	if err != nil {
		return fmt.Errorf("failed to start backup of %s: %w", mount, err)
	}
	slog.Info("Started server backup", "job_id", job.ID, "backup_id", sj.ID, "mount", mount)

	for {
		progress := sj.Progress
		s.update(ctx, job, func(j *models.TransferJob, now time.Time) {
			var stats models.TransferStats
			if j.LastStats != nil {
				stats = *j.LastStats
			}
			stats.OnBackup = true
			stats.BackupProgress = progress
			j.UpdateStats(stats, now)
		})

		if sj.IsTerminal() {
			if sj.Status == models.ServerJobFailed {
				reason := strings.Join(sj.Errors, "; ")
				if reason == "" {
					reason = "unknown error"
				}
				return fmt.Errorf("backup of %s failed: %s", mount, reason)
			}
			return nil
		}

		if err := s.sleep(ctx, s.config.BackupPollInterval); err != nil {
			return err
		}
		if sj, err = api.GetJob(ctx, sj.ID); err != nil {
			return fmt.Errorf("failed to poll backup of %s: %w", mount, err)
		}
	}
}

func (s *Supervisor) notify(job *models.TransferJob) {
	if s.notifier == nil || !s.notifier.IsEnabled() {
		return
	}
	s.mu.Lock()
	snapshot := job.Redacted()
	s.mu.Unlock()

	var err error
	if snapshot.State() == models.JobStateFailed {
		err = s.notifier.NotifyJobFailed(snapshot)
	} else {
		err = s.notifier.NotifyJobCompleted(snapshot)
	}
	if err != nil {
		slog.Warn("Failed to send job notification", "job_id", job.ID, "error", err)
	}
}

// hostOf returns the host name of a server endpoint for the share config.
func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Hostname() == "" {
		return strings.TrimRight(endpoint, "/")
	}
	return u.Hostname()
}
