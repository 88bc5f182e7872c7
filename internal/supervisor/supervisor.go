// Package supervisor runs scheduled transfer actions: it evaluates cron
// expressions, starts one worker per job and tracks the jobs until they end.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"neptis/internal/config"
	"neptis/internal/errs"
	"neptis/internal/interfaces"
	"neptis/internal/models"
)

// RestartMessage is recorded on jobs a previous process left unfinished.
const RestartMessage = "Interrupted: supervisor restarted"

const listLimit = 200

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseCron parses a schedule expression with an optional leading seconds field.
func ParseCron(expr string) (cron.Schedule, error) {
	c, err := cronParser.Parse(expr)
	if err != nil {
		return nil, errs.E(errs.ParseError, "supervisor.parse_cron", err)
	}
	return c, nil
}

// Deps are the collaborators a Supervisor drives.
type Deps struct {
	Store    interfaces.JobStore
	Clients  interfaces.ClientFactory
	Wakers   interfaces.WakerFactory
	Gate     interfaces.Gatekeeper
	Hasher   interfaces.Fingerprinter
	Mover    interfaces.Mover
	Notifier interfaces.Notifier
}

type Supervisor struct {
	store    interfaces.JobStore
	clients  interfaces.ClientFactory
	wakers   interfaces.WakerFactory
	gate     interfaces.Gatekeeper
	hasher   interfaces.Fingerprinter
	mover    interfaces.Mover
	notifier interfaces.Notifier
	config   config.SupervisorConfig

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// Internal state
	mu        sync.Mutex
	running   bool
	jobs      []*models.TransferJob
	workers   map[string]*worker
	immediate map[models.ScheduleKey]struct{}
	kick      chan struct{}

	baseCtx    context.Context
	baseCancel context.CancelFunc
	loopCancel context.CancelFunc
	wg         sync.WaitGroup
}

var _ interfaces.Supervisor = (*Supervisor)(nil)

func New(cfg config.SupervisorConfig, deps Deps) *Supervisor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		store:      deps.Store,
		clients:    deps.Clients,
		wakers:     deps.Wakers,
		gate:       deps.Gate,
		hasher:     deps.Hasher,
		mover:      deps.Mover,
		notifier:   deps.Notifier,
		config:     cfg,
		now:        time.Now,
		sleep:      sleepCtx,
		workers:    make(map[string]*worker),
		immediate:  make(map[models.ScheduleKey]struct{}),
		kick:       make(chan struct{}, 1),
		baseCtx:    ctx,
		baseCancel: cancel,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Start closes jobs left unfinished by a previous process and launches the
// scheduling loop.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("supervisor already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.Recover(ctx); err != nil {
		return fmt.Errorf("failed to recover interrupted jobs: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.loopCancel = cancel
	s.mu.Unlock()

	go s.scheduler(loopCtx)
	go s.cleanupRoutine(loopCtx)

	slog.Info("Supervisor started", "tick", s.config.TickInterval)
	return nil
}

// Recover fails every job a previous process left running or pending.
func (s *Supervisor) Recover(ctx context.Context) error {
	n, err := s.store.FailUnfinishedJobs(ctx, RestartMessage)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Warn("Marked interrupted jobs as failed", "count", n)
	}
	return nil
}

// Stop ends the loop, kills every running mover, marks those jobs cancelled
// and flushes all in-memory jobs to the store.
func (s *Supervisor) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.loopCancel != nil {
		s.loopCancel()
	}
	s.running = false
	workers := make([]*worker, 0, len(s.workers))
	for _, w := range s.workers {
		workers = append(workers, w)
	}
	s.mu.Unlock()

	for _, w := range workers {
		slog.Info("Cancelling running job", "job_id", w.job.ID)
		w.stop()
	}

	timeout := time.NewTimer(s.config.CancelTimeout)
	defer timeout.Stop()
	for _, w := range workers {
		select {
		case <-w.done:
		case <-timeout.C:
			slog.Warn("Timeout waiting for jobs to stop")
		case <-ctx.Done():
		}
	}

	now := s.now().UTC()
	s.mu.Lock()
	for _, w := range workers {
		if !w.job.IsTerminal() {
			w.job.Fail(models.CancelledMessage, now)
		}
	}
	s.mu.Unlock()

	s.baseCancel()
	return s.flush(context.WithoutCancel(ctx))
}

func (s *Supervisor) scheduler(ctx context.Context) {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		case <-s.kick:
			s.Tick(ctx)
		}
	}
}

func (s *Supervisor) cleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.performCleanup(ctx)
		}
	}
}

func (s *Supervisor) performCleanup(ctx context.Context) {
	if s.config.JobRetention <= 0 {
		return
	}
	cutoff := s.now().Add(-s.config.JobRetention)
	count, err := s.store.PruneJobs(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to prune old jobs", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Pruned old jobs", "count", count)
	}
}

// StartScheduleNow asks the next tick to run every enabled action of the
// schedule regardless of its cron expression.
func (s *Supervisor) StartScheduleNow(serverName, scheduleName string) error {
	if serverName == "" || scheduleName == "" {
		return errs.Errorf(errs.Configuration, "supervisor.start_now", "server and schedule names are required")
	}
	s.mu.Lock()
	s.immediate[models.ScheduleKey{ServerName: serverName, ScheduleName: scheduleName}] = struct{}{}
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
	slog.Info("Schedule queued for immediate start", "server", serverName, "schedule", scheduleName)
	return nil
}

func (s *Supervisor) drainImmediate() map[models.ScheduleKey]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.immediate
	s.immediate = make(map[models.ScheduleKey]struct{})
	return out
}

// Tick runs one pass of the scheduling loop.
func (s *Supervisor) Tick(ctx context.Context) {
	now := s.now().UTC()
	immediate := s.drainImmediate()
	s.forgetFinished()

	schedules, err := s.store.LoadSchedules(ctx)
	if err != nil {
		slog.Error("Failed to load schedules", "error", err)
		return
	}

	for _, sw := range schedules {
		schedule := sw.Schedule
		_, forced := immediate[schedule.Key()]

		cronSchedule, err := ParseCron(schedule.Cron)
		if err != nil && !forced {
			slog.Warn("Invalid cron expression", "server", schedule.ServerName, "schedule", schedule.ScheduleName,
				"cron", schedule.Cron, "error", err)
			continue
		}

		for _, action := range sw.Actions {
			if !action.Enabled {
				continue
			}
			if s.hasRunning(action.ServerName, action.ScheduleName, action.ActionName) {
				slog.Debug("Action still running", "action", action.ActionName)
				continue
			}
			due := forced
			if !due {
				due, err = s.isDue(ctx, &schedule, &action, cronSchedule, now)
				if err != nil {
					slog.Error("Failed to evaluate action", "action", action.ActionName, "error", err)
					continue
				}
			}
			if due {
				s.startJob(schedule, action, now)
			}
		}
	}

	if err := s.flush(ctx); err != nil {
		slog.Error("Failed to persist jobs", "error", err)
	}
}

// isDue reports whether the cron expression fired between the action's last
// run and now.
func (s *Supervisor) isDue(ctx context.Context, schedule *models.Schedule, action *models.Action, c cron.Schedule, now time.Time) (bool, error) {
	lastRan := schedule.LastUpdated
	prior, err := s.store.ListJobs(ctx, models.JobFilter{
		ServerName:   action.ServerName,
		ScheduleName: action.ScheduleName,
		ActionName:   action.ActionName,
		Limit:        1,
	})
	if err != nil {
		return false, err
	}
	for _, job := range prior {
		if job.IsRunning() {
			return false, nil
		}
		if t := job.LastRan(); t != nil && t.After(lastRan) {
			lastRan = *t
		}
	}

	next := c.Next(lastRan.UTC())
	return !now.Before(next), nil
}

func (s *Supervisor) hasRunning(server, schedule, action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		if job.Matches(server, schedule, action) && !job.IsTerminal() {
			return true
		}
	}
	return false
}

// startJob records a running job and hands it to a new worker.
func (s *Supervisor) startJob(schedule models.Schedule, action models.Action, now time.Time) *models.TransferJob {
	job := &models.TransferJob{
		ID:           uuid.NewString(),
		ServerName:   action.ServerName,
		ScheduleName: action.ScheduleName,
		ActionName:   action.ActionName,
		RemoteFolder: action.RemoteFolder,
		LocalFolder:  action.LocalFolder,
		Credentials: models.TransferCredentials{
			ShareUser:     schedule.ShareUser,
			SharePassword: schedule.SharePassword,
			UserPassword:  schedule.UserPassword,
		},
		PostBackup: schedule.WantsBackup(),
	}
	job.MarkStarted(now)

	ctx, cancel := context.WithCancel(s.baseCtx)
	w := &worker{job: job, cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.workers[job.ID] = w
	s.mu.Unlock()

	slog.Info("Starting transfer job", "job_id", job.ID, "server", job.ServerName,
		"schedule", job.ScheduleName, "action", job.ActionName)
	s.persist(ctx, job)

	s.wg.Add(1)
	go s.run(ctx, w, schedule, action)
	return job
}

// forgetFinished drops jobs that ended since the previous tick. They were
// persisted by their last update.
func (s *Supervisor) forgetFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if _, live := s.workers[job.ID]; live || !job.IsTerminal() {
			kept = append(kept, job)
		}
	}
	s.jobs = kept
}

// flush writes every in-memory job to the store.
func (s *Supervisor) flush(ctx context.Context) error {
	s.mu.Lock()
	snapshot := make([]*models.TransferJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		snapshot = append(snapshot, job.Clone())
	}
	s.mu.Unlock()

	if len(snapshot) == 0 {
		return nil
	}
	return s.store.SaveJobs(ctx, snapshot)
}

// update applies fn to job under the list lock and upserts the result.
func (s *Supervisor) update(ctx context.Context, job *models.TransferJob, fn func(j *models.TransferJob, now time.Time)) {
	s.mu.Lock()
	fn(job, s.now().UTC())
	s.mu.Unlock()
	s.persist(ctx, job)
}

func (s *Supervisor) persist(ctx context.Context, job *models.TransferJob) {
	s.mu.Lock()
	snapshot := job.Clone()
	s.mu.Unlock()

	if err := s.store.SaveJob(context.WithoutCancel(ctx), snapshot); err != nil {
		slog.Error("Failed to save job", "job_id", job.ID, "error", err)
	}
}

// ListJobs returns recent jobs, newest first, with live jobs taken from memory.
func (s *Supervisor) ListJobs(ctx context.Context) ([]*models.TransferJob, error) {
	stored, err := s.store.ListJobs(ctx, models.JobFilter{Limit: listLimit})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	live := make(map[string]*models.TransferJob, len(s.jobs))
	for _, job := range s.jobs {
		live[job.ID] = job.Clone()
	}
	s.mu.Unlock()

	out := make([]*models.TransferJob, 0, len(stored)+len(live))
	for _, job := range stored {
		if l, ok := live[job.ID]; ok {
			job = l
			delete(live, job.ID)
		}
		out = append(out, job)
	}
	for _, job := range live {
		out = append([]*models.TransferJob{job}, out...)
	}
	return out, nil
}

func (s *Supervisor) GetJob(ctx context.Context, id string) (*models.TransferJob, error) {
	s.mu.Lock()
	for _, job := range s.jobs {
		if job.ID == id {
			c := job.Clone()
			s.mu.Unlock()
			return c, nil
		}
	}
	s.mu.Unlock()
	return s.store.GetJob(ctx, id)
}

// CancelJob kills the job's mover and waits for the worker to stop. The job
// is then failed with CancelledMessage. When the worker does not stop in
// time the job stays running and a Timeout error is returned.
func (s *Supervisor) CancelJob(ctx context.Context, id string) error {
	s.mu.Lock()
	w := s.workers[id]
	s.mu.Unlock()

	if w == nil {
		job, err := s.GetJob(ctx, id)
		if err != nil {
			return err
		}
		if job.IsTerminal() {
			return nil
		}
		return errs.Errorf(errs.Conflict, "supervisor.cancel", "job %s is not owned by this supervisor", id)
	}

	slog.Info("Cancelling job", "job_id", id)
	w.stop()

	timeout := time.NewTimer(s.config.CancelTimeout)
	defer timeout.Stop()
	select {
	case <-w.done:
	case <-timeout.C:
		return errs.Errorf(errs.Timeout, "supervisor.cancel", "job %s did not stop within %s", id, s.config.CancelTimeout)
	case <-ctx.Done():
		return errs.E(errs.Cancelled, "supervisor.cancel", ctx.Err())
	}

	s.update(ctx, w.job, func(j *models.TransferJob, now time.Time) {
		if !j.IsTerminal() {
			j.Fail(models.CancelledMessage, now)
		}
	})
	return nil
}

// wait blocks until every worker has returned.
func (s *Supervisor) wait() {
	s.wg.Wait()
}
