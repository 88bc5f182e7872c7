package gatekeeper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"neptis/internal/config"
	"neptis/internal/interfaces"
)

// Gatekeeper decides whether a transfer may start: the local folder must
// exist and the server must answer, possibly after waking it up.
type Gatekeeper struct {
	retries int
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
	statfs  func(path string) (*unix.Statfs_t, error)
}

// lowDiskFraction is the share of free space under which a folder check
// carries a warning.
const lowDiskFraction = 0.05

var _ interfaces.Gatekeeper = (*Gatekeeper)(nil)

func New(cfg config.SupervisorConfig) *Gatekeeper {
	return &Gatekeeper{
		retries: cfg.ReachabilityRetries,
		delay:   cfg.ReachabilityDelay,
		sleep:   sleepCtx,
		statfs:  diskStats,
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

// CheckLocalFolder checks that path is an existing directory.
func (g *Gatekeeper) CheckLocalFolder(path string) interfaces.GateDecision {
	info, err := os.Stat(path)
	if err != nil {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("Local folder %s is not accessible: %v", path, err),
		}
	}
	if !info.IsDir() {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("Local path %s is not a folder", path),
		}
	}

	decision := interfaces.GateDecision{
		Allowed: true,
		Reason:  "Local folder is available",
		Details: map[string]interface{}{"path": path},
	}

	stat, err := g.statfs(path)
	if err != nil {
		slog.Debug("failed to stat local disk", "path", path, "error", err)
		return decision
	}
	free := int64(stat.Bavail * uint64(stat.Bsize))
	total := int64(stat.Blocks * uint64(stat.Bsize))
	decision.Details["free_bytes"] = free
	decision.Details["total_bytes"] = total
	if total > 0 && float64(free) < float64(total)*lowDiskFraction {
		decision.Warnings = append(decision.Warnings,
			fmt.Sprintf("Disk holding %s is almost full: %d of %d bytes free", path, free, total))
	}
	return decision
}

func diskStats(path string) (*unix.Statfs_t, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return nil, fmt.Errorf("failed to stat disk: %w", err)
	}
	return &stat, nil
}

// CheckReachable asks the server for its summary. When that fails and a
// waker is available, it sends up to retries wake pulses, waiting delay
// after each one before asking again.
func (g *Gatekeeper) CheckReachable(ctx context.Context, api interfaces.ServerAPI, waker interfaces.Waker) interfaces.GateDecision {
	_, err := api.GetInfo(ctx)
	if err == nil {
		return interfaces.GateDecision{Allowed: true, Reason: "Server is reachable"}
	}
	slog.Info("Server did not answer", "error", err)

	if waker == nil {
		return interfaces.GateDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("Server unreachable: %v", err),
		}
	}

	for attempt := 1; attempt <= g.retries; attempt++ {
		if werr := waker.Wake(ctx); werr != nil {
			slog.Warn("Wake pulse failed", "attempt", attempt, "error", werr)
			err = werr
		} else {
			slog.Info("Sent wake pulse", "attempt", attempt)
		}

		if serr := g.sleep(ctx, g.delay); serr != nil {
			return interfaces.GateDecision{Allowed: false, Reason: fmt.Sprintf("Reachability check aborted: %v", serr)}
		}

		if _, err = api.GetInfo(ctx); err == nil {
			return interfaces.GateDecision{
				Allowed: true,
				Reason:  "Server is reachable after wake",
				Details: map[string]interface{}{"wake_attempts": attempt},
			}
		}
	}

	return interfaces.GateDecision{
		Allowed: false,
		Reason:  fmt.Sprintf("Server unreachable after %d wake attempts: %v", g.retries, err),
		Details: map[string]interface{}{"wake_attempts": g.retries},
	}
}
