package mover

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"neptis/internal/errs"
	"neptis/internal/models"
)

// process is one running sync. stdout and stderr share a single pipe so
// events arrive in the order rclone wrote them.
type process struct {
	cmd     *exec.Cmd
	jobID   string
	events  chan models.MoverEvent
	done    chan struct{}
	err     error
	cleanup func()
}

func start(cmd *exec.Cmd, jobID string, cleanup func()) (*process, error) {
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		cleanup()
		return nil, errs.E(errs.ToolFailed, "mover.start", err)
	}

	p := &process{
		cmd:     cmd,
		jobID:   jobID,
		events:  make(chan models.MoverEvent, 64),
		done:    make(chan struct{}),
		cleanup: cleanup,
	}
	go p.read(pr)
	go p.wait(pw)
	return p, nil
}

func (p *process) read(r io.ReadCloser) {
	defer close(p.events)
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		ev, ok := models.ParseMoverEvent(line)
		if !ok {
			slog.Debug("mover output", "job_id", p.jobID, "line", string(line))
			continue
		}
		p.events <- ev
	}
	if err := scanner.Err(); err != nil {
		slog.Error("error reading mover output", "job_id", p.jobID, "error", err)
		// Keep draining so the process never blocks on a full pipe.
		io.Copy(io.Discard, r)
	}
}

func (p *process) wait(w *io.PipeWriter) {
	err := p.cmd.Wait()
	w.Close()
	p.cleanup()

	if err != nil {
		p.err = errs.E(errs.ToolFailed, "mover.sync", fmt.Errorf("rclone exited: %w", err))
	}
	slog.Info("Mover exited", "job_id", p.jobID, "error", err)
	close(p.done)
}

func (p *process) Events() <-chan models.MoverEvent { return p.events }

func (p *process) Done() <-chan struct{} { return p.done }

// Err is the exit error; it is only meaningful once Done is closed.
func (p *process) Err() error { return p.err }

func (p *process) Kill() error {
	err := p.cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}
