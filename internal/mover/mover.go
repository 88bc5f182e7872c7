// Package mover installs and drives the external sync tool (rclone).
package mover

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"neptis/internal/config"
	"neptis/internal/errs"
	"neptis/internal/interfaces"
	"neptis/internal/models"
)

const (
	// ConfigEnv names the variable rclone reads its config file path from.
	ConfigEnv = "RCLONE_CONFIG"
	// RemoteName is the single section written to each temp config.
	RemoteName = "neptis"

	tempPattern = "neptis-*.tmp"
)

// Mover runs rclone out of a private working directory. Binary and temp
// config files live on fs, which must be the OS filesystem for Sync.
type Mover struct {
	cfg     config.MoverConfig
	workDir string
	fs      afero.Fs
	http    *http.Client
	now     func() time.Time

	mu sync.Mutex
}

var _ interfaces.Mover = (*Mover)(nil)

func New(cfg config.MoverConfig, workDir string, fs afero.Fs) *Mover {
	return &Mover{
		cfg:     cfg,
		workDir: workDir,
		fs:      fs,
		http:    &http.Client{Timeout: 5 * time.Minute},
		now:     time.Now,
	}
}

// BinaryPath is where Install puts the tool.
func (m *Mover) BinaryPath() string {
	name := m.cfg.BinaryName
	if name == "" {
		name = "rclone"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}
	return filepath.Join(m.workDir, name)
}

// DownloadURL expands {os} and {arch} in the configured archive URL using
// rclone's platform names.
func (m *Mover) DownloadURL() string {
	goos := runtime.GOOS
	if goos == "darwin" {
		goos = "osx"
	}
	return strings.NewReplacer("{os}", goos, "{arch}", runtime.GOARCH).Replace(m.cfg.DownloadURL)
}

// Install makes sure a fresh binary is present and returns its path. The
// binary is fetched again once its access time is older than the
// configured freshness.
func (m *Mover) Install(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bin := m.BinaryPath()
	if info, err := m.fs.Stat(bin); err == nil {
		if m.cfg.Freshness <= 0 || m.now().Sub(accessTime(info)) < m.cfg.Freshness {
			return bin, nil
		}
		slog.Info("Mover binary is stale, downloading again", "path", bin, "accessed", accessTime(info))
	}

	if err := m.fs.MkdirAll(m.workDir, 0o755); err != nil {
		return "", errs.E(errs.ToolMissing, "mover.install", fmt.Errorf("failed to create work dir: %w", err))
	}

	archive, err := m.download(ctx)
	if err != nil {
		return "", errs.E(errs.ToolMissing, "mover.install", err)
	}
	if err := m.extract(archive, bin); err != nil {
		return "", errs.E(errs.ToolMissing, "mover.install", err)
	}

	now := m.now()
	if err := m.fs.Chtimes(bin, now, now); err != nil {
		slog.Warn("Failed to touch mover binary", "path", bin, "error", err)
	}
	slog.Info("Installed mover", "path", bin, "bytes", len(archive))
	return bin, nil
}

func (m *Mover) download(ctx context.Context) ([]byte, error) {
	url := m.DownloadURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: HTTP %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// extract copies the archive member named like the binary to bin,
// through a temporary name so a failed write never leaves a partial tool.
func (m *Mover) extract(archive []byte, bin string) error {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("invalid archive: %w", err)
	}

	want := filepath.Base(bin)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != want {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()

		partial := bin + ".part"
		out, err := m.fs.OpenFile(partial, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", partial, err)
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			m.fs.Remove(partial)
			return fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
		if err := out.Close(); err != nil {
			m.fs.Remove(partial)
			return fmt.Errorf("failed to write %s: %w", partial, err)
		}
		if err := m.fs.Chmod(partial, 0o755); err != nil {
			return fmt.Errorf("failed to chmod %s: %w", partial, err)
		}
		return m.fs.Rename(partial, bin)
	}
	return fmt.Errorf("archive has no %s", want)
}

// Obscure runs `rclone obscure` on plaintext.
func (m *Mover) Obscure(ctx context.Context, plaintext string) (string, error) {
	bin, err := m.Install(ctx)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, bin, "obscure", plaintext)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", errs.E(errs.ToolFailed, "mover.obscure", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())))
	}
	return strings.TrimSpace(string(out)), nil
}

// writeConfig materializes a one-remote config file for a run.
func (m *Mover) writeConfig(host, user, obscured string) (string, error) {
	if err := m.fs.MkdirAll(m.workDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create work dir: %w", err)
	}
	f, err := afero.TempFile(m.fs, m.workDir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", RemoteName)
	fmt.Fprintf(&b, "type = smb\n")
	fmt.Fprintf(&b, "host = %s\n", host)
	fmt.Fprintf(&b, "user = %s\n", user)
	fmt.Fprintf(&b, "pass = %s\n", obscured)

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		m.fs.Remove(f.Name())
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	if err := f.Close(); err != nil {
		m.fs.Remove(f.Name())
		return "", fmt.Errorf("failed to close config file: %w", err)
	}
	return f.Name(), nil
}

// SyncArgs builds the command line for one run.
func (m *Mover) SyncArgs(req models.SyncRequest) []string {
	args := []string{
		"sync",
		req.LocalFolder,
		RemoteName + ":" + req.RemoteFolder,
		"--use-json-log",
		"--stats", "1s",
		"--log-level", "NOTICE",
		"--stats-log-level", "NOTICE",
	}
	args = append(args, req.Options.Args()...)
	args = append(args, m.cfg.ExtraArgs...)
	return args
}

// Sync starts rclone for req and returns immediately. The temp config is
// removed once the process exits.
func (m *Mover) Sync(ctx context.Context, req models.SyncRequest) (interfaces.MoverProcess, error) {
	bin, err := m.Install(ctx)
	if err != nil {
		return nil, err
	}
	obscured, err := m.Obscure(ctx, req.SharePassword)
	if err != nil {
		return nil, err
	}
	cfgPath, err := m.writeConfig(req.Host, req.ShareUser, obscured)
	if err != nil {
		return nil, errs.E(errs.ToolFailed, "mover.sync", err)
	}
	cleanup := func() {
		if err := m.fs.Remove(cfgPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove mover config", "path", cfgPath, "error", err)
		}
	}

	args := m.SyncArgs(req)
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), ConfigEnv+"="+cfgPath)
	cmd.WaitDelay = 5 * time.Second

	slog.Info("Starting mover",
		"job_id", req.JobID,
		"source", req.LocalFolder,
		"dest", args[2],
		"args", args[3:])

	return start(cmd, req.JobID, cleanup)
}

// CleanTemp removes config files left behind by earlier runs.
func (m *Mover) CleanTemp() (int, error) {
	matches, err := afero.Glob(m.fs, filepath.Join(m.workDir, "*.tmp"))
	if err != nil {
		return 0, fmt.Errorf("failed to list temp files: %w", err)
	}

	removed := 0
	for _, p := range matches {
		if err := m.fs.Remove(p); err != nil {
			slog.Warn("Failed to remove temp file", "path", p, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		slog.Info("Removed stale mover config files", "count", removed)
	}
	return removed, nil
}
