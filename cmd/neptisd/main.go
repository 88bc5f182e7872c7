package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"neptis/internal/client"
	"neptis/internal/config"
	"neptis/internal/fingerprint"
	"neptis/internal/gatekeeper"
	"neptis/internal/interfaces"
	"neptis/internal/ipc"
	"neptis/internal/logging"
	"neptis/internal/models"
	"neptis/internal/mover"
	"neptis/internal/notifications"
	"neptis/internal/repository"
	"neptis/internal/supervisor"
	"neptis/internal/wake"
	"neptis/internal/watcher"
)

var version = "dev"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("daemon failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := config.DefaultPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser := logging.Setup(cfg.GetLogging(), os.Stdout)
	defer func() { logCloser.Close() }()
	slog.Info("configuration loaded", "config_path", configPath, "version", version)

	dbPath := cfg.GetPaths().Database
	repo, err := repository.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repo.Close()
	slog.Info("database initialized", "path", dbPath)

	mv := mover.New(cfg.GetMover(), cfg.GetPaths().WorkDir, afero.NewOsFs())
	if _, err := mv.CleanTemp(); err != nil {
		slog.Warn("failed to clean mover temp files", "error", err)
	}

	notifier := notifications.NewDesktopNotifier(cfg)

	sup := supervisor.New(cfg.GetSupervisor(), supervisor.Deps{
		Store:    repo,
		Clients:  newClient,
		Wakers:   newWaker,
		Gate:     gatekeeper.New(cfg.GetSupervisor()),
		Hasher:   fingerprint.New(afero.NewOsFs()),
		Mover:    mv,
		Notifier: notifier,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sup.Start(ctx); err != nil {
		return fmt.Errorf("failed to start supervisor: %w", err)
	}

	if cfg.GetWatcher().Enabled {
		w := watcher.New(cfg.GetWatcher(), repo, newClient, notifier)
		go w.Run(ctx)
		slog.Info("message watcher started", "interval", cfg.GetWatcher().Interval)
	}

	ipcConfig := cfg.GetIPC()
	server := ipc.NewServer(ipcConfig.Addr(), sup, version)
	if err := server.Start(); err != nil {
		sup.Stop(context.Background())
		return fmt.Errorf("failed to start IPC server: %w", err)
	}

	// Watch for configuration changes
	reloadDone := make(chan struct{})
	go func() {
		defer close(reloadDone)
		changes := cfg.WatchForChanges()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				slog.Info("configuration changed, updating logging")
				old := logCloser
				logCloser = logging.Setup(cfg.GetLogging(), os.Stdout)
				closeQuietly(old)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	slog.Info("shutdown signal received, initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ipcConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("IPC server shutdown error", "error", err)
	}

	// Kills running movers and records their jobs as cancelled.
	if err := sup.Stop(shutdownCtx); err != nil {
		slog.Error("supervisor shutdown error", "error", err)
	}

	cancel()
	<-reloadDone

	slog.Info("shutdown completed")
	return nil
}

func newClient(p *models.Profile) (interfaces.ServerAPI, error) {
	c, err := client.NewFromProfile(p)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newWaker(p *models.Profile) (interfaces.Waker, error) {
	if !p.HasWake() {
		return nil, nil
	}
	w, err := wake.NewClient(p.WakeEndpoint, p.WakeSecret)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Debug("failed to close log file", "error", err)
	}
}
