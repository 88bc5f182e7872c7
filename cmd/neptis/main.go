package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"neptis/internal/client"
	"neptis/internal/config"
	"neptis/internal/errs"
	"neptis/internal/ipc"
	"neptis/internal/logging"
	"neptis/internal/models"
	"neptis/internal/repository"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs. The caller must defer app.Close().
type app struct {
	cfg  *config.Config
	repo *repository.Repository
	log  io.Closer
}

var (
	flagVerbose     bool
	flagNoUpdate    bool
	flagBeta        bool
	flagDefaultFuse string
	flagServer      string
)

func newApp() (*app, error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if flagDefaultFuse != "" {
		cfg.SetDefaultMount(flagDefaultFuse)
	}

	logCfg := cfg.GetLogging()
	if flagVerbose {
		logCfg.Level = "debug"
	} else if logCfg.Level == "" || logCfg.Level == "info" {
		logCfg.Level = "warn"
	}
	closer := logging.Setup(logCfg, os.Stderr)

	repo, err := repository.New(cfg.GetPaths().Database)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &app{cfg: cfg, repo: repo, log: closer}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
	a.log.Close()
}

// profile returns the profile named by --server, or the default one.
func (a *app) profile(ctx context.Context) (*models.Profile, error) {
	if flagServer != "" {
		return a.repo.GetProfile(ctx, flagServer)
	}
	p, err := a.repo.GetDefaultProfile(ctx)
	if errs.Is(err, errs.NotFound) {
		return nil, fmt.Errorf("no default server; pass --server or run 'neptis server default <name>'")
	}
	return p, err
}

// login builds a client for the selected profile and signs in, prompting for
// any credential the profile does not store.
func (a *app) login(ctx context.Context) (*client.Client, *models.Profile, error) {
	p, err := a.profile(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, err := client.NewFromProfile(p)
	if err != nil {
		return nil, nil, err
	}

	username, password := p.Username, p.Password
	if username == "" {
		if username, err = promptLine(fmt.Sprintf("Username for %s: ", p.ServerName)); err != nil {
			return nil, nil, err
		}
	}
	if password == "" {
		if password, err = promptPassword(fmt.Sprintf("Password for %s@%s: ", username, p.ServerName)); err != nil {
			return nil, nil, err
		}
	}
	if _, err := c.Login(ctx, username, password); err != nil {
		return nil, nil, fmt.Errorf("login to %s failed: %w", p.ServerName, err)
	}
	return c, p, nil
}

func (a *app) daemon() *ipc.Client {
	return ipc.NewClient(a.cfg.GetIPC().Addr())
}

// warnIfDaemonDown prints a warning when schedules exist but the background
// service does not answer.
func (a *app) warnIfDaemonDown(ctx context.Context) {
	schedules, err := a.repo.LoadSchedules(ctx)
	if err != nil || len(schedules) == 0 {
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := a.daemon().Ping(pingCtx); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: schedules are configured but the background service (neptisd) is not running.")
	}
}

var rootCmd = &cobra.Command{
	Use:          "neptis",
	Short:        "Client for a neptis backup server",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			return
		}
		defer a.Close()

		if flagNoUpdate || flagBeta {
			slog.Debug("update flags recorded", "no_update", flagNoUpdate, "beta", flagBeta)
		}
		if cmd.HasParent() && cmd.Parent() == transferCmd {
			return
		}
		a.warnIfDaemonDown(cmd.Context())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	pf.BoolVar(&flagNoUpdate, "no-update", false, "Do not check for a newer client")
	pf.BoolVar(&flagBeta, "beta", false, "Follow the beta release channel")
	pf.StringVar(&flagDefaultFuse, "default-fuse", "", "Default mount point (overrides "+config.EnvMount+")")
	pf.StringVarP(&flagServer, "server", "s", "", "Server profile to use instead of the default")
}
