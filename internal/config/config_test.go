package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobal() {
	globalConfig = nil
	configOnce = sync.Once{}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "neptis")

	configContent := `
paths:
  home: "` + home + `"
  default_mount: "` + tmpDir + `/mnt"

ipc:
  host: "127.0.0.1"
  port: 50000
  shutdown_timeout: 5s

supervisor:
  tick_interval: 10s
  cancel_timeout: 1s
  reachability_retries: 3

mover:
  binary_name: "rclone"
  freshness: 48h
  extra_args: ["--fast-list"]

vfs:
  lookup_ttl: 5s
  dump_max_bytes: 1048576

watcher:
  enabled: true
  interval: 30s

logging:
  level: "debug"
  format: "json"
`

	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv(EnvMount, "")
	resetGlobal()

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, home, cfg.Paths.Home)
	assert.Equal(t, filepath.Join(home, "neptis.db"), cfg.Paths.Database)
	assert.Equal(t, filepath.Join(home, "work"), cfg.Paths.WorkDir)
	assert.Equal(t, tmpDir+"/mnt", cfg.Paths.DefaultMount)
	assert.DirExists(t, cfg.Paths.WorkDir)

	assert.Equal(t, "127.0.0.1:50000", cfg.IPC.Addr())
	assert.Equal(t, 5*time.Second, cfg.IPC.ShutdownTimeout)

	assert.Equal(t, 10*time.Second, cfg.Supervisor.TickInterval)
	assert.Equal(t, time.Second, cfg.Supervisor.CancelTimeout)
	assert.Equal(t, 3, cfg.Supervisor.ReachabilityRetries)
	assert.Equal(t, 5*time.Second, cfg.Supervisor.BackupPollInterval, "unset values take defaults")

	assert.Equal(t, 48*time.Hour, cfg.Mover.Freshness)
	assert.Equal(t, []string{"--fast-list"}, cfg.Mover.ExtraArgs)

	assert.Equal(t, 5*time.Second, cfg.VFS.LookupTTL)
	assert.Equal(t, 10*time.Second, cfg.VFS.DumpTTL)
	assert.Equal(t, int64(1048576), cfg.VFS.DumpMaxBytes)

	assert.True(t, cfg.Watcher.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Watcher.Interval)
	assert.Equal(t, 5, cfg.Watcher.MaxErrors)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestConfigMissingFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv(EnvMount, "")

	cfg, err := loadConfig(filepath.Join(tmpDir, "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, ".neptis"), cfg.Paths.Home)
	assert.Equal(t, filepath.Join(tmpDir, ".neptis", "mnt"), cfg.Paths.DefaultMount)
	assert.Equal(t, DefaultIPCPort, cfg.IPC.Port)
	assert.Equal(t, 30*time.Second, cfg.Supervisor.TickInterval)
	assert.Equal(t, 3*time.Second, cfg.Supervisor.CancelTimeout)
	assert.Equal(t, 2, cfg.Supervisor.ReachabilityRetries)
	assert.Equal(t, 2*time.Second, cfg.Supervisor.ReachabilityDelay)
	assert.Equal(t, int64(1<<30), cfg.VFS.DumpMaxBytes)
	assert.Equal(t, 15*time.Second, cfg.Watcher.Interval)
	assert.Equal(t, 5*time.Minute, cfg.Watcher.Blacklist)
	assert.Equal(t, "rclone", cfg.Mover.BinaryName)
	assert.DirExists(t, cfg.Paths.Home)
}

func TestConfigMountEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv(EnvMount, "/media/neptis")

	cfg, err := loadConfig(filepath.Join(tmpDir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/media/neptis", cfg.Paths.DefaultMount)

	cfg.SetDefaultMount("/elsewhere")
	assert.Equal(t, "/elsewhere", cfg.GetPaths().DefaultMount)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/neptis.yaml")
	assert.Equal(t, "/etc/neptis.yaml", DefaultPath())

	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", "/home/bob")
	assert.Equal(t, "/home/bob/.neptis/config.yaml", DefaultPath())
}

func TestConfigValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvMount, "")

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "invalid port - too high",
			mutate:      func(c *Config) { c.IPC.Port = 99999 },
			expectError: true,
			errorMsg:    "invalid ipc port",
		},
		{
			name:        "negative reachability retries",
			mutate:      func(c *Config) { c.Supervisor.ReachabilityRetries = -1 },
			expectError: true,
			errorMsg:    "reachability_retries cannot be negative",
		},
		{
			name:        "bad download url",
			mutate:      func(c *Config) { c.Mover.DownloadURL = "downloads.rclone.org" },
			expectError: true,
			errorMsg:    "invalid mover download_url",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.Logging.Level = "loud" },
			expectError: true,
			errorMsg:    "invalid logging level",
		},
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigGetters(t *testing.T) {
	cfg := &Config{
		IPC:        IPCConfig{Host: "127.0.0.1", Port: 41720},
		Supervisor: SupervisorConfig{TickInterval: 30 * time.Second},
		Mover:      MoverConfig{BinaryName: "rclone", ExtraArgs: []string{"-v"}},
		VFS:        VFSConfig{LookupTTL: 10 * time.Second},
		Watcher:    WatcherConfig{MaxErrors: 5},
		Logging:    LoggingConfig{Level: "warn"},
	}

	assert.Equal(t, 41720, cfg.GetIPC().Port)
	assert.Equal(t, 30*time.Second, cfg.GetSupervisor().TickInterval)
	assert.Equal(t, 10*time.Second, cfg.GetVFS().LookupTTL)
	assert.Equal(t, 5, cfg.GetWatcher().MaxErrors)
	assert.Equal(t, "warn", cfg.GetLogging().Level)

	mover := cfg.GetMover()
	mover.ExtraArgs[0] = "changed"
	assert.Equal(t, "-v", cfg.Mover.ExtraArgs[0], "getter returns a copy")
}

func TestLoadConfigWithEnvVars(t *testing.T) {
	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")

	configContent := `
paths:
  home: "${NEPTIS_TEST_HOME}"
ipc:
  port: ${NEPTIS_TEST_PORT}
`
	t.Setenv("NEPTIS_TEST_HOME", home)
	t.Setenv("NEPTIS_TEST_PORT", "45000")

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	resetGlobal()
	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, home, cfg.Paths.Home)
	assert.Equal(t, 45000, cfg.IPC.Port)
}

func TestConfigInvalidYAML(t *testing.T) {
	invalidYAML := `
ipc:
  port: invalid_port
`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")
	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	resetGlobal()

	_, err = Load(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestWatchForChanges(t *testing.T) {
	cfg := &Config{}
	ch := cfg.WatchForChanges()

	cfg.notifyWatchers()
	cfg.notifyWatchers()

	select {
	case <-ch:
	default:
		t.Fatal("expected a change notification")
	}
}
