package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
)

const (
	EnvConfig = "NEPTIS_CONFIG"
	EnvMount  = "NEPTIS_MNT"

	DefaultIPCPort = 41720
)

type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	IPC           IPCConfig           `yaml:"ipc"`
	Supervisor    SupervisorConfig    `yaml:"supervisor"`
	Mover         MoverConfig         `yaml:"mover"`
	VFS           VFSConfig           `yaml:"vfs"`
	Watcher       WatcherConfig       `yaml:"watcher"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`

	mu       sync.RWMutex
	watchers []chan<- struct{}
}

type PathsConfig struct {
	Home         string `yaml:"home"`
	Database     string `yaml:"database"`
	WorkDir      string `yaml:"work_dir"`
	DefaultMount string `yaml:"default_mount"`
}

type IPCConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the loopback address the daemon listens on.
func (c IPCConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SupervisorConfig struct {
	TickInterval        time.Duration `yaml:"tick_interval"`
	CancelTimeout       time.Duration `yaml:"cancel_timeout"`
	BackupPollInterval  time.Duration `yaml:"backup_poll_interval"`
	ReachabilityRetries int           `yaml:"reachability_retries"`
	ReachabilityDelay   time.Duration `yaml:"reachability_delay"`
	JobRetention        time.Duration `yaml:"job_retention"`
}

type MoverConfig struct {
	DownloadURL string        `yaml:"download_url"`
	BinaryName  string        `yaml:"binary_name"`
	Freshness   time.Duration `yaml:"freshness"`
	ExtraArgs   []string      `yaml:"extra_args"`
}

type VFSConfig struct {
	LookupTTL    time.Duration `yaml:"lookup_ttl"`
	DumpTTL      time.Duration `yaml:"dump_ttl"`
	DumpMaxBytes int64         `yaml:"dump_max_bytes"`
	LookupSize   int           `yaml:"lookup_size"`
}

type WatcherConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Interval  time.Duration `yaml:"interval"`
	MaxErrors int           `yaml:"max_errors"`
	Blacklist time.Duration `yaml:"blacklist"`
}

type NotificationsConfig struct {
	Desktop DesktopConfig `yaml:"desktop"`
}

type DesktopConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"app_name"`
	Icon    string `yaml:"icon"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// DefaultPath returns $NEPTIS_CONFIG, or <home>/.neptis/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".neptis", "config.yaml")
}

// Load loads configuration from file with environment variable expansion.
// A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	var err error
	configOnce.Do(func() {
		globalConfig, err = loadConfig(configPath)
		if err == nil && globalConfig != nil {
			go globalConfig.watchConfig(configPath)
		}
	})
	return globalConfig, err
}

// Get returns the global configuration instance
func Get() *Config {
	if globalConfig == nil {
		panic("configuration not loaded - call Load() first")
	}
	return globalConfig
}

// Default returns a configuration with every default applied and no file behind it.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func loadConfig(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("config file not found, using defaults", "path", configPath)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		content := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(content), &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := config.ensureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Paths.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Paths.Home = filepath.Join(home, ".neptis")
	}
	if c.Paths.Database == "" {
		c.Paths.Database = filepath.Join(c.Paths.Home, "neptis.db")
	}
	if c.Paths.WorkDir == "" {
		c.Paths.WorkDir = filepath.Join(c.Paths.Home, "work")
	}
	if mnt := os.Getenv(EnvMount); mnt != "" {
		c.Paths.DefaultMount = mnt
	}
	if c.Paths.DefaultMount == "" {
		c.Paths.DefaultMount = filepath.Join(c.Paths.Home, "mnt")
	}

	if c.IPC.Host == "" {
		c.IPC.Host = "127.0.0.1"
	}
	if c.IPC.Port == 0 {
		c.IPC.Port = DefaultIPCPort
	}
	if c.IPC.ShutdownTimeout == 0 {
		c.IPC.ShutdownTimeout = 10 * time.Second
	}

	if c.Supervisor.TickInterval == 0 {
		c.Supervisor.TickInterval = 30 * time.Second
	}
	if c.Supervisor.CancelTimeout == 0 {
		c.Supervisor.CancelTimeout = 3 * time.Second
	}
	if c.Supervisor.BackupPollInterval == 0 {
		c.Supervisor.BackupPollInterval = 5 * time.Second
	}
	if c.Supervisor.ReachabilityRetries == 0 {
		c.Supervisor.ReachabilityRetries = 2
	}
	if c.Supervisor.ReachabilityDelay == 0 {
		c.Supervisor.ReachabilityDelay = 2 * time.Second
	}
	if c.Supervisor.JobRetention == 0 {
		c.Supervisor.JobRetention = 90 * 24 * time.Hour
	}

	if c.Mover.DownloadURL == "" {
		c.Mover.DownloadURL = "https://downloads.rclone.org/rclone-current-{os}-{arch}.zip"
	}
	if c.Mover.BinaryName == "" {
		c.Mover.BinaryName = "rclone"
	}
	if c.Mover.Freshness == 0 {
		c.Mover.Freshness = 30 * 24 * time.Hour
	}

	if c.VFS.LookupTTL == 0 {
		c.VFS.LookupTTL = 10 * time.Second
	}
	if c.VFS.DumpTTL == 0 {
		c.VFS.DumpTTL = 10 * time.Second
	}
	if c.VFS.DumpMaxBytes == 0 {
		c.VFS.DumpMaxBytes = 1 << 30
	}
	if c.VFS.LookupSize == 0 {
		c.VFS.LookupSize = 4096
	}

	if c.Watcher.Interval == 0 {
		c.Watcher.Interval = 15 * time.Second
	}
	if c.Watcher.MaxErrors == 0 {
		c.Watcher.MaxErrors = 5
	}
	if c.Watcher.Blacklist == 0 {
		c.Watcher.Blacklist = 5 * time.Minute
	}

	if c.Notifications.Desktop.AppName == "" {
		c.Notifications.Desktop.AppName = "neptis"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.IPC.Port <= 0 || c.IPC.Port > 65535 {
		return fmt.Errorf("invalid ipc port: %d", c.IPC.Port)
	}

	if c.Supervisor.ReachabilityRetries < 0 {
		return fmt.Errorf("reachability_retries cannot be negative")
	}

	if c.VFS.DumpMaxBytes < 0 {
		return fmt.Errorf("dump_max_bytes cannot be negative")
	}

	if !strings.Contains(c.Mover.DownloadURL, "://") {
		return fmt.Errorf("invalid mover download_url: %q", c.Mover.DownloadURL)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	return nil
}

func (c *Config) ensureDirectories() error {
	dirs := []string{
		c.Paths.Home,
		filepath.Dir(c.Paths.Database),
		c.Paths.WorkDir,
	}

	if c.Logging.File != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// WatchForChanges returns a channel that receives a value after every
// successful reload. Notifications are dropped while one is pending.
func (c *Config) WatchForChanges() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan struct{}, 1)
	c.watchers = append(c.watchers, ch)
	return ch
}

// reloadSettle is how long the file must stay quiet before a reload. Editors
// often write a file in several steps.
const reloadSettle = 200 * time.Millisecond

func (c *Config) watchConfig(configPath string) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("Cannot watch config", "error", err)
		return
	}
	defer fw.Close()

	// Watch the directory so atomic rename-over saves are seen too.
	if err := fw.Add(filepath.Dir(configPath)); err != nil {
		slog.Debug("Config directory not watched", "path", configPath, "error", err)
		return
	}

	name := filepath.Base(configPath)
	var settle *time.Timer
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if settle != nil {
				settle.Stop()
			}
			settle = time.AfterFunc(reloadSettle, func() {
				if err := c.reload(configPath); err != nil {
					slog.Error("Config reload rejected, keeping previous settings", "path", configPath, "error", err)
					return
				}
				c.notifyWatchers()
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watch error", "error", err)
		}
	}
}

// reload swaps in the sections that are safe to change at runtime. Paths
// and the IPC address stay fixed for the life of the process.
func (c *Config) reload(configPath string) error {
	newConfig, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Supervisor = newConfig.Supervisor
	c.Mover = newConfig.Mover
	c.VFS = newConfig.VFS
	c.Watcher = newConfig.Watcher
	c.Notifications = newConfig.Notifications
	c.Logging = newConfig.Logging

	slog.Info("Config reloaded", "path", configPath)
	return nil
}

func (c *Config) notifyWatchers() {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, watcher := range c.watchers {
		select {
		case watcher <- struct{}{}:
		default:
		}
	}
}

// SetDefaultMount overrides the default FUSE mount point, as the CLI flag does.
func (c *Config) SetDefaultMount(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Paths.DefaultMount = path
}

func (c *Config) GetPaths() PathsConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Paths
}

func (c *Config) GetIPC() IPCConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.IPC
}

// GetSupervisor returns a copy of the supervisor configuration
func (c *Config) GetSupervisor() SupervisorConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Supervisor
}

// GetMover returns a copy of the mover configuration
func (c *Config) GetMover() MoverConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m := c.Mover
	m.ExtraArgs = append([]string(nil), c.Mover.ExtraArgs...)
	return m
}

func (c *Config) GetVFS() VFSConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.VFS
}

func (c *Config) GetWatcher() WatcherConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Watcher
}

// GetNotifications returns a copy of the notifications configuration
func (c *Config) GetNotifications() NotificationsConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Notifications
}

// GetLogging returns a copy of the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logging
}
