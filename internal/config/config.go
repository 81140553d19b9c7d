// ABOUTME: Lift configuration management with backend selection.
// ABOUTME: Handles settings, logging preferences, and the storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/harperreed/lift/internal/kvstore"
	"github.com/harperreed/lift/internal/storage"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"

	DefaultLogLevel     = "warn"
	DefaultHistoryLimit = 12
	DefaultRestSeconds  = 90
)

// Config stores lift configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts lift.db here. Badger puts its files in a badger/ folder here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/lift.
	DataDir string `json:"data_dir,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
	// LogFile enables a rotated log file; logs go to stderr when empty.
	LogFile string `json:"log_file,omitempty"`
	LogJSON bool   `json:"log_json,omitempty"`

	// HistoryLimit is how many sessions progress and history look back.
	HistoryLimit int `json:"history_limit,omitempty"`
	// RestSeconds is the rest period suggested after a completed set.
	RestSeconds int `json:"rest_seconds,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded, or "" for stderr.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

func (c *Config) GetHistoryLimit() int {
	if c.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.HistoryLimit
}

func (c *Config) GetRestSeconds() int {
	if c.RestSeconds <= 0 {
		return DefaultRestSeconds
	}
	return c.RestSeconds
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend in the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "lift.db"))
	case BackendBadger:
		return kvstore.Open(filepath.Join(dataDir, "badger"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// Keys lists the settings accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var setters = map[string]func(c *Config, value string) error{
	"backend": func(c *Config, value string) error {
		if value != BackendSQLite && value != BackendBadger {
			return fmt.Errorf("backend must be %q or %q", BackendSQLite, BackendBadger)
		}
		c.Backend = value
		return nil
	},
	"data_dir": func(c *Config, value string) error {
		c.DataDir = value
		return nil
	},
	"log_level": func(c *Config, value string) error {
		switch strings.ToLower(value) {
		case "trace", "debug", "info", "warn", "warning", "error", "fatal":
			c.LogLevel = strings.ToLower(value)
			return nil
		}
		return fmt.Errorf("unknown log level %q", value)
	},
	"log_file": func(c *Config, value string) error {
		c.LogFile = value
		return nil
	},
	"log_json": func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("log_json: %w", err)
		}
		c.LogJSON = b
		return nil
	},
	"history_limit": func(c *Config, value string) error {
		n, err := positiveInt(value)
		if err != nil {
			return fmt.Errorf("history_limit: %w", err)
		}
		c.HistoryLimit = n
		return nil
	},
	"rest_seconds": func(c *Config, value string) error {
		n, err := positiveInt(value)
		if err != nil {
			return fmt.Errorf("rest_seconds: %w", err)
		}
		c.RestSeconds = n
		return nil
	},
}

// Set changes one setting by its JSON key.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(c, strings.TrimSpace(value))
}

// Effective returns every setting with defaults applied, keyed like the JSON file.
func (c *Config) Effective() map[string]string {
	return map[string]string{
		"backend":       c.GetBackend(),
		"data_dir":      c.GetDataDir(),
		"log_level":     c.GetLogLevel(),
		"log_file":      c.GetLogFile(),
		"log_json":      strconv.FormatBool(c.LogJSON),
		"history_limit": strconv.Itoa(c.GetHistoryLimit()),
		"rest_seconds":  strconv.Itoa(c.GetRestSeconds()),
	}
}

func positiveInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "lift", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
