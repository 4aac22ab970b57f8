// Package config resolves tada settings from defaults, a TOML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Defaults.
const (
	DefaultBackend  = BackendFile
	DefaultKey      = "my-todos"
	DefaultLogLevel = "warn"
	DefaultTheme    = "classic"
	DefaultColor    = "auto"
)

// Config holds every setting the CLI and TUI read.
type Config struct {
	Backend  string `toml:"backend"`
	DataDir  string `toml:"data_dir"`
	Key      string `toml:"key"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	Theme    string `toml:"theme"`
	Color    string `toml:"color"` // auto | always | never
	Group    bool   `toml:"group"`

	// File is the config file that was read, empty when none.
	File string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.DataDir = defaultDataDir()
	cfg.Key = DefaultKey
	cfg.LogLevel = DefaultLogLevel
	cfg.Theme = DefaultTheme
	cfg.Color = DefaultColor
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "tada.db")
}

// TUILogFile is where the interactive screen logs when no log_file is set.
func (c *Config) TUILogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "tada.log")
}

func validate(cfg *Config) error {
	switch cfg.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want file, sqlite or memory)", cfg.Backend)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	switch cfg.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q", cfg.Color)
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return fmt.Errorf("key is empty")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("data dir is empty")
	}
	return nil
}
