// Package config loads dal's settings from the config file, command-line
// flags and the first-run prompt
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Settings      SettingsConfig     `mapstructure:"settings"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Board         BoardConfig        `mapstructure:"board"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Reminders     ReminderConfig     `mapstructure:"reminders"`
		Server        ServerConfig       `mapstructure:"server"`
		Display       DisplayConfig      `mapstructure:"display"`
	}

	// SettingsConfig holds general settings.
	SettingsConfig struct {
		User     string `mapstructure:"user"`
		LogLevel string `mapstructure:"log_level"`
		// Cmd is run after every successful save.
		Cmd string `mapstructure:"cmd"`
	}

	// StorageConfig selects and locates the persistence backend.
	StorageConfig struct {
		Backend         string `mapstructure:"backend"`
		BoltPath        string `mapstructure:"bolt_path"`
		SQLitePath      string `mapstructure:"sqlite_path"`
		RevertOnFailure bool   `mapstructure:"revert_on_failure"`
	}

	// BoardConfig holds settings for the interactive grid.
	BoardConfig struct {
		SlotHeight      int           `mapstructure:"slot_height"`
		VisibleDays     int           `mapstructure:"visible_days"`
		AutoScrollDelay time.Duration `mapstructure:"autoscroll_delay"`
		NoticeDuration  time.Duration `mapstructure:"notice_duration"`
		EdgeZone        int           `mapstructure:"edge_zone"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// ReminderConfig holds settings for the reminder daemon.
	ReminderConfig struct {
		Lead time.Duration `mapstructure:"lead"`
		// Sound plays a short chime alongside each reminder.
		Sound bool `mapstructure:"sound"`
	}

	// ServerConfig holds settings for the HTTP API.
	ServerConfig struct {
		Port int `mapstructure:"port"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

// Storage backends.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// WithDefaultPaths fills in database paths that the config file leaves
// empty.
func WithDefaultPaths(boltPath, sqlitePath string) Option {
	return func(c *Config) error {
		if c.Storage.BoltPath == "" {
			c.Storage.BoltPath = boltPath
		}

		if c.Storage.SQLitePath == "" {
			c.Storage.SQLitePath = sqlitePath
		}

		return nil
	}
}

// SlogLevel converts the configured log level.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level

	if err := l.UnmarshalText([]byte(c.Settings.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return l
}

// DatabasePath returns the file used by the selected backend.
func (c *Config) DatabasePath() string {
	if c.Storage.Backend == BackendSQLite {
		return c.Storage.SQLitePath
	}

	return c.Storage.BoltPath
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"user=%s backend=%s db=%s",
		c.Settings.User,
		strings.ToLower(c.Storage.Backend),
		c.DatabasePath(),
	)
}
