package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ggoeuh/DAL-sub000/internal/config"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Settings: config.SettingsConfig{
			User:     "default",
			LogLevel: "info",
			Cmd:      "",
		},
		Storage: config.StorageConfig{
			Backend: config.BackendBolt,
		},
		Board: config.BoardConfig{
			SlotHeight:      1,
			VisibleDays:     3,
			AutoScrollDelay: 300 * time.Millisecond,
			NoticeDuration:  3 * time.Second,
			EdgeZone:        2,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Reminders: config.ReminderConfig{
			Lead: 5 * time.Minute,
		},
		Server: config.ServerConfig{
			Port: 8080,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, configPath)

	// reading the written defaults back yields the same config
	again, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	modified := `settings:
  user: minji
  log_level: debug
  cmd: "git -C ~/notes commit -am sync"
storage:
  backend: sqlite
  sqlite_path: /tmp/dal.sqlite
  revert_on_failure: true
board:
  slot_height: 2
  visible_days: 7
  autoscroll_delay: 500ms
  notice_duration: 5s
  edge_zone: 3
notifications:
  enabled: false
reminders:
  lead: 10m
server:
  port: 9090
display:
  dark_theme: false
`

	require.NoError(t, os.WriteFile(configPath, []byte(modified), 0o600))

	want := &config.Config{
		Settings: config.SettingsConfig{
			User:     "minji",
			LogLevel: "debug",
			Cmd:      "git -C ~/notes commit -am sync",
		},
		Storage: config.StorageConfig{
			Backend:         config.BackendSQLite,
			BoltPath:        "/data/dal.db",
			SQLitePath:      "/tmp/dal.sqlite",
			RevertOnFailure: true,
		},
		Board: config.BoardConfig{
			SlotHeight:      2,
			VisibleDays:     7,
			AutoScrollDelay: 500 * time.Millisecond,
			NoticeDuration:  5 * time.Second,
			EdgeZone:        3,
		},
		Reminders: config.ReminderConfig{
			Lead: 10 * time.Minute,
		},
		Server: config.ServerConfig{
			Port: 9090,
		},
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithDefaultPaths("/data/dal.db", "/data/dal.sqlite"),
	)
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
	assert.Equal(t, "/tmp/dal.sqlite", cfg.DatabasePath())
}

func TestCLIOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	f := flag.NewFlagSet("dal", flag.ContinueOnError)
	_ = f.String("user", "", "")
	_ = f.String("backend", "", "")
	_ = f.String("log-level", "", "")
	_ = f.Int("port", 0, "")

	require.NoError(t, f.Parse([]string{"--user", "jisoo", "--backend", "SQLite", "--port", "3000"}))

	ctx := cli.NewContext(&cli.App{}, f, nil)

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	assert.Equal(t, "jisoo", cfg.Settings.User)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *config.Config)
		ok     bool
	}{
		{"defaults", func(*config.Config) {}, true},
		{"unknown backend", func(c *config.Config) { c.Storage.Backend = "mongo" }, false},
		{"empty user", func(c *config.Config) { c.Settings.User = " " }, false},
		{"bad log level", func(c *config.Config) { c.Settings.LogLevel = "loud" }, false},
		{"too many days", func(c *config.Config) { c.Board.VisibleDays = 8 }, false},
		{"zero slot height", func(c *config.Config) { c.Board.SlotHeight = 0 }, false},
		{"tiny debounce", func(c *config.Config) { c.Board.AutoScrollDelay = time.Millisecond }, false},
		{"negative lead", func(c *config.Config) { c.Reminders.Lead = -time.Minute }, false},
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := defaultConfig()
			tc.modify(c)

			err := c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
