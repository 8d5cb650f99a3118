package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyUser                 = "settings.user"
	keyLogLevel             = "settings.log_level"
	keyCmd                  = "settings.cmd"
	keyBackend              = "storage.backend"
	keyBoltPath             = "storage.bolt_path"
	keySQLitePath           = "storage.sqlite_path"
	keyRevertOnFailure      = "storage.revert_on_failure"
	keySlotHeight           = "board.slot_height"
	keyVisibleDays          = "board.visible_days"
	keyAutoScrollDelay      = "board.autoscroll_delay"
	keyNoticeDuration       = "board.notice_duration"
	keyEdgeZone             = "board.edge_zone"
	keyNotificationsEnabled = "notifications.enabled"
	keyReminderLead         = "reminders.lead"
	keyReminderSound        = "reminders.sound"
	keyServerPort           = "server.port"
	keyDarkTheme            = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing the defaults there if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyUser, "default")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyCmd, "")
	v.SetDefault(keyBackend, BackendBolt)
	v.SetDefault(keyBoltPath, "")
	v.SetDefault(keySQLitePath, "")
	v.SetDefault(keyRevertOnFailure, false)
	v.SetDefault(keySlotHeight, 1)
	v.SetDefault(keyVisibleDays, 3)
	v.SetDefault(keyAutoScrollDelay, "300ms")
	v.SetDefault(keyNoticeDuration, "3s")
	v.SetDefault(keyEdgeZone, 2)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyReminderLead, "5m")
	v.SetDefault(keyReminderSound, false)
	v.SetDefault(keyServerPort, 8080)
	v.SetDefault(keyDarkTheme, true)

	// values collected by the first-run prompt
	if c.Settings.User != "" {
		v.SetDefault(keyUser, c.Settings.User)
	}

	if c.Storage.Backend != "" {
		v.SetDefault(keyBackend, c.Storage.Backend)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errDecodeConfig.Wrap(err)
	}

	return nil
}
