package config

import (
	"log/slog"
	"strings"
	"time"
)

const (
	minSlotHeight  = 1
	maxSlotHeight  = 10
	minVisibleDays = 1
	maxVisibleDays = 7
	maxEdgeZone    = 10
	maxPort        = 65535

	minAutoScrollDelay = 50 * time.Millisecond
	maxAutoScrollDelay = 5 * time.Second
	minNoticeDuration  = 500 * time.Millisecond
	maxNoticeDuration  = 30 * time.Second
	maxReminderLead    = 24 * time.Hour
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Settings.User) == "" {
		return errEmptyUser
	}

	if c.Settings.LogLevel != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(c.Settings.LogLevel)); err != nil {
			return errInvalidLogLevel.Fmt(c.Settings.LogLevel)
		}
	}

	switch c.Storage.Backend {
	case BackendBolt, BackendSQLite:
	default:
		return errUnknownBackend.Fmt(c.Storage.Backend)
	}

	if err := c.validateBoard(); err != nil {
		return err
	}

	if c.Reminders.Lead < 0 || c.Reminders.Lead > maxReminderLead {
		return errOutOfRange.Fmt(
			"reminder lead",
			time.Duration(0),
			maxReminderLead,
			c.Reminders.Lead,
		)
	}

	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return errOutOfRange.Fmt("server port", 1, maxPort, c.Server.Port)
	}

	return nil
}

// validateBoard validates the BoardConfig.
func (c *Config) validateBoard() error {
	b := c.Board

	if b.SlotHeight < minSlotHeight || b.SlotHeight > maxSlotHeight {
		return errOutOfRange.Fmt(
			"slot height",
			minSlotHeight,
			maxSlotHeight,
			b.SlotHeight,
		)
	}

	if b.VisibleDays < minVisibleDays || b.VisibleDays > maxVisibleDays {
		return errOutOfRange.Fmt(
			"visible days",
			minVisibleDays,
			maxVisibleDays,
			b.VisibleDays,
		)
	}

	if b.AutoScrollDelay < minAutoScrollDelay ||
		b.AutoScrollDelay > maxAutoScrollDelay {
		return errOutOfRange.Fmt(
			"autoscroll delay",
			minAutoScrollDelay,
			maxAutoScrollDelay,
			b.AutoScrollDelay,
		)
	}

	if b.NoticeDuration < minNoticeDuration ||
		b.NoticeDuration > maxNoticeDuration {
		return errOutOfRange.Fmt(
			"notice duration",
			minNoticeDuration,
			maxNoticeDuration,
			b.NoticeDuration,
		)
	}

	if b.EdgeZone < 0 || b.EdgeZone > maxEdgeZone {
		return errOutOfRange.Fmt("edge zone", 0, maxEdgeZone, b.EdgeZone)
	}

	return nil
}
