// Package store persists per-user bundles and keeps the user registry
package store

import (
	"context"
	"log/slog"

	"github.com/ggoeuh/DAL-sub000/internal/config"
	"github.com/ggoeuh/DAL-sub000/internal/models"
)

// Gateway loads and saves complete user bundles. Implementations must return
// an empty normalised bundle for users that have never saved.
type Gateway interface {
	// Load returns the bundle stored for userID
	Load(ctx context.Context, userID string) (models.Bundle, error)
	// Save replaces everything stored for userID with b and registers the
	// user
	Save(ctx context.Context, userID string, b models.Bundle) error
	// ListUsers returns every user that has saved at least once
	ListUsers(ctx context.Context) ([]string, error)
	// Close ends the database connection
	Close() error
}

// Open connects to the backend selected in cfg.
func Open(cfg *config.Config) (Gateway, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return NewSQLStore(cfg.Storage.SQLitePath)
	case config.BackendBolt, "":
		return NewBoltStore(cfg.Storage.BoltPath)
	}

	return nil, errUnknownBackend.Fmt(cfg.Storage.Backend)
}

func logDecodeReport(userID string, report models.DecodeReport, err error) {
	if err != nil {
		slog.Warn(
			"stored bundle could not be parsed",
			slog.String("user", userID),
			slog.Any("error", err),
		)
	}

	if report.Clean() {
		return
	}

	slog.Warn(
		"stored bundle was repaired on load",
		slog.String("user", userID),
		slog.Any("coerced", report.Coerced),
		slog.Any("dropped", report.Dropped),
	)
}
