package store

import "github.com/ggoeuh/DAL-sub000/internal/apperr"

var (
	errDalRunning = &apperr.Error{
		Message: "is dal already running? Only one instance can use the bolt database at a time",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend %q",
	}

	errEmptyUser = &apperr.Error{
		Message: "user id cannot be empty",
	}

	errOpenDB = &apperr.Error{
		Message: "opening database failed",
	}

	errLoad = &apperr.Error{
		Message: "loading data for %q failed",
	}

	errSave = &apperr.Error{
		Message: "saving data for %q failed",
	}

	// ErrSaveAbandoned is reported when the context ends before a save
	// completes.
	ErrSaveAbandoned = &apperr.Error{
		Message: "save abandoned before completion",
	}
)
