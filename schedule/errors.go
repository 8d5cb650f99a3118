package schedule

import (
	"errors"

	"github.com/ggoeuh/DAL-sub000/internal/apperr"
)

var (
	ErrOverlap = &apperr.Error{
		Message: "overlaps with %q (%s-%s) on %s",
	}

	ErrBusy = &apperr.Error{
		Message: "another gesture is already in progress",
	}

	ErrNotIdle = &apperr.Error{
		Message: "no gesture is in progress",
	}

	ErrOutsideDay = &apperr.Error{
		Message: "schedule would end after 24:00 (%s)",
	}

	ErrInvalidRange = &apperr.Error{
		Message: "start (%s) must be before end (%s)",
	}

	ErrInvalidTime = &apperr.Error{
		Message: "invalid time %q: use HH:MM",
	}

	ErrInvalidDate = &apperr.Error{
		Message: "invalid date %q: use yyyy-MM-dd",
	}

	ErrRecurrence = &apperr.Error{
		Message: "invalid recurrence: %s",
	}

	ErrNotFound = &apperr.Error{
		Message: "schedule %q not found",
	}

	ErrEmptyTitle = &apperr.Error{
		Message: "title cannot be empty",
	}

	ErrDuplicateID = &apperr.Error{
		Message: "schedule id %q is used more than once",
	}
)

// IsRejection reports whether err is a validation rejection that leaves the
// board unchanged.
func IsRejection(err error) bool {
	for _, e := range []error{
		ErrOverlap,
		ErrBusy,
		ErrOutsideDay,
		ErrInvalidRange,
		ErrInvalidTime,
		ErrInvalidDate,
		ErrRecurrence,
		ErrEmptyTitle,
	} {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
