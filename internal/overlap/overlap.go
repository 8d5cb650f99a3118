// Package overlap decides whether a candidate schedule may be placed among
// the existing schedules of the same day
package overlap

import (
	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

// collides applies the three-way interval test. Touching boundaries are not
// a collision.
func collides(cs, ce, es, ee int) bool {
	switch {
	case cs >= es && cs < ee:
		return true
	case ce > es && ce <= ee:
		return true
	case cs <= es && ce >= ee:
		return true
	}

	return false
}

// Conflicts returns the schedules on the candidate's date (other than the
// candidate itself) whose interval intersects the candidate's.
func Conflicts(
	existing []models.Schedule,
	candidate *models.Schedule,
) []models.Schedule {
	cs, err := timeutil.ToMinutes(candidate.Start)
	if err != nil {
		return nil
	}

	ce, err := timeutil.ToMinutes(candidate.End)
	if err != nil {
		return nil
	}

	var out []models.Schedule

	for i := range existing {
		s := existing[i]

		if s.Date != candidate.Date || s.ID == candidate.ID {
			continue
		}

		es, err := timeutil.ToMinutes(s.Start)
		if err != nil {
			continue
		}

		ee, err := timeutil.ToMinutes(s.End)
		if err != nil {
			continue
		}

		if collides(cs, ce, es, ee) {
			out = append(out, s)
		}
	}

	return out
}

// IsOverlapping reports whether candidate intersects any other schedule on
// its date.
func IsOverlapping(
	existing []models.Schedule,
	candidate *models.Schedule,
) bool {
	return len(Conflicts(existing, candidate)) > 0
}
