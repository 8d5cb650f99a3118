// Package stats aggregates schedule time per tag type and compares it with
// monthly goals
package stats

import (
	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

// MonthlyTotals sums schedule durations in minutes per resolved tag type for
// the schedules dated in month. Completion does not affect the totals.
func MonthlyTotals(
	schedules []models.Schedule,
	items []models.TagItem,
	month string,
) map[string]int {
	totals := make(map[string]int)

	for i := range schedules {
		s := &schedules[i]

		if !timeutil.InMonth(s.Date, month) {
			continue
		}

		d := s.Duration()
		if d <= 0 {
			continue
		}

		totals[tagging.ScheduleType(s, items)] += d
	}

	return totals
}

// Percentage returns actual as a rounded percentage of goal. A zero goal
// yields 0. The result is not capped at 100.
func Percentage(actual, goal int) int {
	if goal <= 0 {
		return 0
	}

	return timeutil.Round(float64(actual) / float64(goal) * 100)
}

// ClampPercent limits p to [0,100] for progress bars.
func ClampPercent(p int) int {
	return min(max(p, 0), 100)
}

// VisibleTagTypes returns the tag types that have a goal or recorded time,
// in natural order.
func VisibleTagTypes(goal models.MonthlyGoal, totals map[string]int) []string {
	seen := make(map[string]bool)

	var out []string

	add := func(t string) {
		if t == "" || seen[t] {
			return
		}

		seen[t] = true
		out = append(out, t)
	}

	for _, g := range goal.Goals {
		add(g.TagType)
	}

	for t, mins := range totals {
		if mins > 0 {
			add(t)
		}
	}

	tagging.SortNatural(out)

	return out
}
