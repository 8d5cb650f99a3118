package schedule

import (
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

// Recurrence describes how a created schedule repeats. The zero value means
// a single occurrence on the base date.
type Recurrence struct {
	// Weekdays selects the days of each repeated week. Empty means the
	// base date's weekday.
	Weekdays []timeutil.Weekday
	// RepeatCount is the number of weeks, at least 1.
	RepeatCount int
	// Interval is the number of weeks between repetitions, at least 1.
	Interval int
}

func (r Recurrence) withDefaults() Recurrence {
	if r.RepeatCount == 0 && r.Interval == 0 {
		r.RepeatCount, r.Interval = 1, 1
	}

	return r
}

// ExpandRecurrence returns the dates of every occurrence, week by week and
// in weekday order within a week. Offsets are measured from baseDate's own
// weekday, so weekdays earlier in the week fall before baseDate.
func ExpandRecurrence(
	baseDate string,
	repeatCount, interval int,
	weekdays []timeutil.Weekday,
) ([]string, error) {
	if repeatCount < 1 {
		return nil, ErrRecurrence.Fmt("repeat count must be at least 1")
	}

	if interval < 1 {
		return nil, ErrRecurrence.Fmt("interval must be at least 1 week")
	}

	base, err := timeutil.WeekdayIndex(baseDate)
	if err != nil {
		return nil, ErrInvalidDate.Fmt(baseDate)
	}

	days := uniqueWeekdays(weekdays)
	for _, w := range days {
		if w < timeutil.Monday || w > timeutil.Sunday {
			return nil, ErrRecurrence.Fmt("unknown weekday")
		}
	}

	if len(days) == 0 {
		days = []timeutil.Weekday{base}
	}

	dates := make([]string, 0, repeatCount*len(days))

	for i := range repeatCount {
		for _, w := range days {
			offset := int(w-base) + i*timeutil.DaysInAWeek*interval

			d, err := timeutil.AddDays(baseDate, offset)
			if err != nil {
				return nil, ErrInvalidDate.Fmt(baseDate)
			}

			dates = append(dates, d)
		}
	}

	return dates, nil
}

func uniqueWeekdays(in []timeutil.Weekday) []timeutil.Weekday {
	seen := make(map[timeutil.Weekday]bool, len(in))
	out := make([]timeutil.Weekday, 0, len(in))

	for _, w := range in {
		if seen[w] {
			continue
		}

		seen[w] = true
		out = append(out, w)
	}

	return out
}
