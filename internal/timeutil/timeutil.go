// Package timeutil provides the time arithmetic behind the half-hour
// scheduling grid: clock strings, minute offsets, slots, pixel offsets,
// calendar dates and weekdays.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const minutesInAnHour = 60

const (
	// SlotMinutes is the width of one grid slot.
	SlotMinutes = 30
	// MinutesInADay is the upper clock bound ("24:00").
	MinutesInADay = 1440
	// SlotsPerDay is the number of slots in a full day.
	SlotsPerDay = MinutesInADay / SlotMinutes
	// DaysInAWeek is the wrap-around width for focus shifting.
	DaysInAWeek = 7
)

const (
	// DateLayout is the ISO layout used for Schedule dates.
	DateLayout = "2006-01-02"
	// MonthLayout is the layout used for goal and plan months.
	MonthLayout = "2006-01"
)

var (
	errMalformedTime  = errors.New("time must be in HH:MM format")
	errMinuteRange    = errors.New("minutes must be between 00 and 59")
	errNegativeTime   = errors.New("time must not be negative")
	errUnknownWeekday = errors.New("unknown weekday")
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// ToMinutes parses an "HH:MM" string into minutes. Hours may exceed 23 so
// that duration values such as goal targets ("120:00") parse too.
func ToMinutes(hhmm string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok || h == "" || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", errMalformedTime, hhmm)
	}

	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errMalformedTime, hhmm)
	}

	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errMalformedTime, hhmm)
	}

	if hours < 0 || mins < 0 {
		return 0, errNegativeTime
	}

	if mins >= minutesInAnHour {
		return 0, errMinuteRange
	}

	return hours*minutesInAnHour + mins, nil
}

// MustMinutes is ToMinutes for strings produced by the grid itself. Malformed
// input yields 0.
func MustMinutes(hhmm string) int {
	m, err := ToMinutes(hhmm)
	if err != nil {
		return 0
	}

	return m
}

// ToTimeString formats minutes as a zero-padded "HH:MM" string. Values above
// a day are kept as is, which is what duration display needs.
func ToTimeString(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}

	hrs, mins := MinsToHoursAndMins(minutes)

	return fmt.Sprintf("%02d:%02d", hrs, mins)
}

// IsClock reports whether hhmm is a valid wall-clock bound on the grid,
// "00:00" through "24:00" inclusive.
func IsClock(hhmm string) bool {
	m, err := ToMinutes(hhmm)
	if err != nil {
		return false
	}

	return m <= MinutesInADay
}

// NearestSlot quantizes a pointer offset into the time of the closest slot
// boundary. slotHeight is the size of one slot in the same unit as
// pixelOffset.
func NearestSlot(pixelOffset, slotHeight float64) string {
	if slotHeight <= 0 || pixelOffset <= 0 {
		return ToTimeString(0)
	}

	index := Round(pixelOffset / slotHeight)
	if index > SlotsPerDay {
		index = SlotsPerDay
	}

	return ToTimeString(index * SlotMinutes)
}

// SlotPixelPosition is the inverse of NearestSlot.
func SlotPixelPosition(hhmm string, slotHeight float64) float64 {
	return float64(MustMinutes(hhmm)) / SlotMinutes * slotHeight
}

// ParseDate parses a yyyy-MM-dd date in the local timezone.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.Local)
}

// FormatDate formats t as yyyy-MM-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a yyyy-MM-dd date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	return FormatDate(t.AddDate(0, 0, n)), nil
}

// MonthOf returns the yyyy-MM prefix of a yyyy-MM-dd date.
func MonthOf(date string) string {
	if len(date) < len(MonthLayout) {
		return ""
	}

	return date[:len(MonthLayout)]
}

// InMonth reports whether date falls in month (yyyy-MM).
func InMonth(date, month string) bool {
	return month != "" && MonthOf(date) == month &&
		strings.HasPrefix(date[len(MonthLayout):], "-")
}

// CurrentMonth returns the yyyy-MM month of t.
func CurrentMonth(t time.Time) string {
	return t.Format(MonthLayout)
}

// ValidMonth reports whether s is a yyyy-MM month.
func ValidMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)

	return err == nil
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// Weekday is a Monday-first weekday index (Monday = 0, Sunday = 6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[string]Weekday{
	"mon": Monday, "monday": Monday, "월": Monday,
	"tue": Tuesday, "tuesday": Tuesday, "화": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday, "수": Wednesday,
	"thu": Thursday, "thursday": Thursday, "목": Thursday,
	"fri": Friday, "friday": Friday, "금": Friday,
	"sat": Saturday, "saturday": Saturday, "토": Saturday,
	"sun": Sunday, "sunday": Sunday, "일": Sunday,
}

var weekdayLabels = [DaysInAWeek]string{"월", "화", "수", "목", "금", "토", "일"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return ""
	}

	return weekdayLabels[w]
}

// ParseWeekday accepts English full or short names and Korean one-letter
// names.
func ParseWeekday(s string) (Weekday, error) {
	w, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errUnknownWeekday, s)
	}

	return w, nil
}

// WeekdayOf returns the Monday-first weekday of t.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % DaysInAWeek)
}

// WeekdayIndex returns the Monday-first weekday of a yyyy-MM-dd date.
func WeekdayIndex(date string) (Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}

	return WeekdayOf(t), nil
}

// WeekStart returns the Monday of the week containing date.
func WeekStart(date string) (string, error) {
	w, err := WeekdayIndex(date)
	if err != nil {
		return "", err
	}

	return AddDays(date, -int(w))
}

// FromStr parses a date expressed in natural language ("tomorrow",
// "next monday", "2025-03-10") relative to now.
func FromStr(s string) (time.Time, error) {
	if t, err := ParseDate(s); err == nil {
		return t, nil
	}

	cfg := &dps.Configuration{
		CurrentTime: time.Now(),
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}
