package schedule

import (
	"context"
	"slices"
	"strings"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/overlap"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

// Form holds the user-editable fields of a schedule.
type Form struct {
	// Date is the base date. Empty means the focused date.
	Date        string
	Title       string
	Description string
	Tag         string
	Start       string
	End         string
}

// validate checks c's bounds and its collisions with others. On success the
// date and times of c are rewritten in their canonical yyyy-MM-dd and HH:MM
// forms.
func validate(c *models.Schedule, others []models.Schedule) error {
	date, err := timeutil.ParseDate(c.Date)
	if err != nil {
		return ErrInvalidDate.Fmt(c.Date)
	}

	start, err := timeutil.ToMinutes(c.Start)
	if err != nil {
		return ErrInvalidTime.Fmt(c.Start)
	}

	end, err := timeutil.ToMinutes(c.End)
	if err != nil {
		return ErrInvalidTime.Fmt(c.End)
	}

	if end > timeutil.MinutesInADay {
		return ErrOutsideDay.Fmt(c.End)
	}

	if start >= end {
		return ErrInvalidRange.Fmt(c.Start, c.End)
	}

	c.Date = timeutil.FormatDate(date)
	c.Start = timeutil.ToTimeString(start)
	c.End = timeutil.ToTimeString(end)

	if conflicts := overlap.Conflicts(others, c); len(conflicts) > 0 {
		o := conflicts[0]
		return ErrOverlap.Fmt(o.Title, o.Start, o.End, o.Date)
	}

	return nil
}

// ValidateBundle checks every schedule in b the way board edits are checked
// and rewrites their dates and times canonically. It is used for bundles
// that arrive whole, such as API uploads.
func ValidateBundle(b *models.Bundle) error {
	seen := make(map[string]bool, len(b.Schedules))

	for i := range b.Schedules {
		s := &b.Schedules[i]

		if seen[s.ID] {
			return ErrDuplicateID.Fmt(s.ID)
		}

		seen[s.ID] = true

		if err := validate(s, b.Schedules[:i]); err != nil {
			return err
		}
	}

	return nil
}

// tagTypeFor returns the type to cache on a schedule tagged tagName.
func tagTypeFor(tagName, fallback string, items []models.TagItem) string {
	if t, ok := tagging.TypeOf(tagName, items); ok {
		return t
	}

	return fallback
}

// Create adds one schedule per date produced by rec. If any occurrence is
// invalid or collides with an existing schedule or an earlier occurrence,
// nothing is added.
func (b *Board) Create(
	ctx context.Context,
	f Form,
	rec Recurrence,
) ([]models.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	title := strings.TrimSpace(f.Title)
	if title == "" {
		return nil, b.rejectLocked("create", ErrEmptyTitle)
	}

	base := f.Date
	if base == "" {
		base = b.focus
	}

	rec = rec.withDefaults()

	dates, err := ExpandRecurrence(base, rec.RepeatCount, rec.Interval, rec.Weekdays)
	if err != nil {
		return nil, b.rejectLocked("create", err)
	}

	next := b.bundle.Clone()
	tagType := tagTypeFor(f.Tag, "", next.TagItems)
	created := make([]models.Schedule, 0, len(dates))

	for _, date := range dates {
		s := models.Schedule{
			ID:          b.opts.NewID(),
			Date:        date,
			Start:       f.Start,
			End:         f.End,
			Title:       title,
			Description: f.Description,
			Tag:         f.Tag,
			TagType:     tagType,
		}

		if err := validate(&s, next.Schedules); err != nil {
			return nil, b.rejectLocked("create", err)
		}

		next.Schedules = append(next.Schedules, s)
		created = append(created, s)
	}

	b.commitLocked(ctx, next)

	return created, nil
}

// Move places schedule id at date and start, keeping its duration.
func (b *Board) Move(
	ctx context.Context,
	id, date, start string,
) (models.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.moveLocked(ctx, id, date, start)
}

func (b *Board) moveLocked(
	ctx context.Context,
	id, date, start string,
) (models.Schedule, error) {
	i := b.bundle.ScheduleByID(id)
	if i < 0 {
		return models.Schedule{}, ErrNotFound.Fmt(id)
	}

	s, err := b.placed(b.bundle.Schedules[i], date, start)
	if err != nil {
		return models.Schedule{}, b.rejectLocked("move", err)
	}

	next := b.bundle.Clone()
	next.Schedules[i] = s

	b.commitLocked(ctx, next)

	return s, nil
}

// placed returns src relocated to date and start with its duration kept,
// validated against every other schedule.
func (b *Board) placed(
	src models.Schedule,
	date, start string,
) (models.Schedule, error) {
	startMins, err := timeutil.ToMinutes(start)
	if err != nil {
		return models.Schedule{}, ErrInvalidTime.Fmt(start)
	}

	s := src
	s.Date = date
	s.Start = timeutil.ToTimeString(startMins)
	s.End = timeutil.ToTimeString(startMins + src.Duration())

	if err := validate(&s, b.bundle.Schedules); err != nil {
		return models.Schedule{}, err
	}

	return s, nil
}

// Resize moves one edge of schedule id to hhmm. The other edge stays fixed.
func (b *Board) Resize(
	ctx context.Context,
	id string,
	edge Edge,
	hhmm string,
) (models.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.resizeLocked(ctx, id, edge, hhmm)
}

func (b *Board) resizeLocked(
	ctx context.Context,
	id string,
	edge Edge,
	hhmm string,
) (models.Schedule, error) {
	i := b.bundle.ScheduleByID(id)
	if i < 0 {
		return models.Schedule{}, ErrNotFound.Fmt(id)
	}

	mins, err := timeutil.ToMinutes(hhmm)
	if err != nil {
		return models.Schedule{}, b.rejectLocked("resize", ErrInvalidTime.Fmt(hhmm))
	}

	s := b.bundle.Schedules[i]

	if edge == Top {
		s.Start = timeutil.ToTimeString(mins)
	} else {
		s.End = timeutil.ToTimeString(mins)
	}

	if err := validate(&s, b.bundle.Schedules); err != nil {
		return models.Schedule{}, b.rejectLocked("resize", err)
	}

	next := b.bundle.Clone()
	next.Schedules[i] = s

	b.commitLocked(ctx, next)

	return s, nil
}

// Copy places a clone of schedule id at date and start under a new id.
func (b *Board) Copy(
	ctx context.Context,
	id, date, start string,
) (models.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.bundle.ScheduleByID(id)
	if i < 0 {
		return models.Schedule{}, ErrNotFound.Fmt(id)
	}

	return b.copyLocked(ctx, b.bundle.Schedules[i], date, start)
}

func (b *Board) copyLocked(
	ctx context.Context,
	src models.Schedule,
	date, start string,
) (models.Schedule, error) {
	src.ID = b.opts.NewID()
	src.Done = false
	src.TagType = tagTypeFor(src.Tag, src.TagType, b.bundle.TagItems)

	s, err := b.placed(src, date, start)
	if err != nil {
		return models.Schedule{}, b.rejectLocked("copy", err)
	}

	next := b.bundle.Clone()
	next.Schedules = append(next.Schedules, s)

	b.commitLocked(ctx, next)

	return s, nil
}

// Delete removes schedule id. Deleting an unknown id does nothing.
func (b *Board) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.bundle.ScheduleByID(id)
	if i < 0 {
		return nil
	}

	next := b.bundle.Clone()
	next.Schedules = slices.Delete(next.Schedules, i, i+1)

	b.commitLocked(ctx, next)

	return nil
}

// ToggleDone flips the completion flag of schedule id and returns the new
// value.
func (b *Board) ToggleDone(ctx context.Context, id string) (bool, error) {
	done, err := b.ToggleDoneAll(ctx, []string{id})
	if err != nil {
		return false, err
	}

	return done[0], nil
}

// ToggleDoneAll flips the completion flag of every schedule in ids in a
// single commit and returns the new values in order. An unknown id leaves
// every schedule unchanged.
func (b *Board) ToggleDoneAll(ctx context.Context, ids []string) ([]bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.bundle.Clone()
	done := make([]bool, len(ids))

	for n, id := range ids {
		i := next.ScheduleByID(id)
		if i < 0 {
			return nil, ErrNotFound.Fmt(id)
		}

		next.Schedules[i].Done = !next.Schedules[i].Done
		done[n] = next.Schedules[i].Done
	}

	b.commitLocked(ctx, next)

	return done, nil
}

// Update edits schedule id. Empty fields in f are left unchanged, except
// Description which is always replaced.
func (b *Board) Update(
	ctx context.Context,
	id string,
	f Form,
) (models.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.bundle.ScheduleByID(id)
	if i < 0 {
		return models.Schedule{}, ErrNotFound.Fmt(id)
	}

	s := b.bundle.Schedules[i]

	if t := strings.TrimSpace(f.Title); t != "" {
		s.Title = t
	}

	s.Description = f.Description

	if f.Tag != "" {
		s.Tag = f.Tag
		s.TagType = tagTypeFor(f.Tag, "", b.bundle.TagItems)
	}

	if f.Date != "" {
		s.Date = f.Date
	}

	if f.Start != "" {
		s.Start = f.Start
	}

	if f.End != "" {
		s.End = f.End
	}

	if err := validate(&s, b.bundle.Schedules); err != nil {
		return models.Schedule{}, b.rejectLocked("update", err)
	}

	next := b.bundle.Clone()
	next.Schedules[i] = s

	b.commitLocked(ctx, next)

	return s, nil
}

// Apply runs fn against a copy of the committed state and commits the copy
// if fn succeeds. It is used for tag, goal and plan edits.
func (b *Board) Apply(
	ctx context.Context,
	fn func(*models.Bundle) error,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.bundle.Clone()

	if err := fn(&next); err != nil {
		return b.rejectLocked("apply", err)
	}

	next.Normalize()

	b.commitLocked(ctx, next)

	return nil
}
