// Package remind raises desktop notifications shortly before each of the
// day's schedules starts
package remind

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/notify"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/store"
)

const (
	midnightSpec = "0 0 0 * * *"
	refreshSpec  = "@every 5m"
)

// Reminder is a notification due at At for one schedule.
type Reminder struct {
	At       time.Time
	Schedule models.Schedule
	TagType  string
}

// Title is the notification title.
func (r Reminder) Title() string {
	return r.Schedule.Title
}

// Message is the notification body.
func (r Reminder) Message() string {
	return fmt.Sprintf(
		"%s-%s (%s)",
		r.Schedule.Start,
		r.Schedule.End,
		r.TagType,
	)
}

// Due returns the reminders for the pending schedules on now's date that
// fire at or after now, ordered by time.
func Due(b *models.Bundle, lead time.Duration, now time.Time) []Reminder {
	day := timeutil.RoundToStart(now)
	date := timeutil.FormatDate(now)

	var out []Reminder

	for i := range b.Schedules {
		s := b.Schedules[i]

		if s.Date != date || s.Done || !s.Valid() {
			continue
		}

		at := day.Add(time.Duration(s.StartMinutes())*time.Minute - lead)
		if at.Before(now) {
			continue
		}

		out = append(out, Reminder{
			At:       at,
			Schedule: s,
			TagType:  tagging.ScheduleType(&s, b.TagItems),
		})
	}

	slices.SortStableFunc(out, func(a, b Reminder) int {
		return a.At.Compare(b.At)
	})

	return out
}

// Daemon keeps one cron entry per upcoming reminder of the current day.
type Daemon struct {
	cron     *cron.Cron
	gw       store.Gateway
	notifier *notify.Notifier
	now      func() time.Time
	userID   string
	entries  []cron.EntryID
	lead     time.Duration
	mu       sync.Mutex
}

// New returns a Daemon for userID.
func New(
	gw store.Gateway,
	userID string,
	lead time.Duration,
	n *notify.Notifier,
) *Daemon {
	return &Daemon{
		cron: cron.New(
			cron.WithLocation(time.Local),
			cron.WithSeconds(),
		),
		gw:       gw,
		userID:   userID,
		lead:     lead,
		notifier: n,
		now:      time.Now,
	}
}

// Refresh reloads the user's bundle and replaces the scheduled reminders.
func (d *Daemon) Refresh(ctx context.Context) error {
	b, err := d.gw.Load(ctx, d.userID)
	if err != nil {
		return err
	}

	due := Due(&b, d.lead, d.now())

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range d.entries {
		d.cron.Remove(id)
	}

	d.entries = d.entries[:0]

	for _, r := range due {
		id, err := d.cron.AddFunc(dateSpec(r.At), func() {
			d.fire(r)
		})
		if err != nil {
			return err
		}

		d.entries = append(d.entries, id)
	}

	slog.Debug(
		"reminders scheduled",
		slog.String("user", d.userID),
		slog.Int("count", len(due)),
	)

	return nil
}

// Pending returns the number of scheduled reminders.
func (d *Daemon) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entries)
}

// Run schedules today's reminders, refreshes them periodically and at
// midnight, and blocks until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Refresh(ctx); err != nil {
		return err
	}

	refresh := func() {
		if err := d.Refresh(ctx); err != nil {
			slog.Error(
				"refreshing reminders failed",
				slog.String("user", d.userID),
				slog.Any("error", err),
			)
		}
	}

	if _, err := d.cron.AddFunc(midnightSpec, refresh); err != nil {
		return err
	}

	if _, err := d.cron.AddFunc(refreshSpec, refresh); err != nil {
		return err
	}

	d.cron.Start()

	<-ctx.Done()

	stopped := d.cron.Stop()
	<-stopped.Done()

	return nil
}

func (d *Daemon) fire(r Reminder) {
	slog.Info(
		"reminder",
		slog.String("user", d.userID),
		slog.String("date", r.Schedule.Date),
		slog.String("id", r.Schedule.ID),
	)

	d.notifier.Notify(r.Title(), r.Message())
}

// dateSpec builds a cron spec (with seconds) matching t's minute on t's date.
func dateSpec(t time.Time) string {
	return fmt.Sprintf(
		"0 %d %d %d %d *",
		t.Minute(),
		t.Hour(),
		t.Day(),
		int(t.Month()),
	)
}
