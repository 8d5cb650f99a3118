// Package schedule keeps one user's schedules free of overlaps while they are
// created, moved, resized, copied and deleted
package schedule

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/store"
)

// DefaultNoticeDuration is how long a notice stays visible.
const DefaultNoticeDuration = 3 * time.Second

// Options configures a Board.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// NewID mints schedule ids. Defaults to uuid.NewString.
	NewID func() string
	// OnChange is called without the board lock held whenever state
	// changes outside of a direct call (auto-scroll, save results).
	OnChange        func()
	SlotHeight      float64
	NoticeDuration  time.Duration
	AutoScrollDelay time.Duration
	RevertOnFailure bool
}

// NoticeKind classifies a notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarning
	NoticeError
)

// Notice is a transient message for the user.
type Notice struct {
	Expires time.Time
	Text    string
	Kind    NoticeKind
}

// Board owns the committed schedules of one user.
type Board struct {
	mode      Mode
	opts      Options
	saver     *store.Saver
	lastSave  *store.Pending
	scroller  *AutoScroller
	notice    Notice
	userID    string
	focus     string
	bundle    models.Bundle
	persisted models.Bundle
	seq       uint64
	savedSeq  uint64
	mu        sync.Mutex
}

// New returns a board over an already loaded bundle. The bundle is treated
// as the last persisted state.
func New(
	userID string,
	b models.Bundle,
	saver *store.Saver,
	opts Options,
) *Board {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	if opts.SlotHeight <= 0 {
		opts.SlotHeight = 1
	}

	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = DefaultNoticeDuration
	}

	b.Normalize()

	board := &Board{
		userID:    userID,
		bundle:    b.Clone(),
		persisted: b.Clone(),
		saver:     saver,
		opts:      opts,
		mode:      Idle{},
		focus:     timeutil.FormatDate(opts.Now()),
	}

	board.scroller = NewAutoScroller(opts.AutoScrollDelay, board.autoScroll)

	return board
}

// Open loads userID's bundle through the saver's gateway.
func Open(
	ctx context.Context,
	saver *store.Saver,
	userID string,
	opts Options,
) (*Board, error) {
	b, err := saver.Gateway().Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return New(userID, b, saver, opts), nil
}

// User returns the board's user id.
func (b *Board) User() string {
	return b.userID
}

// Bundle returns a copy of the committed state.
func (b *Board) Bundle() models.Bundle {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.bundle.Clone()
}

// Schedule returns the schedule with id.
func (b *Board) Schedule(id string) (models.Schedule, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.bundle.ScheduleByID(id)
	if i < 0 {
		return models.Schedule{}, false
	}

	return b.bundle.Schedules[i], true
}

// Day returns the schedules on date ordered by start time.
func (b *Board) Day(date string) []models.Schedule {
	b.mu.Lock()
	defer b.mu.Unlock()

	return daySchedules(b.bundle.Schedules, date)
}

func daySchedules(all []models.Schedule, date string) []models.Schedule {
	var out []models.Schedule

	for _, s := range all {
		if s.Date == date {
			out = append(out, s)
		}
	}

	SortByTime(out)

	return out
}

// SortByTime orders schedules by date then start time.
func SortByTime(s []models.Schedule) {
	slices.SortStableFunc(s, func(a, b models.Schedule) int {
		if a.Date != b.Date {
			if a.Date < b.Date {
				return -1
			}

			return 1
		}

		return a.StartMinutes() - b.StartMinutes()
	})
}

// Mode returns the active interaction mode.
func (b *Board) Mode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.mode
}

// Focus returns the focused date.
func (b *Board) Focus() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.focus
}

// SetFocus focuses date.
func (b *Board) SetFocus(date string) error {
	if _, err := timeutil.ParseDate(date); err != nil {
		return ErrInvalidDate.Fmt(date)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.focus = date

	return nil
}

// ShiftFocus moves the focus dir days, wrapping within the Monday-first week
// of the focused date.
func (b *Board) ShiftFocus(dir int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shiftFocusLocked(dir)
}

func (b *Board) shiftFocusLocked(dir int) {
	w, err := timeutil.WeekdayIndex(b.focus)
	if err != nil {
		return
	}

	next := ((int(w)+dir)%timeutil.DaysInAWeek + timeutil.DaysInAWeek) %
		timeutil.DaysInAWeek

	if d, err := timeutil.AddDays(b.focus, next-int(w)); err == nil {
		b.focus = d
	}
}

func (b *Board) autoScroll(dir int) {
	b.mu.Lock()

	if !scrolls(b.mode) {
		b.mu.Unlock()
		return
	}

	b.shiftFocusLocked(dir)
	b.mu.Unlock()

	b.changed()
}

// ArmAutoScroll starts or keeps the auto-scroll timer for dir while a drag
// or copy is in progress. A zero dir or any other mode cancels it.
func (b *Board) ArmAutoScroll(dir int) {
	if dir == 0 || !scrolls(b.Mode()) {
		b.scroller.Cancel()
		return
	}

	b.scroller.Arm(dir)
}

// AutoScrollArmed reports the pending auto-scroll direction.
func (b *Board) AutoScrollArmed() (int, bool) {
	return b.scroller.Armed()
}

// Notice returns the current notice if it has not expired.
func (b *Board) Notice() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.notice.Text == "" || !b.opts.Now().Before(b.notice.Expires) {
		return Notice{}, false
	}

	return b.notice, true
}

// Notify shows text for the configured notice duration.
func (b *Board) Notify(kind NoticeKind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notifyLocked(kind, text)
}

func (b *Board) notifyLocked(kind NoticeKind, text string) {
	b.notice = Notice{
		Text:    text,
		Kind:    kind,
		Expires: b.opts.Now().Add(b.opts.NoticeDuration),
	}
}

// ClearNotice removes the current notice.
func (b *Board) ClearNotice() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notice = Notice{}
}

// LastSave returns the most recent save, or nil if nothing was saved.
func (b *Board) LastSave() *store.Pending {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.lastSave
}

// RevertToPersisted discards every change that has not been saved
// successfully.
func (b *Board) RevertToPersisted() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bundle = b.persisted.Clone()
}

// Close cancels timers and resets the interaction mode.
func (b *Board) Close() {
	b.scroller.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.mode = Idle{}
	b.notice = Notice{}
}

// rejectLocked records a validation failure and returns it unchanged.
func (b *Board) rejectLocked(op string, err error) error {
	b.notifyLocked(NoticeWarning, err.Error())

	slog.Info(
		"mutation rejected",
		slog.String("user", b.userID),
		slog.String("op", op),
		slog.Any("error", err),
	)

	return err
}

// commitLocked installs next as the committed state and persists it.
func (b *Board) commitLocked(ctx context.Context, next models.Bundle) {
	b.bundle = next
	b.seq++

	if b.saver == nil {
		return
	}

	seq := b.seq
	snapshot := next.Clone()

	b.lastSave = b.saver.SaveAsync(ctx, b.userID, snapshot, func(r store.Result) {
		b.settle(seq, snapshot, r)
	})
}

// settle records the outcome of save seq.
func (b *Board) settle(seq uint64, snapshot models.Bundle, r store.Result) {
	b.mu.Lock()

	if r.Success {
		if seq > b.savedSeq {
			b.savedSeq = seq
			b.persisted = snapshot
		}

		b.mu.Unlock()

		return
	}

	b.notifyLocked(NoticeError, "save failed: "+r.Error)

	if b.opts.RevertOnFailure && seq == b.seq {
		b.bundle = b.persisted.Clone()
	}

	b.mu.Unlock()

	b.changed()
}

func (b *Board) changed() {
	if b.opts.OnChange != nil {
		b.opts.OnChange()
	}
}
