// Package board draws a user's schedules as a multi-day half-hour grid in the
// terminal and turns mouse gestures into moves, resizes and copies
package board

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/schedule"
	"github.com/ggoeuh/DAL-sub000/store"
)

const (
	headerLines = 2
	footerLines = 2
	gutterWidth = 6
	minColWidth = 8

	noticeTick  = 500 * time.Millisecond
	defaultTop  = "08:00"
	defaultDays = 3
)

// Feed carries change notifications from the board's background work
// (auto-scroll, save results) into the event loop.
type Feed chan struct{}

// NewFeed returns a Feed ready to be passed as schedule.Options.OnChange.
func NewFeed() Feed {
	return make(Feed, 1)
}

// Notify signals a change without blocking.
func (f Feed) Notify() {
	select {
	case f <- struct{}{}:
	default:
	}
}

// Options configures the grid.
type Options struct {
	Feed Feed
	// Days is the number of day columns.
	Days int
	// SlotHeight is the number of terminal rows per half-hour slot.
	SlotHeight int
	// EdgeZone is the width in columns of the auto-scroll zones at the left
	// and right borders.
	EdgeZone  int
	DarkTheme bool
	Debug     bool
}

type (
	changedMsg struct{}
	tickMsg    struct{}
	savedMsg   struct {
		result store.Result
	}
)

// pointer is the cell of the last press or motion.
type pointer struct {
	col int
	row int
}

// Model is the bubbletea model for the grid.
type Model struct {
	ctx       context.Context
	board     *schedule.Board
	feed      Feed
	help      help.Model
	styles    styles
	selected  string
	status    string
	pressDate string
	press     pointer
	cursor    pointer
	opts      Options
	width     int
	height    int
	scroll    int
	ticking   bool
	quitting  bool
}

// New returns a model over b.
func New(ctx context.Context, b *schedule.Board, opts Options) *Model {
	if opts.Days <= 0 {
		opts.Days = defaultDays
	}

	if opts.SlotHeight <= 0 {
		opts.SlotHeight = 1
	}

	if opts.EdgeZone < 0 {
		opts.EdgeZone = 0
	}

	m := &Model{
		ctx:    ctx,
		board:  b,
		feed:   opts.Feed,
		opts:   opts,
		help:   help.New(),
		styles: newStyles(opts.DarkTheme),
		width:  gutterWidth + opts.Days*minColWidth*2,
		height: headerLines + footerLines + timeutil.SlotsPerDay*opts.SlotHeight,
	}

	m.scroll = timeutil.MustMinutes(defaultTop) / timeutil.SlotMinutes *
		opts.SlotHeight
	m.clampScroll()

	return m
}

// Run starts the interactive grid and blocks until the user quits.
func Run(ctx context.Context, b *schedule.Board, opts Options) error {
	m := New(ctx, b, opts)

	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()

	return err
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.feed == nil {
		return nil
	}

	feed := m.feed

	return func() tea.Msg {
		<-feed
		return changedMsg{}
	}
}

func (m *Model) waitForSave() tea.Cmd {
	p := m.board.LastSave()
	if p == nil {
		return nil
	}

	ctx := m.ctx

	return func() tea.Msg {
		return savedMsg{result: p.Wait(ctx)}
	}
}

// tick keeps redrawing while a notice is visible so that it disappears
// once it expires.
func (m *Model) tick() tea.Cmd {
	if m.ticking {
		return nil
	}

	if _, ok := m.board.Notice(); !ok {
		return nil
	}

	m.ticking = true

	return tea.Tick(noticeTick, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// dates returns the visible dates, with the focused date in the middle.
func (m *Model) dates() []string {
	focus := m.board.Focus()

	first, err := timeutil.AddDays(focus, -(m.opts.Days-1)/2)
	if err != nil {
		return []string{focus}
	}

	out := make([]string, 0, m.opts.Days)

	for i := range m.opts.Days {
		d, err := timeutil.AddDays(first, i)
		if err != nil {
			break
		}

		out = append(out, d)
	}

	return out
}

func (m *Model) colWidth() int {
	w := (m.width - gutterWidth) / m.opts.Days

	return max(w, minColWidth)
}

func (m *Model) gridRows() int {
	return max(m.height-headerLines-footerLines, 1)
}

func (m *Model) totalRows() int {
	return timeutil.SlotsPerDay * m.opts.SlotHeight
}

func (m *Model) clampScroll() {
	maxScroll := max(m.totalRows()-m.gridRows(), 0)
	m.scroll = min(max(m.scroll, 0), maxScroll)
}

// cell converts screen coordinates to a day column and an absolute grid
// row. col is -1 over the time gutter; ok is false outside the grid rows.
func (m *Model) cell(x, y int) (p pointer, ok bool) {
	p.row = m.scroll + y - headerLines

	if y < headerLines || y >= headerLines+m.gridRows() ||
		p.row >= m.totalRows() {
		return p, false
	}

	if x < gutterWidth {
		p.col = -1
		return p, true
	}

	p.col = min((x-gutterWidth)/m.colWidth(), m.opts.Days-1)

	return p, true
}

// dateAt returns the date of column col, clamping into the visible range.
func (m *Model) dateAt(col int) string {
	dates := m.dates()

	return dates[min(max(col, 0), len(dates)-1)]
}

// rowMinutes is the start of the slot drawn on absolute row.
func (m *Model) rowMinutes(row int) int {
	return row / m.opts.SlotHeight * timeutil.SlotMinutes
}

// hit returns the schedule drawn at p.
func (m *Model) hit(p pointer) (models.Schedule, bool) {
	if p.col < 0 {
		return models.Schedule{}, false
	}

	mins := m.rowMinutes(p.row)

	for _, s := range m.board.Day(m.dateAt(p.col)) {
		if s.StartMinutes() <= mins && mins < s.EndMinutes() {
			return s, true
		}
	}

	return models.Schedule{}, false
}

// edgeDir returns -1 or +1 when x lies in an auto-scroll zone.
func (m *Model) edgeDir(x int) int {
	if m.opts.EdgeZone == 0 {
		return 0
	}

	if x < gutterWidth+m.opts.EdgeZone {
		return -1
	}

	if x >= gutterWidth+m.colWidth()*m.opts.Days-m.opts.EdgeZone {
		return 1
	}

	return 0
}

// dropY is the vertical grid offset used when releasing at p. Bottom edges
// snap to the end of the row under the pointer.
func (m *Model) dropY(p pointer) float64 {
	if r, ok := m.board.Mode().(schedule.Resizing); ok && r.Edge == schedule.Bottom {
		return float64(p.row + 1)
	}

	return float64(p.row)
}
