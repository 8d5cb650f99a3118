package board

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/schedule"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()

		return m, nil

	case changedMsg:
		return m, tea.Batch(m.waitForChange(), m.tick())

	case tickMsg:
		m.ticking = false
		return m, m.tick()

	case savedMsg:
		if msg.result.Success {
			m.status = "saved " + time.Now().Format("15:04:05")
		}

		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.opts.Debug {
		slog.Debug(spew.Sdump(msg))
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		m.quitting = true
		m.board.Release()

		return m, tea.Quit

	case key.Matches(msg, defaultKeymap.prevDay):
		m.board.ShiftFocus(-1)

	case key.Matches(msg, defaultKeymap.nextDay):
		m.board.ShiftFocus(1)

	case key.Matches(msg, defaultKeymap.prevWeek):
		m.jumpDays(-timeutil.DaysInAWeek)

	case key.Matches(msg, defaultKeymap.nextWeek):
		m.jumpDays(timeutil.DaysInAWeek)

	case key.Matches(msg, defaultKeymap.today):
		_ = m.board.SetFocus(timeutil.FormatDate(time.Now()))

	case key.Matches(msg, defaultKeymap.up):
		m.scroll -= m.opts.SlotHeight
		m.clampScroll()

	case key.Matches(msg, defaultKeymap.down):
		m.scroll += m.opts.SlotHeight
		m.clampScroll()

	case key.Matches(msg, defaultKeymap.next):
		m.selectNext()

	case key.Matches(msg, defaultKeymap.toggle):
		if m.selected == "" {
			break
		}

		if _, err := m.board.ToggleDone(m.ctx, m.selected); err != nil {
			m.board.Notify(schedule.NoticeWarning, err.Error())
			break
		}

		return m, tea.Batch(m.waitForSave(), m.tick())

	case key.Matches(msg, defaultKeymap.del):
		if m.selected == "" {
			break
		}

		_ = m.board.Delete(m.ctx, m.selected)
		m.selected = ""

		return m, m.waitForSave()

	case key.Matches(msg, defaultKeymap.esc):
		m.board.Release()
		m.selected = ""

	case key.Matches(msg, defaultKeymap.help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, m.tick()
}

func (m *Model) jumpDays(n int) {
	d, err := timeutil.AddDays(m.board.Focus(), n)
	if err != nil {
		return
	}

	_ = m.board.SetFocus(d)
}

// selectNext cycles the selection through the focused day's schedules.
func (m *Model) selectNext() {
	day := m.board.Day(m.board.Focus())
	if len(day) == 0 {
		m.selected = ""
		return
	}

	next := 0

	for i, s := range day {
		if s.ID == m.selected {
			next = (i + 1) % len(day)
			break
		}
	}

	m.selected = day[next].ID

	// bring the selection into view
	top := day[next].StartMinutes() / timeutil.SlotMinutes * m.opts.SlotHeight
	if top < m.scroll || top >= m.scroll+m.gridRows() {
		m.scroll = top
		m.clampScroll()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= m.opts.SlotHeight
		m.clampScroll()

		return m, nil

	case tea.MouseButtonWheelDown:
		m.scroll += m.opts.SlotHeight
		m.clampScroll()

		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.handlePress(msg)
		}

	case tea.MouseActionMotion:
		if _, idle := m.board.Mode().(schedule.Idle); idle {
			break
		}

		if p, ok := m.cell(msg.X, msg.Y); ok {
			m.cursor = p
		}

		m.board.ArmAutoScroll(m.edgeDir(msg.X))

	case tea.MouseActionRelease:
		return m, m.handleRelease(msg)
	}

	return m, m.tick()
}

func (m *Model) handlePress(msg tea.MouseMsg) {
	p, ok := m.cell(msg.X, msg.Y)
	if !ok {
		return
	}

	s, ok := m.hit(p)
	if !ok {
		m.selected = ""
		return
	}

	m.selected = s.ID
	m.press = p
	m.pressDate = m.dateAt(p.col)
	m.cursor = p

	y := float64(p.row)
	top := timeutil.SlotPixelPosition(s.Start, float64(m.opts.SlotHeight))
	bottom := timeutil.SlotPixelPosition(s.End, float64(m.opts.SlotHeight))

	var err error

	switch {
	case msg.Alt:
		edge := schedule.Bottom
		if y-top < (bottom-top)/2 {
			edge = schedule.Top
		}

		err = m.board.BeginResize(s.ID, edge)
	case msg.Ctrl:
		err = m.board.BeginCopy(s.ID, y-top)
	default:
		err = m.board.BeginDrag(s.ID, y-top)
	}

	if err != nil {
		m.board.Notify(schedule.NoticeWarning, err.Error())
	}
}

func (m *Model) handleRelease(msg tea.MouseMsg) tea.Cmd {
	mode := m.board.Mode()
	if _, idle := mode.(schedule.Idle); idle {
		return nil
	}

	p, ok := m.cell(msg.X, msg.Y)
	if !ok {
		p = m.cursor
	}

	// a click without movement selects only
	if p == m.press && m.dateAt(p.col) == m.pressDate {
		m.board.Release()
		return nil
	}

	s, err := m.board.Drop(m.ctx, schedule.DropTarget{
		Date: m.dateAt(p.col),
		Y:    m.dropY(p),
	})
	if err != nil {
		if !schedule.IsRejection(err) {
			m.board.Notify(schedule.NoticeError, err.Error())
		}

		return m.tick()
	}

	m.selected = s.ID

	return tea.Batch(m.waitForSave(), m.tick())
}
