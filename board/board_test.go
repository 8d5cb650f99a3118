package board

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/schedule"
)

const (
	colW = 20
	// x inside the column of 2025-03-10, the focused day
	focusX = gutterWidth + colW + 5
	// x inside the column of 2025-03-11
	nextX = gutterWidth + 2*colW + 5
)

// screenY returns the terminal row that shows minute mins.
func screenY(mins int) int {
	return headerLines + mins/30
}

func newTestModel(t *testing.T) (*Model, *schedule.Board) {
	t.Helper()

	bundle := models.NewBundle()
	bundle.Tags = []models.Tag{{TagType: "학습", Color: "#4A90E2"}}
	bundle.TagItems = []models.TagItem{{TagType: "학습", TagName: "영어"}}
	bundle.Schedules = []models.Schedule{
		{ID: "a", Date: "2025-03-10", Start: "09:00", End: "10:00", Title: "영어 공부", Tag: "영어"},
		{ID: "b", Date: "2025-03-10", Start: "10:00", End: "11:00", Title: "회의"},
	}

	n := 0

	b := schedule.New("minji", bundle, nil, schedule.Options{
		Now: func() time.Time {
			return time.Date(2025, time.March, 10, 8, 0, 0, 0, time.Local)
		},
		NewID: func() string {
			n++
			return "copy-" + string(rune('0'+n))
		},
		SlotHeight:      1,
		AutoScrollDelay: time.Hour,
	})

	t.Cleanup(b.Close)

	m := New(context.Background(), b, Options{
		Days:       3,
		SlotHeight: 1,
		EdgeZone:   2,
	})

	m.Update(tea.WindowSizeMsg{
		Width:  gutterWidth + 3*colW,
		Height: headerLines + footerLines + 48,
	})

	return m, b
}

func press(m *Model, x, y int, alt, ctrl bool) {
	m.Update(tea.MouseMsg{
		X:      x,
		Y:      y,
		Alt:    alt,
		Ctrl:   ctrl,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
}

func motion(m *Model, x, y int) {
	m.Update(tea.MouseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionMotion,
	})
}

func release(m *Model, x, y int) {
	m.Update(tea.MouseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseButtonNone,
		Action: tea.MouseActionRelease,
	})
}

func keyPress(m *Model, s string) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}

	switch s {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}

	m.Update(msg)
}

func TestGeometry(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, 0, m.scroll)
	assert.Equal(t, colW, m.colWidth())
	assert.Equal(t, []string{"2025-03-09", "2025-03-10", "2025-03-11"}, m.dates())

	p, ok := m.cell(focusX, screenY(9*60))
	require.True(t, ok)
	assert.Equal(t, pointer{col: 1, row: 18}, p)

	s, ok := m.hit(p)
	require.True(t, ok)
	assert.Equal(t, "a", s.ID)

	p, ok = m.cell(2, screenY(9*60))
	require.True(t, ok)
	assert.Equal(t, -1, p.col)

	_, ok = m.cell(focusX, 0)
	assert.False(t, ok)

	assert.Equal(t, -1, m.edgeDir(gutterWidth))
	assert.Equal(t, 1, m.edgeDir(gutterWidth+3*colW-1))
	assert.Equal(t, 0, m.edgeDir(focusX))
}

func TestDragKeepsDuration(t *testing.T) {
	m, b := newTestModel(t)

	// grab the second row of the block
	press(m, focusX, screenY(9*60+30), false, false)

	_, dragging := b.Mode().(schedule.Dragging)
	require.True(t, dragging)

	motion(m, focusX, screenY(11*60+30))
	release(m, focusX, screenY(11*60+30))

	s, ok := b.Schedule("a")
	require.True(t, ok)
	assert.Equal(t, "11:00", s.Start)
	assert.Equal(t, "12:00", s.End)
	assert.IsType(t, schedule.Idle{}, b.Mode())
	assert.Equal(t, "a", m.selected)
}

func TestDragToAnotherDay(t *testing.T) {
	m, b := newTestModel(t)

	press(m, focusX, screenY(9*60), false, false)
	release(m, nextX, screenY(9*60))

	s, ok := b.Schedule("a")
	require.True(t, ok)
	assert.Equal(t, "2025-03-11", s.Date)
	assert.Equal(t, "09:00", s.Start)
}

func TestDragOntoNeighbourIsRejected(t *testing.T) {
	m, b := newTestModel(t)

	press(m, focusX, screenY(9*60), false, false)
	release(m, focusX, screenY(9*60+30))

	s, _ := b.Schedule("a")
	assert.Equal(t, "09:00", s.Start)

	n, ok := b.Notice()
	require.True(t, ok)
	assert.Equal(t, schedule.NoticeWarning, n.Kind)
	assert.Contains(t, m.View(), "회의")
}

func TestClickOnlySelects(t *testing.T) {
	m, b := newTestModel(t)

	press(m, focusX, screenY(10*60), false, false)
	release(m, focusX, screenY(10*60))

	s, _ := b.Schedule("b")
	assert.Equal(t, "10:00", s.Start)
	assert.Equal(t, "b", m.selected)
	assert.Nil(t, b.LastSave())
}

func TestAltResizesBottomEdge(t *testing.T) {
	m, b := newTestModel(t)

	require.NoError(t, b.Delete(context.Background(), "b"))

	press(m, focusX, screenY(9*60+30), true, false)

	r, ok := b.Mode().(schedule.Resizing)
	require.True(t, ok)
	assert.Equal(t, schedule.Bottom, r.Edge)

	release(m, focusX, screenY(10*60+30))

	s, _ := b.Schedule("a")
	assert.Equal(t, "09:00", s.Start)
	assert.Equal(t, "11:00", s.End)
}

func TestAltResizesTopEdge(t *testing.T) {
	m, b := newTestModel(t)

	press(m, focusX, screenY(10*60), true, false)

	r, ok := b.Mode().(schedule.Resizing)
	require.True(t, ok)
	assert.Equal(t, schedule.Top, r.Edge)

	release(m, focusX, screenY(10*60+30))

	s, _ := b.Schedule("b")
	assert.Equal(t, "10:30", s.Start)
	assert.Equal(t, "11:00", s.End)
}

func TestCtrlCopies(t *testing.T) {
	m, b := newTestModel(t)

	press(m, focusX, screenY(9*60), false, true)
	release(m, focusX, screenY(12*60))

	day := b.Day("2025-03-10")
	require.Len(t, day, 3)

	c, ok := b.Schedule("copy-1")
	require.True(t, ok)
	assert.Equal(t, "12:00", c.Start)
	assert.Equal(t, "13:00", c.End)
	assert.Equal(t, "영어 공부", c.Title)

	orig, _ := b.Schedule("a")
	assert.Equal(t, "09:00", orig.Start)
}

func TestEdgeZoneArmsAutoScroll(t *testing.T) {
	m, b := newTestModel(t)

	press(m, focusX, screenY(9*60), false, false)
	motion(m, gutterWidth, screenY(9*60))

	dir, armed := b.AutoScrollArmed()
	require.True(t, armed)
	assert.Equal(t, -1, dir)

	motion(m, focusX, screenY(9*60))

	_, armed = b.AutoScrollArmed()
	assert.False(t, armed)

	keyPress(m, "esc")
	assert.IsType(t, schedule.Idle{}, b.Mode())
}

func TestKeys(t *testing.T) {
	m, b := newTestModel(t)

	keyPress(m, "tab")
	assert.Equal(t, "a", m.selected)

	keyPress(m, "tab")
	assert.Equal(t, "b", m.selected)

	keyPress(m, " ")

	s, _ := b.Schedule("b")
	assert.True(t, s.Done)

	keyPress(m, "d")

	_, ok := b.Schedule("b")
	assert.False(t, ok)
	assert.Empty(t, m.selected)

	keyPress(m, "l")
	assert.Equal(t, "2025-03-11", b.Focus())

	keyPress(m, "]")
	assert.Equal(t, "2025-03-18", b.Focus())
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()

	for _, want := range []string{"minji", "2025-03-10", "09:00", "영어 공부", "03-10 월"} {
		assert.True(t, strings.Contains(out, want), "missing %q", want)
	}

	keyPress(m, "q")
	assert.Empty(t, m.View())
}
