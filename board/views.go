package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/schedule"
)

const (
	ghostChar = "░"
	lineChar  = "┈"
	doneMark  = "✓ "
)

// span is a half-open range of minutes.
type span struct {
	date  string
	start int
	end   int
}

func (s span) contains(date string, mins int) bool {
	return s.date == date && s.start <= mins && mins < s.end
}

// ghost returns where the current gesture would land.
func (m *Model) ghost() (span, bool) {
	mode := m.board.Mode()

	var src models.Schedule

	switch g := mode.(type) {
	case schedule.Dragging:
		s, ok := m.board.Schedule(g.ScheduleID)
		if !ok {
			return span{}, false
		}

		src = s
	case schedule.Resizing:
		s, ok := m.board.Schedule(g.ScheduleID)
		if !ok {
			return span{}, false
		}

		src = s
	case schedule.Copying:
		src = g.Source
	default:
		return span{}, false
	}

	at, ok := m.board.PreviewTime(m.dropY(m.cursor))
	if !ok {
		return span{}, false
	}

	mins := timeutil.MustMinutes(at)

	if r, ok := mode.(schedule.Resizing); ok {
		out := span{date: src.Date, start: src.StartMinutes(), end: src.EndMinutes()}
		if r.Edge == schedule.Top {
			out.start = mins
		} else {
			out.end = mins
		}

		return out, out.start < out.end
	}

	return span{
		date:  m.dateAt(m.cursor.col),
		start: mins,
		end:   mins + src.Duration(),
	}, true
}

func (m *Model) headerView() string {
	focus := m.board.Focus()

	week, _ := timeutil.WeekStart(focus)

	title := fmt.Sprintf("dal · %s · week of %s", m.board.User(), week)

	mode := m.board.Mode()
	if _, idle := mode.(schedule.Idle); !idle {
		title += " · " + schedule.ModeName(mode)
	}

	return m.styles.title.Render(title)
}

func (m *Model) dayHeaderView() string {
	var s strings.Builder

	s.WriteString(strings.Repeat(" ", gutterWidth))

	focus := m.board.Focus()
	w := m.colWidth()

	for _, d := range m.dates() {
		label := d[len("2006-"):]

		if wd, err := timeutil.WeekdayIndex(d); err == nil {
			label += " " + wd.String()
		}

		style := m.styles.dayHeader
		if d == focus {
			style = m.styles.focusDay
		}

		s.WriteString(style.Width(w).MaxWidth(w).MaxHeight(1).Render(label))
	}

	return s.String()
}

func (m *Model) cellView(
	b *models.Bundle,
	day []models.Schedule,
	date string,
	row int,
	g span,
	hasGhost bool,
) string {
	w := m.colWidth() - 1
	mins := m.rowMinutes(row)

	for i := range day {
		s := &day[i]

		if s.StartMinutes() > mins || mins >= s.EndMinutes() {
			continue
		}

		top := s.StartMinutes() / timeutil.SlotMinutes * m.opts.SlotHeight

		var text string

		switch row - top {
		case 0:
			text = s.Title
			if s.Done {
				text = doneMark + text
			}
		case 1:
			text = s.Start + "-" + s.End
		case 2:
			text = s.Tag
		}

		tagType := tagging.ScheduleType(s, b.TagItems)

		style := m.styles.block.
			Background(lipgloss.Color(tagging.DisplayColor(b.Tags, tagType)))

		if s.ID == m.selected {
			style = style.Inherit(m.styles.selected)
		}

		if s.Done {
			style = style.Faint(true)
		}

		return style.Width(w).MaxWidth(w).MaxHeight(1).Render(text) + " "
	}

	if hasGhost && g.contains(date, mins) {
		return m.styles.ghost.Render(strings.Repeat(ghostChar, w)) + " "
	}

	if row%(2*m.opts.SlotHeight) == 0 {
		return m.styles.hourLine.Render(strings.Repeat(lineChar, w)) + " "
	}

	return strings.Repeat(" ", w+1)
}

func (m *Model) gridView() string {
	b := m.board.Bundle()
	dates := m.dates()

	days := make(map[string][]models.Schedule, len(dates))
	for _, d := range dates {
		days[d] = m.board.Day(d)
	}

	g, hasGhost := m.ghost()

	lines := make([]string, 0, m.gridRows())

	for r := range m.gridRows() {
		row := m.scroll + r
		if row >= m.totalRows() {
			break
		}

		var line strings.Builder

		label := strings.Repeat(" ", gutterWidth)
		if row%m.opts.SlotHeight == 0 {
			label = fmt.Sprintf(
				"%-*s",
				gutterWidth,
				timeutil.ToTimeString(m.rowMinutes(row)),
			)
		}

		line.WriteString(m.styles.gutter.Render(label))

		for _, d := range dates {
			line.WriteString(m.cellView(&b, days[d], d, row, g, hasGhost))
		}

		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

func (m *Model) footerView() string {
	var status string

	if n, ok := m.board.Notice(); ok {
		status = m.styles.notice[n.Kind].Render(n.Text)
	} else {
		parts := []string{}

		if m.selected != "" {
			if s, ok := m.board.Schedule(m.selected); ok {
				parts = append(parts, fmt.Sprintf(
					"%s %s %s-%s",
					s.Title,
					s.Date,
					s.Start,
					s.End,
				))
			}
		}

		if m.status != "" {
			parts = append(parts, m.status)
		}

		status = m.styles.status.Render(strings.Join(parts, " · "))
	}

	return status + "\n" + m.help.View(defaultKeymap)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(m.headerView())
	s.WriteString("\n")
	s.WriteString(m.dayHeaderView())
	s.WriteString("\n")
	s.WriteString(m.gridView())
	s.WriteString("\n")
	s.WriteString(m.footerView())

	return m.styles.base.Render(s.String())
}
