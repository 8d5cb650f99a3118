package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ggoeuh/DAL-sub000/schedule"
)

type styles struct {
	base      lipgloss.Style
	title     lipgloss.Style
	dayHeader lipgloss.Style
	focusDay  lipgloss.Style
	gutter    lipgloss.Style
	empty     lipgloss.Style
	hourLine  lipgloss.Style
	block     lipgloss.Style
	selected  lipgloss.Style
	ghost     lipgloss.Style
	status    lipgloss.Style
	notice    map[schedule.NoticeKind]lipgloss.Style
}

func newStyles(dark bool) styles {
	fg := lipgloss.Color("#c0caf5")
	dim := lipgloss.Color("#565f89")
	primary := lipgloss.Color("#7aa2f7")

	if !dark {
		fg = lipgloss.Color("#343b58")
		dim = lipgloss.Color("#9699a3")
		primary = lipgloss.Color("#34548a")
	}

	return styles{
		base:      lipgloss.NewStyle(),
		title:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		dayHeader: lipgloss.NewStyle().Foreground(fg).Bold(true),
		focusDay: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Underline(true),
		gutter:   lipgloss.NewStyle().Foreground(dim),
		empty:    lipgloss.NewStyle().Foreground(dim),
		hourLine: lipgloss.NewStyle().Foreground(dim).Faint(true),
		block:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1b26")),
		selected: lipgloss.NewStyle().Bold(true).Underline(true),
		ghost:    lipgloss.NewStyle().Foreground(primary).Faint(true),
		status:   lipgloss.NewStyle().Foreground(dim),
		notice: map[schedule.NoticeKind]lipgloss.Style{
			schedule.NoticeInfo: lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7dcfff")),
			schedule.NoticeWarning: lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e0af68")),
			schedule.NoticeError: lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f7768e")).
				Bold(true),
		},
	}
}
