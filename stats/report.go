package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/internal/ui"
)

const (
	barChartChar = "▇"
	noDataMsg    = "No schedules or goals found for %s"
)

// Row is one tag type's progress in a month.
type Row struct {
	TagType       string `json:"tagType"`
	Color         string `json:"color"`
	ActualMinutes int    `json:"actualMinutes"`
	GoalMinutes   int    `json:"goalMinutes"`
	Percent       int    `json:"percent"`
	Done          int    `json:"completedSchedules"`
	Scheduled     int    `json:"schedules"`
}

// Report is the monthly comparison of recorded time against goals.
type Report struct {
	Month         string `json:"month"`
	Rows          []Row  `json:"rows"`
	ActualMinutes int    `json:"actualMinutes"`
	GoalMinutes   int    `json:"goalMinutes"`
	Percent       int    `json:"percent"`
}

// Compute builds the report for month from b.
func Compute(b *models.Bundle, month string) Report {
	totals := MonthlyTotals(b.Schedules, b.TagItems, month)

	var goal models.MonthlyGoal
	if i := b.GoalFor(month); i >= 0 {
		goal = b.MonthlyGoals[i]
	}

	counts := make(map[string][2]int)

	for i := range b.Schedules {
		s := &b.Schedules[i]
		if !timeutil.InMonth(s.Date, month) {
			continue
		}

		t := tagging.ScheduleType(s, b.TagItems)
		c := counts[t]
		c[1]++

		if s.Done {
			c[0]++
		}

		counts[t] = c
	}

	r := Report{
		Month: month,
		Rows:  []Row{},
	}

	for _, tagType := range VisibleTagTypes(goal, totals) {
		row := Row{
			TagType:       tagType,
			Color:         tagging.DisplayColor(b.Tags, tagType),
			ActualMinutes: totals[tagType],
			Done:          counts[tagType][0],
			Scheduled:     counts[tagType][1],
		}

		if j := goal.Find(tagType); j >= 0 {
			row.GoalMinutes = goal.Goals[j].TargetMinutes()
		}

		row.Percent = Percentage(row.ActualMinutes, row.GoalMinutes)

		r.ActualMinutes += row.ActualMinutes
		r.GoalMinutes += row.GoalMinutes
		r.Rows = append(r.Rows, row)
	}

	r.Percent = Percentage(r.ActualMinutes, r.GoalMinutes)

	return r
}

// ToJSON encodes the report.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func formatMinutes(m int) string {
	hrs, mins := timeutil.MinsToHoursAndMins(m)

	if hrs == 0 {
		return fmt.Sprintf("%dm", mins)
	}

	if mins == 0 {
		return fmt.Sprintf("%dh", hrs)
	}

	return fmt.Sprintf("%dh %dm", hrs, mins)
}

func (r *Report) table() [][]string {
	data := [][]string{
		{"TAG TYPE", "ACTUAL", "GOAL", "PROGRESS", "DONE"},
	}

	for _, row := range r.Rows {
		goal := "-"
		if row.GoalMinutes > 0 {
			goal = formatMinutes(row.GoalMinutes)
		}

		data = append(data, []string{
			ui.Swatch(row.Color, row.TagType),
			formatMinutes(row.ActualMinutes),
			goal,
			progress(row),
			fmt.Sprintf("%d/%d", row.Done, row.Scheduled),
		})
	}

	return data
}

// progress colours a row's percentage: green once the goal is met, red
// below half of it.
func progress(row Row) string {
	label := fmt.Sprintf("%d%%", row.Percent)

	switch {
	case row.GoalMinutes == 0:
		return label
	case row.Percent >= 100:
		return ui.Green(label)
	case row.Percent < 50:
		return ui.Red(label)
	default:
		return ui.Yellow(label)
	}
}

func (r *Report) barChart() string {
	var bars pterm.Bars

	for _, row := range r.Rows {
		if row.GoalMinutes == 0 {
			continue
		}

		bars = append(bars, pterm.Bar{
			Label: row.TagType,
			Value: ClampPercent(row.Percent),
		})
	}

	if len(bars) == 0 {
		return ""
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return ui.Blue("\nGoal progress (%)") + chart
}

// Render writes a human readable report to w.
func (r *Report) Render(w io.Writer) {
	if len(r.Rows) == 0 {
		fmt.Fprintf(w, noDataMsg+"\n", r.Month)
		return
	}

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Month: %s", r.Month)

	summary := fmt.Sprintf(
		"%s\nTime logged: %s\nGoal: %s\nProgress: %s\n",
		ui.Blue("Summary"),
		ui.Green(formatMinutes(r.ActualMinutes)),
		ui.Green(formatMinutes(r.GoalMinutes)),
		ui.Green(fmt.Sprintf("%d%%", r.Percent)),
	)

	var table strings.Builder

	ui.PrintTable(r.table(), &table)

	fmt.Fprintln(
		w,
		strings.TrimSpace(header+summary+"\n"+table.String()+r.barChart()),
	)
}
