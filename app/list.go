package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/internal/ui"
	"github.com/ggoeuh/DAL-sub000/schedule"
)

const (
	noSchedulesMsg = "No schedules found for %s"
)

// period is an inclusive range of dates.
type period struct {
	from  string
	to    string
	label string
}

func (p period) contains(date string) bool {
	return p.from <= date && date <= p.to
}

// periodOf returns the day, week or month around date.
func periodOf(date string, week, month bool) (period, error) {
	switch {
	case month:
		m := timeutil.MonthOf(date)

		return period{from: m + "-01", to: m + "-31", label: m}, nil
	case week:
		from, err := timeutil.WeekStart(date)
		if err != nil {
			return period{}, err
		}

		to, err := timeutil.AddDays(from, timeutil.DaysInAWeek-1)
		if err != nil {
			return period{}, err
		}

		return period{from: from, to: to, label: from + " ~ " + to}, nil
	}

	return period{from: date, to: date, label: date}, nil
}

// schedulesIn returns the schedules in p sorted by date and start.
func schedulesIn(all []models.Schedule, p period) []models.Schedule {
	out := []models.Schedule{}

	for _, s := range all {
		if p.contains(s.Date) {
			out = append(out, s)
		}
	}

	schedule.SortByTime(out)

	return out
}

// printSchedulesTable prints a schedule table to the command-line.
func printSchedulesTable(w io.Writer, b *models.Bundle, schedules []models.Schedule) {
	tableBody := make([][]string, len(schedules))

	for i := range schedules {
		s := &schedules[i]

		tag := s.Tag
		if tag != "" {
			tagType := tagging.ScheduleType(s, b.TagItems)
			tag = ui.Swatch(tagging.DisplayColor(b.Tags, tagType), tag)
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			s.ID,
			s.Date,
			s.Start + "-" + s.End,
			s.Title,
			tag,
			ui.Status(s.Done),
		}
	}

	tableBody = append([][]string{
		{"#", "ID", "DATE", "TIME", "TITLE", "TAG", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listSchedules prints schedules as a table or as JSON.
func listSchedules(
	w io.Writer,
	b *models.Bundle,
	p period,
	asJSON bool,
) error {
	schedules := schedulesIn(b.Schedules, p)

	if asJSON {
		out, err := json.Marshal(schedules)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, string(out))

		return nil
	}

	if len(schedules) == 0 {
		pterm.Info.Printfln(noSchedulesMsg, p.label)
		return nil
	}

	printSchedulesTable(w, b, schedules)

	return nil
}

// listAction handles the list command and prints the schedules of a day,
// week or month.
func listAction(ctx *cli.Context) error {
	date, err := dateArg(ctx, timeutil.FormatDate(timeNow()))
	if err != nil {
		return err
	}

	p, err := periodOf(date, ctx.Bool("week"), ctx.Bool("all-month"))
	if err != nil {
		return err
	}

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	b, err := e.gw.Load(ctx.Context, e.user())
	if err != nil {
		return err
	}

	return listSchedules(os.Stdout, &b, p, ctx.Bool("json"))
}
