package app

import (
	"context"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/report"
	"github.com/ggoeuh/DAL-sub000/schedule"
)

// parseWeekdays splits a comma-delimited list of weekday names.
func parseWeekdays(s string) ([]timeutil.Weekday, error) {
	var out []timeutil.Weekday

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		w, err := timeutil.ParseWeekday(part)
		if err != nil {
			return nil, err
		}

		out = append(out, w)
	}

	return out, nil
}

// recurrenceOf reads the repetition flags of the add command.
func recurrenceOf(ctx *cli.Context) (schedule.Recurrence, error) {
	weekdays, err := parseWeekdays(ctx.String("weekdays"))
	if err != nil {
		return schedule.Recurrence{}, err
	}

	return schedule.Recurrence{
		Weekdays:    weekdays,
		RepeatCount: ctx.Int("repeat"),
		Interval:    ctx.Int("interval"),
	}, nil
}

// addAction handles the add command.
func addAction(ctx *cli.Context) error {
	date, err := dateArg(ctx, timeutil.FormatDate(timeNow()))
	if err != nil {
		return err
	}

	rec, err := recurrenceOf(ctx)
	if err != nil {
		return err
	}

	form := schedule.Form{
		Date:        date,
		Title:       ctx.String("title"),
		Description: ctx.String("desc"),
		Tag:         ctx.String("tag"),
		Start:       ctx.String("start"),
		End:         ctx.String("end"),
	}

	var created []models.Schedule

	err = withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		var err error

		created, err = b.Create(c, form, rec)

		return err
	})
	if err != nil {
		return err
	}

	report.ScheduleAdded(len(created))

	return nil
}

// placement reads --date and --start, defaulting to s's own values.
func placement(ctx *cli.Context, s models.Schedule) (date, start string, err error) {
	date, err = dateArg(ctx, s.Date)
	if err != nil {
		return "", "", err
	}

	start = firstNonEmptyString(strings.TrimSpace(ctx.String("start")), s.Start)

	return date, start, nil
}

// moveAction handles the move command.
func moveAction(ctx *cli.Context) error {
	id, err := argAt(ctx, 0, "ID")
	if err != nil {
		return err
	}

	var moved models.Schedule

	err = withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		s, ok := b.Schedule(id)
		if !ok {
			return schedule.ErrNotFound.Fmt(id)
		}

		date, start, err := placement(ctx, s)
		if err != nil {
			return err
		}

		moved, err = b.Move(c, id, date, start)

		return err
	})
	if err != nil {
		return err
	}

	report.Done("moved %q to %s %s-%s", moved.Title, moved.Date, moved.Start, moved.End)

	return nil
}

// resizeAction handles the resize command.
func resizeAction(ctx *cli.Context) error {
	id, err := argAt(ctx, 0, "ID")
	if err != nil {
		return err
	}

	edge, err := schedule.ParseEdge(ctx.String("edge"))
	if err != nil {
		return err
	}

	var resized models.Schedule

	err = withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		var err error

		resized, err = b.Resize(c, id, edge, ctx.String("to"))

		return err
	})
	if err != nil {
		return err
	}

	report.Done("%q now runs %s-%s", resized.Title, resized.Start, resized.End)

	return nil
}

// copyAction handles the copy command.
func copyAction(ctx *cli.Context) error {
	id, err := argAt(ctx, 0, "ID")
	if err != nil {
		return err
	}

	var copied models.Schedule

	err = withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		s, ok := b.Schedule(id)
		if !ok {
			return schedule.ErrNotFound.Fmt(id)
		}

		date, start, err := placement(ctx, s)
		if err != nil {
			return err
		}

		copied, err = b.Copy(c, id, date, start)

		return err
	})
	if err != nil {
		return err
	}

	report.Done(
		"copied %q to %s %s-%s (id %s)",
		copied.Title,
		copied.Date,
		copied.Start,
		copied.End,
		copied.ID,
	)

	return nil
}

// doneAction handles the done command which toggles completion.
func doneAction(ctx *cli.Context) error {
	ids := ctx.Args().Slice()
	if len(ids) == 0 {
		return errMissingArg.Fmt("ID")
	}

	var toggled []bool

	err := withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		var err error

		toggled, err = b.ToggleDoneAll(c, ids)

		return err
	})
	if err != nil {
		return err
	}

	for i, id := range ids {
		if toggled[i] {
			report.Done("%s marked as done", id)
		} else {
			report.Info("%s marked as pending", id)
		}
	}

	return nil
}

// editAction handles the edit command. Flags that are not set keep the
// schedule's current values.
func editAction(ctx *cli.Context) error {
	id, err := argAt(ctx, 0, "ID")
	if err != nil {
		return err
	}

	var edited models.Schedule

	err = withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		s, ok := b.Schedule(id)
		if !ok {
			return schedule.ErrNotFound.Fmt(id)
		}

		date, err := dateArg(ctx, s.Date)
		if err != nil {
			return err
		}

		desc := s.Description
		if ctx.IsSet("desc") {
			desc = ctx.String("desc")
		}

		edited, err = b.Update(c, id, schedule.Form{
			Date:        date,
			Title:       ctx.String("title"),
			Description: desc,
			Tag:         ctx.String("tag"),
			Start:       ctx.String("start"),
			End:         ctx.String("end"),
		})

		return err
	})
	if err != nil {
		return err
	}

	report.Done("updated %q (%s %s-%s)", edited.Title, edited.Date, edited.Start, edited.End)

	return nil
}
