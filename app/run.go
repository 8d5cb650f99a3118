package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ggoeuh/DAL-sub000/board"
	"github.com/ggoeuh/DAL-sub000/internal/apperr"
	"github.com/ggoeuh/DAL-sub000/internal/notify"
	"github.com/ggoeuh/DAL-sub000/internal/pathutil"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/internal/ui"
	"github.com/ggoeuh/DAL-sub000/remind"
	"github.com/ggoeuh/DAL-sub000/report"
	"github.com/ggoeuh/DAL-sub000/schedule"
	"github.com/ggoeuh/DAL-sub000/server"
	"github.com/ggoeuh/DAL-sub000/stats"
)

var errInvalidMonthArg = &apperr.Error{
	Message: "invalid month %q: use yyyy-MM",
}

// interruptible returns a context that ends on SIGINT or SIGTERM.
func interruptible(ctx *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
}

// statsAction prints the monthly report of the selected user.
func statsAction(ctx *cli.Context) error {
	month := monthArg(ctx)
	if !timeutil.ValidMonth(month) {
		return errInvalidMonthArg.Fmt(month)
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

	r := stats.Compute(&b, month)

	if ctx.Bool("json") {
		out, err := r.ToJSON()
		if err != nil {
			return err
		}

		fmt.Println(string(out))

		return nil
	}

	r.Render(os.Stdout)

	return nil
}

// usersAction lists the user registry.
func usersAction(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	users, err := e.gw.ListUsers(ctx.Context)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		pterm.Info.Println("No users have saved schedules yet")
		return nil
	}

	tableBody := [][]string{{"#", "USER"}}

	for i, u := range users {
		name := u
		if u == e.user() {
			name = ui.Highlight(u)
		}

		tableBody = append(tableBody, []string{fmt.Sprintf("%d", i+1), name})
	}

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}

// boardAction opens the interactive grid. It is also the default action.
func boardAction(ctx *cli.Context) error {
	c, cancel := interruptible(ctx)
	defer cancel()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	feed := board.NewFeed()

	opts := e.boardOptions()
	opts.OnChange = feed.Notify

	b, err := schedule.Open(c, e.saver, e.user(), opts)
	if err != nil {
		return err
	}

	defer b.Close()

	date, err := dateArg(ctx, "")
	if err != nil {
		return err
	}

	if date != "" {
		if err := b.SetFocus(date); err != nil {
			return err
		}
	}

	err = board.Run(c, b, board.Options{
		Feed:       feed,
		Days:       e.cfg.Board.VisibleDays,
		SlotHeight: e.cfg.Board.SlotHeight,
		EdgeZone:   e.cfg.Board.EdgeZone,
		DarkTheme:  e.cfg.Display.DarkTheme,
		Debug:      e.cfg.SlogLevel() <= slog.LevelDebug,
	})
	if err != nil {
		return err
	}

	return e.settle(context.Background(), b)
}

// remindAction runs the reminder daemon until interrupted.
func remindAction(ctx *cli.Context) error {
	c, cancel := interruptible(ctx)
	defer cancel()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	n := notify.New(
		e.cfg.Notifications.Enabled,
		pathutil.Dir(),
		notify.WithSound(e.cfg.Reminders.Sound),
	)

	if !e.cfg.Notifications.Enabled {
		report.Warn("notifications.enabled is false: reminders will only be logged")
	}

	d := remind.New(e.gw, e.user(), e.cfg.Reminders.Lead, n)

	report.Info(
		"sending reminders %s before each of %s's schedules. Press Ctrl+C to stop",
		e.cfg.Reminders.Lead,
		e.user(),
	)

	return d.Run(c)
}

// serveAction serves the HTTP API until interrupted.
func serveAction(ctx *cli.Context) error {
	c, cancel := interruptible(ctx)
	defer cancel()

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	report.Info("serving the API on port %d", e.cfg.Server.Port)

	return server.New(e.saver).Run(c, e.cfg.Server.Port)
}
