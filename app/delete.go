package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ggoeuh/DAL-sub000/internal/config"
	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/report"
	"github.com/ggoeuh/DAL-sub000/schedule"
)

var yesFlag = &cli.BoolFlag{
	Name:    "yes",
	Aliases: []string{"y"},
	Usage:   "Delete without asking for confirmation",
}

// confirmDeletion prints the schedules about to be deleted and waits for
// ENTER.
func confirmDeletion(
	w io.Writer,
	r io.Reader,
	b *models.Bundle,
	schedules []models.Schedule,
) {
	printSchedulesTable(w, b, schedules)

	warning := pterm.Warning.Sprint(
		"The above schedules will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(w, warning)

	reader := bufio.NewReader(r)

	_, _ = reader.ReadString('\n')
}

// deleteAction handles the delete command which deletes one or more
// schedules.
func deleteAction(ctx *cli.Context) error {
	ids := ctx.Args().Slice()
	if len(ids) == 0 {
		return errMissingArg.Fmt("ID")
	}

	return withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		targets := make([]models.Schedule, 0, len(ids))

		for _, id := range ids {
			s, ok := b.Schedule(id)
			if !ok {
				return schedule.ErrNotFound.Fmt(id)
			}

			targets = append(targets, s)
		}

		if !ctx.Bool("yes") {
			bundle := b.Bundle()
			confirmDeletion(os.Stdout, config.Stdin, &bundle, targets)
		}

		for _, s := range targets {
			if err := b.Delete(c, s.ID); err != nil {
				return err
			}
		}

		if len(targets) == 1 {
			report.Done("schedule deleted")
		} else {
			report.Done("%d schedules deleted", len(targets))
		}

		return nil
	})
}
