package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ggoeuh/DAL-sub000/internal/apperr"
	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/tagging"
	"github.com/ggoeuh/DAL-sub000/internal/ui"
	"github.com/ggoeuh/DAL-sub000/report"
	"github.com/ggoeuh/DAL-sub000/schedule"
	"github.com/ggoeuh/DAL-sub000/stats"
)

var (
	errTagNotFound = &apperr.Error{
		Message: "tag %q not found",
	}

	errGoalNotFound = &apperr.Error{
		Message: "no goal for %q in %s",
	}
)

// tagAddAction handles the tag add command.
func tagAddAction(ctx *cli.Context) error {
	tagType, err := argAt(ctx, 0, "TYPE")
	if err != nil {
		return err
	}

	names := ctx.Args().Tail()

	err = withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		return b.Apply(c, func(bundle *models.Bundle) error {
			if _, err := tagging.AddTag(bundle, tagType); err != nil {
				return err
			}

			for _, name := range names {
				if _, err := tagging.AddTagItem(bundle, tagType, name); err != nil {
					return err
				}
			}

			return nil
		})
	})
	if err != nil {
		return err
	}

	report.Done("tag %q saved", tagType)

	return nil
}

// tagRemoveAction handles the tag rm command.
func tagRemoveAction(ctx *cli.Context) error {
	names := ctx.Args().Slice()
	if len(names) == 0 {
		return errMissingArg.Fmt("NAME")
	}

	return withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		return b.Apply(c, func(bundle *models.Bundle) error {
			for _, name := range names {
				if !tagging.RemoveTagItem(bundle, name) {
					return errTagNotFound.Fmt(name)
				}
			}

			return nil
		})
	})
}

// tagRemoveTypeAction handles the tag rm-type command.
func tagRemoveTypeAction(ctx *cli.Context) error {
	tagType, err := argAt(ctx, 0, "TYPE")
	if err != nil {
		return err
	}

	return withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		return b.Apply(c, func(bundle *models.Bundle) error {
			if !tagging.RemoveTag(bundle, tagType) {
				return errTagNotFound.Fmt(tagType)
			}

			return nil
		})
	})
}

// printTagsTable prints every tag type with its colour and tag names.
func printTagsTable(w io.Writer, b *models.Bundle) {
	types := make([]string, 0, len(b.Tags))
	colors := make(map[string]string, len(b.Tags))

	for _, t := range b.Tags {
		types = append(types, t.TagType)
		colors[t.TagType] = t.Color
	}

	tagging.SortNatural(types)

	tableBody := [][]string{{"TYPE", "COLOR", "NAMES"}}

	for _, t := range types {
		tableBody = append(tableBody, []string{
			ui.Swatch(colors[t], t),
			colors[t],
			strings.Join(tagging.Names(b.TagItems, t), " · "),
		})
	}

	ui.PrintTable(tableBody, w)
}

// tagListAction handles the tag list command.
func tagListAction(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	b, err := e.gw.Load(ctx.Context, e.user())
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		out, err := json.Marshal(struct {
			Tags     []models.Tag     `json:"tags"`
			TagItems []models.TagItem `json:"tagItems"`
		}{b.Tags, b.TagItems})
		if err != nil {
			return err
		}

		fmt.Println(string(out))

		return nil
	}

	if len(b.Tags) == 0 {
		pterm.Info.Println("No tags yet. Add one with 'dal tag add TYPE [NAME...]'")
		return nil
	}

	printTagsTable(os.Stdout, &b)

	return nil
}

// goalSetAction handles the goal set command.
func goalSetAction(ctx *cli.Context) error {
	var args [3]string

	for i, name := range []string{"MONTH", "TYPE", "HH:MM"} {
		s, err := argAt(ctx, i, name)
		if err != nil {
			return err
		}

		args[i] = s
	}

	err := withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		return b.Apply(c, func(bundle *models.Bundle) error {
			return stats.SetGoal(bundle, args[0], args[1], args[2])
		})
	})
	if err != nil {
		return err
	}

	report.Done("goal for %q in %s set to %s", args[1], args[0], args[2])

	return nil
}

// goalRemoveAction handles the goal rm command.
func goalRemoveAction(ctx *cli.Context) error {
	month, err := argAt(ctx, 0, "MONTH")
	if err != nil {
		return err
	}

	tagType, err := argAt(ctx, 1, "TYPE")
	if err != nil {
		return err
	}

	return withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		return b.Apply(c, func(bundle *models.Bundle) error {
			if !stats.RemoveGoal(bundle, month, tagType) {
				return errGoalNotFound.Fmt(tagType, month)
			}

			return nil
		})
	})
}

// planAddAction handles the plan add command.
func planAddAction(ctx *cli.Context) error {
	p := models.MonthlyPlan{
		ID:            uuid.NewString(),
		TagType:       strings.TrimSpace(ctx.String("type")),
		Tag:           ctx.String("tag"),
		Name:          ctx.String("name"),
		Description:   ctx.String("desc"),
		EstimatedTime: ctx.Int("hours"),
		Month:         monthArg(ctx),
	}

	err := withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		return b.Apply(c, func(bundle *models.Bundle) error {
			return stats.AddPlan(bundle, p)
		})
	})
	if err != nil {
		return err
	}

	report.Done("plan added for %s (id %s)", p.Month, p.ID)

	return nil
}

// planRemoveAction handles the plan rm command.
func planRemoveAction(ctx *cli.Context) error {
	id, err := argAt(ctx, 0, "ID")
	if err != nil {
		return err
	}

	return withBoard(ctx, func(c context.Context, b *schedule.Board) error {
		return b.Apply(c, func(bundle *models.Bundle) error {
			return stats.RemovePlan(bundle, id)
		})
	})
}

// printPlansTable prints plans with the tag type colour.
func printPlansTable(w io.Writer, b *models.Bundle, plans []models.MonthlyPlan) {
	tableBody := [][]string{{"ID", "MONTH", "TYPE", "TAG", "NAME", "HOURS"}}

	for _, p := range plans {
		tableBody = append(tableBody, []string{
			p.ID,
			p.Month,
			ui.Swatch(tagging.DisplayColor(b.Tags, p.TagType), p.TagType),
			p.Tag,
			p.Name,
			fmt.Sprintf("%d", p.EstimatedTime),
		})
	}

	ui.PrintTable(tableBody, w)
}

// planListAction handles the plan list command.
func planListAction(ctx *cli.Context) error {
	month := monthArg(ctx)

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	b, err := e.gw.Load(ctx.Context, e.user())
	if err != nil {
		return err
	}

	plans := stats.PlansFor(b.MonthlyPlans, month)

	if ctx.Bool("json") {
		if plans == nil {
			plans = []models.MonthlyPlan{}
		}

		out, err := json.Marshal(plans)
		if err != nil {
			return err
		}

		fmt.Println(string(out))

		return nil
	}

	if len(plans) == 0 {
		pterm.Info.Printfln("No plans found for %s", month)
		return nil
	}

	printPlansTable(os.Stdout, &b, plans)

	return nil
}
