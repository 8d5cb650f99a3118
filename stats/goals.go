package stats

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ggoeuh/DAL-sub000/internal/apperr"
	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

var (
	errInvalidMonth = &apperr.Error{
		Message: "invalid month %q: use yyyy-MM",
	}

	errInvalidTarget = &apperr.Error{
		Message: "invalid target %q: use HH:MM",
	}

	errEmptyTagType = &apperr.Error{
		Message: "tag type cannot be empty",
	}

	errInvalidEstimate = &apperr.Error{
		Message: "estimated time must be zero or more hours, got %d",
	}

	// ErrPlanNotFound is returned when removing an unknown plan.
	ErrPlanNotFound = &apperr.Error{
		Message: "plan %q not found",
	}
)

// DeriveGoalsFromPlans sums the estimated hours of month's plans per tag
// type and writes them into a copy of existing as "HH:00" targets. Tag types
// without plans keep their current target.
func DeriveGoalsFromPlans(
	plans []models.MonthlyPlan,
	month string,
	existing models.MonthlyGoal,
) models.MonthlyGoal {
	hours := make(map[string]int)

	var order []string

	for _, p := range plans {
		if p.Month != month {
			continue
		}

		if _, ok := hours[p.TagType]; !ok {
			order = append(order, p.TagType)
		}

		hours[p.TagType] += p.EstimatedTime
	}

	out := models.MonthlyGoal{
		Month: month,
		Goals: slices.Clone(existing.Goals),
	}

	if out.Goals == nil {
		out.Goals = []models.GoalEntry{}
	}

	for _, tagType := range order {
		target := fmt.Sprintf("%02d:00", hours[tagType])

		if i := out.Find(tagType); i >= 0 {
			out.Goals[i].TargetHours = target
			continue
		}

		out.Goals = append(out.Goals, models.GoalEntry{
			TagType:     tagType,
			TargetHours: target,
		})
	}

	return out
}

// SetGoal sets the target of tagType for month, creating the month's goal if
// needed.
func SetGoal(b *models.Bundle, month, tagType, target string) error {
	if !timeutil.ValidMonth(month) {
		return errInvalidMonth.Fmt(month)
	}

	tagType = strings.TrimSpace(tagType)
	if tagType == "" {
		return errEmptyTagType
	}

	mins, err := timeutil.ToMinutes(target)
	if err != nil || mins < 0 {
		return errInvalidTarget.Fmt(target)
	}

	target = timeutil.ToTimeString(mins)

	i := b.GoalFor(month)
	if i < 0 {
		b.MonthlyGoals = append(b.MonthlyGoals, models.MonthlyGoal{
			Month: month,
			Goals: []models.GoalEntry{},
		})
		i = len(b.MonthlyGoals) - 1
	}

	g := &b.MonthlyGoals[i]

	if j := g.Find(tagType); j >= 0 {
		g.Goals[j].TargetHours = target
		return nil
	}

	g.Goals = append(g.Goals, models.GoalEntry{
		TagType:     tagType,
		TargetHours: target,
	})

	return nil
}

// RemoveGoal deletes the target of tagType for month. It reports whether a
// goal was removed.
func RemoveGoal(b *models.Bundle, month, tagType string) bool {
	i := b.GoalFor(month)
	if i < 0 {
		return false
	}

	g := &b.MonthlyGoals[i]

	j := g.Find(tagType)
	if j < 0 {
		return false
	}

	g.Goals = slices.Delete(g.Goals, j, j+1)

	return true
}

// AddPlan appends p and re-derives the goal of p's month.
func AddPlan(b *models.Bundle, p models.MonthlyPlan) error {
	if !timeutil.ValidMonth(p.Month) {
		return errInvalidMonth.Fmt(p.Month)
	}

	if strings.TrimSpace(p.TagType) == "" {
		return errEmptyTagType
	}

	if p.EstimatedTime < 0 {
		return errInvalidEstimate.Fmt(p.EstimatedTime)
	}

	b.MonthlyPlans = append(b.MonthlyPlans, p)

	rederive(b, p.Month)

	return nil
}

// RemovePlan deletes the plan with id and re-derives its month's goal.
func RemovePlan(b *models.Bundle, id string) error {
	i := slices.IndexFunc(b.MonthlyPlans, func(p models.MonthlyPlan) bool {
		return p.ID == id
	})
	if i < 0 {
		return ErrPlanNotFound.Fmt(id)
	}

	month := b.MonthlyPlans[i].Month
	b.MonthlyPlans = slices.Delete(b.MonthlyPlans, i, i+1)

	rederive(b, month)

	return nil
}

// PlansFor returns month's plans.
func PlansFor(plans []models.MonthlyPlan, month string) []models.MonthlyPlan {
	var out []models.MonthlyPlan

	for _, p := range plans {
		if month == "" || p.Month == month {
			out = append(out, p)
		}
	}

	return out
}

func rederive(b *models.Bundle, month string) {
	var existing models.MonthlyGoal

	i := b.GoalFor(month)
	if i >= 0 {
		existing = b.MonthlyGoals[i]
	}

	g := DeriveGoalsFromPlans(b.MonthlyPlans, month, existing)

	if i >= 0 {
		b.MonthlyGoals[i] = g
		return
	}

	b.MonthlyGoals = append(b.MonthlyGoals, g)
}
