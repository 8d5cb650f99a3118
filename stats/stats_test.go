package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/testutil"
)

func marchBundle() models.Bundle {
	b := models.NewBundle()

	b.Tags = []models.Tag{
		{TagType: "학습", Color: "#4A90E2"},
		{TagType: "운동", Color: "#E94E77"},
	}

	b.TagItems = []models.TagItem{
		{TagType: "학습", TagName: "영어"},
		{TagType: "학습", TagName: "수학"},
		{TagType: "운동", TagName: "러닝"},
	}

	b.Schedules = []models.Schedule{
		{ID: "s1", Date: "2025-03-03", Start: "09:00", End: "10:30", Tag: "영어", Done: true},
		{ID: "s2", Date: "2025-03-04", Start: "14:00", End: "14:30", Tag: "수학"},
		{ID: "s3", Date: "2025-03-05", Start: "07:00", End: "08:00", Tag: "러닝", Done: true},
		{ID: "s4", Date: "2025-03-06", Start: "20:00", End: "21:00"},
		{ID: "s5", Date: "2025-04-01", Start: "09:00", End: "10:00", Tag: "영어"},
	}

	b.MonthlyGoals = []models.MonthlyGoal{
		{
			Month: "2025-03",
			Goals: []models.GoalEntry{
				{TagType: "학습", TargetHours: "02:00"},
				{TagType: "운동", TargetHours: "10:00"},
				{TagType: "독서", TargetHours: "05:00"},
			},
		},
	}

	return b
}

func TestMonthlyTotals(t *testing.T) {
	b := marchBundle()

	got := MonthlyTotals(b.Schedules, b.TagItems, "2025-03")

	want := map[string]int{
		"학습": 120,
		"운동": 60,
		"기타": 60,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MonthlyTotals() mismatch (-want +got):\n%s", diff)
	}
}

func TestMonthlyTotalsUsesTagItemOverStoredType(t *testing.T) {
	schedules := []models.Schedule{
		{Date: "2025-03-01", Start: "10:00", End: "11:00", Tag: "영어", TagType: "취미"},
		{Date: "2025-03-01", Start: "12:00", End: "12:30", Tag: "삭제됨", TagType: "취미"},
	}

	items := []models.TagItem{{TagType: "학습", TagName: "영어"}}

	got := MonthlyTotals(schedules, items, "2025-03")

	assert.Equal(t, map[string]int{"학습": 60, "취미": 30}, got)
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		name   string
		actual int
		goal   int
		want   int
	}{
		{"zero goal", 90, 0, 0},
		{"exact", 120, 120, 100},
		{"over goal", 180, 120, 150},
		{"rounds half up", 1, 8, 13},
		{"rounds down", 1, 300, 0},
		{"nothing done", 0, 60, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Percentage(tc.actual, tc.goal))
		})
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, ClampPercent(-5))
	assert.Equal(t, 42, ClampPercent(42))
	assert.Equal(t, 100, ClampPercent(150))
}

func TestVisibleTagTypes(t *testing.T) {
	goal := models.MonthlyGoal{
		Month: "2025-03",
		Goals: []models.GoalEntry{
			{TagType: "task10", TargetHours: "01:00"},
			{TagType: "task2", TargetHours: "01:00"},
		},
	}

	totals := map[string]int{
		"task1":  30,
		"task2":  60,
		"unused": 0,
	}

	got := VisibleTagTypes(goal, totals)

	assert.Equal(t, []string{"task1", "task2", "task10"}, got)
}

func TestDeriveGoalsFromPlans(t *testing.T) {
	plans := []models.MonthlyPlan{
		{ID: "p1", TagType: "학습", EstimatedTime: 10, Month: "2025-03"},
		{ID: "p2", TagType: "학습", EstimatedTime: 5, Month: "2025-03"},
		{ID: "p3", TagType: "운동", EstimatedTime: 3, Month: "2025-03"},
		{ID: "p4", TagType: "운동", EstimatedTime: 40, Month: "2025-04"},
	}

	existing := models.MonthlyGoal{
		Month: "2025-03",
		Goals: []models.GoalEntry{
			{TagType: "학습", TargetHours: "01:30"},
			{TagType: "독서", TargetHours: "04:00"},
		},
	}

	got := DeriveGoalsFromPlans(plans, "2025-03", existing)

	want := models.MonthlyGoal{
		Month: "2025-03",
		Goals: []models.GoalEntry{
			{TagType: "학습", TargetHours: "15:00"},
			{TagType: "독서", TargetHours: "04:00"},
			{TagType: "운동", TargetHours: "03:00"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DeriveGoalsFromPlans() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(
		t,
		"01:30",
		existing.Goals[0].TargetHours,
		"existing goal must not be modified",
	)
}

func TestPlanLifecycle(t *testing.T) {
	b := models.NewBundle()

	require.NoError(t, AddPlan(&b, models.MonthlyPlan{
		ID: "p1", TagType: "학습", Name: "토익", EstimatedTime: 20, Month: "2025-05",
	}))

	require.NoError(t, AddPlan(&b, models.MonthlyPlan{
		ID: "p2", TagType: "학습", Name: "수학", EstimatedTime: 4, Month: "2025-05",
	}))

	i := b.GoalFor("2025-05")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, "24:00", b.MonthlyGoals[i].Goals[0].TargetHours)

	require.NoError(t, RemovePlan(&b, "p1"))
	assert.Equal(t, "04:00", b.MonthlyGoals[i].Goals[0].TargetHours)
	assert.Len(t, PlansFor(b.MonthlyPlans, "2025-05"), 1)

	err := RemovePlan(&b, "p1")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	assert.Error(t, AddPlan(&b, models.MonthlyPlan{TagType: "학습", Month: "2025-13"}))
	assert.Error(t, AddPlan(&b, models.MonthlyPlan{TagType: " ", Month: "2025-05"}))
	assert.Error(t, AddPlan(&b, models.MonthlyPlan{
		TagType: "학습", Month: "2025-05", EstimatedTime: -1,
	}))
}

func TestSetAndRemoveGoal(t *testing.T) {
	b := models.NewBundle()

	require.NoError(t, SetGoal(&b, "2025-03", "학습", "2:30"))
	require.NoError(t, SetGoal(&b, "2025-03", "학습", "30:00"))
	require.NoError(t, SetGoal(&b, "2025-03", "운동", "05:00"))

	want := []models.MonthlyGoal{
		{
			Month: "2025-03",
			Goals: []models.GoalEntry{
				{TagType: "학습", TargetHours: "30:00"},
				{TagType: "운동", TargetHours: "05:00"},
			},
		},
	}

	if diff := cmp.Diff(want, b.MonthlyGoals); diff != "" {
		t.Fatalf("goals mismatch (-want +got):\n%s", diff)
	}

	assert.Error(t, SetGoal(&b, "March", "학습", "01:00"))
	assert.Error(t, SetGoal(&b, "2025-03", "", "01:00"))
	assert.Error(t, SetGoal(&b, "2025-03", "학습", "soon"))

	assert.True(t, RemoveGoal(&b, "2025-03", "학습"))
	assert.False(t, RemoveGoal(&b, "2025-03", "학습"))
	assert.False(t, RemoveGoal(&b, "2024-01", "운동"))
}

type reportGolden struct {
	t      *testing.T
	report Report
}

func (g reportGolden) Output() ([]byte, string) {
	out, err := g.report.ToJSON()
	require.NoError(g.t, err)

	return append(out, '\n'), "report_" + g.report.Month
}

func TestComputeGolden(t *testing.T) {
	b := marchBundle()

	testutil.CompareGoldenFile(t, reportGolden{
		t:      t,
		report: Compute(&b, "2025-03"),
	})
}

func TestComputeLearningExample(t *testing.T) {
	b := models.NewBundle()
	b.TagItems = []models.TagItem{{TagType: "학습", TagName: "영어"}}
	b.Schedules = []models.Schedule{
		{ID: "a", Date: "2025-03-03", Start: "09:00", End: "10:30", Tag: "영어"},
		{ID: "b", Date: "2025-03-04", Start: "09:00", End: "09:30", Tag: "영어"},
	}
	b.MonthlyGoals = []models.MonthlyGoal{
		{Month: "2025-03", Goals: []models.GoalEntry{{TagType: "학습", TargetHours: "02:00"}}},
	}

	r := Compute(&b, "2025-03")

	require.Len(t, r.Rows, 1)
	assert.Equal(t, 120, r.Rows[0].ActualMinutes)
	assert.Equal(t, 100, r.Rows[0].Percent)
}

func TestRender(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	t.Run("empty month", func(t *testing.T) {
		b := marchBundle()
		r := Compute(&b, "2024-01")

		var buf bytes.Buffer

		r.Render(&buf)

		assert.Equal(t, "No schedules or goals found for 2024-01\n", buf.String())
	})

	t.Run("with rows", func(t *testing.T) {
		b := marchBundle()
		r := Compute(&b, "2025-03")

		var buf bytes.Buffer

		r.Render(&buf)

		out := buf.String()

		for _, want := range []string{"2025-03", "학습", "운동", "독서", "기타", "4h", "1/2"} {
			assert.True(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
		}
	})
}

func TestProgressLabel(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	assert.Equal(t, "0%", progress(Row{}))
	assert.Equal(t, "40%", progress(Row{GoalMinutes: 60, Percent: 40}))
	assert.Equal(t, "120%", progress(Row{GoalMinutes: 60, Percent: 120}))
}
