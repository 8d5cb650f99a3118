package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

func init() {
	pterm.DisableStyling()
}

func sampleBundle() models.Bundle {
	b := models.NewBundle()

	b.Tags = []models.Tag{{TagType: "학습", Color: "#4A90E2"}}
	b.TagItems = []models.TagItem{
		{TagType: "학습", TagName: "영어"},
		{TagType: "학습", TagName: "수학 10"},
		{TagType: "학습", TagName: "수학 2"},
	}
	b.Schedules = []models.Schedule{
		{ID: "c", Date: "2025-03-12", Start: "09:00", End: "10:00", Title: "수영"},
		{ID: "a", Date: "2025-03-10", Start: "13:00", End: "14:00", Title: "영어", Tag: "영어"},
		{ID: "b", Date: "2025-03-10", Start: "08:30", End: "09:00", Title: "아침", Done: true},
		{ID: "d", Date: "2025-03-17", Start: "09:00", End: "10:00", Title: "다음 주"},
		{ID: "e", Date: "2025-04-01", Start: "09:00", End: "10:00", Title: "4월"},
	}

	return b
}

func TestPeriodOf(t *testing.T) {
	cases := []struct {
		name  string
		date  string
		week  bool
		month bool
		want  period
	}{
		{
			name: "day",
			date: "2025-03-12",
			want: period{from: "2025-03-12", to: "2025-03-12", label: "2025-03-12"},
		},
		{
			name: "week starts on monday",
			date: "2025-03-16",
			week: true,
			want: period{from: "2025-03-10", to: "2025-03-16", label: "2025-03-10 ~ 2025-03-16"},
		},
		{
			name:  "month wins over week",
			date:  "2025-03-16",
			week:  true,
			month: true,
			want:  period{from: "2025-03-01", to: "2025-03-31", label: "2025-03"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := periodOf(tc.date, tc.week, tc.month)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(period{})); diff != "" {
				t.Fatalf("periodOf() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchedulesIn(t *testing.T) {
	b := sampleBundle()

	p, err := periodOf("2025-03-12", true, false)
	require.NoError(t, err)

	got := schedulesIn(b.Schedules, p)

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}

	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestListSchedulesJSON(t *testing.T) {
	b := sampleBundle()

	var buf bytes.Buffer

	err := listSchedules(&buf, &b, period{from: "2025-03-10", to: "2025-03-10"}, true)
	require.NoError(t, err)

	var got []models.Schedule

	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "08:30", got[0].Start)

	buf.Reset()

	err = listSchedules(&buf, &b, period{from: "2030-01-01", to: "2030-01-01"}, true)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintSchedulesTable(t *testing.T) {
	b := sampleBundle()

	var buf bytes.Buffer

	printSchedulesTable(&buf, &b, schedulesIn(b.Schedules, period{
		from: "2025-03-10",
		to:   "2025-03-10",
	}))

	out := buf.String()

	for _, want := range []string{"ID", "STATUS", "08:30-09:00", "영어", "done", "pending"} {
		assert.True(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := parseWeekdays("mon, 수,,fri")
	require.NoError(t, err)
	assert.Equal(t, []timeutil.Weekday{timeutil.Monday, timeutil.Wednesday, timeutil.Friday}, got)

	got, err = parseWeekdays("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseWeekdays("someday")
	assert.Error(t, err)
}

func TestConfirmDeletion(t *testing.T) {
	b := sampleBundle()

	var buf bytes.Buffer

	confirmDeletion(&buf, strings.NewReader("\n"), &b, b.Schedules[:1])

	assert.Contains(t, buf.String(), "수영")
	assert.Contains(t, buf.String(), "Press ENTER to proceed")
}

func TestPrintTagsTable(t *testing.T) {
	b := sampleBundle()

	var buf bytes.Buffer

	printTagsTable(&buf, &b)

	out := buf.String()

	assert.Contains(t, out, "#4A90E2")
	assert.Contains(t, out, "수학 2 · 수학 10 · 영어")
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "b", firstNonEmptyString("", "b", "c"))
	assert.Empty(t, firstNonEmptyString("", ""))
}

func TestGetRegistersCommands(t *testing.T) {
	a := Get()

	for _, name := range []string{
		"add", "move", "resize", "copy", "delete", "done", "edit", "list",
		"tag", "goal", "plan", "stats", "users", "board", "remind", "serve",
		"edit-config",
	} {
		assert.NotNil(t, a.Command(name), "missing command %q", name)
	}

	tag := a.Command("tag")
	for _, name := range []string{"add", "rm", "rm-type", "list"} {
		assert.NotNil(t, tag.Command(name), "missing tag subcommand %q", name)
	}
}
