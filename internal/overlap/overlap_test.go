package overlap

import (
	"testing"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

func sched(id, date, start, end string) models.Schedule {
	return models.Schedule{ID: id, Date: date, Start: start, End: end}
}

func TestIsOverlapping(t *testing.T) {
	existing := []models.Schedule{
		sched("a", "2025-03-10", "09:00", "10:00"),
	}

	cases := []struct {
		name      string
		candidate models.Schedule
		want      bool
	}{
		{"partial overlap at the end", sched("b", "2025-03-10", "09:30", "10:30"), true},
		{"partial overlap at the start", sched("b", "2025-03-10", "08:30", "09:30"), true},
		{"adjacent after", sched("b", "2025-03-10", "10:00", "11:00"), false},
		{"adjacent before", sched("b", "2025-03-10", "08:00", "09:00"), false},
		{"contains existing", sched("b", "2025-03-10", "08:00", "11:00"), true},
		{"contained by existing", sched("b", "2025-03-10", "09:15", "09:45"), true},
		{"identical interval", sched("b", "2025-03-10", "09:00", "10:00"), true},
		{"different date", sched("b", "2025-03-11", "09:00", "10:00"), false},
		{"same id is ignored", sched("a", "2025-03-10", "09:30", "10:30"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsOverlapping(existing, &tc.candidate)
			if got != tc.want {
				t.Errorf("IsOverlapping() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConflictsListsEveryCollision(t *testing.T) {
	existing := []models.Schedule{
		sched("a", "2025-03-10", "09:00", "10:00"),
		sched("b", "2025-03-10", "10:00", "11:00"),
		sched("c", "2025-03-10", "12:00", "13:00"),
	}

	candidate := sched("x", "2025-03-10", "09:30", "10:30")

	got := Conflicts(existing, &candidate)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("unexpected conflicts: %+v", got)
	}
}

// The three-way test must agree with plain half-open interval intersection
// for every pair of slot-aligned intervals in a day.
func TestCollidesMatchesIntervalIntersection(t *testing.T) {
	step := timeutil.SlotMinutes * 2

	for cs := 0; cs < timeutil.MinutesInADay; cs += step {
		for ce := cs + step; ce <= timeutil.MinutesInADay; ce += step {
			for es := 0; es < timeutil.MinutesInADay; es += step {
				for ee := es + step; ee <= timeutil.MinutesInADay; ee += step {
					want := cs < ee && es < ce
					if got := collides(cs, ce, es, ee); got != want {
						t.Fatalf(
							"collides(%d,%d,%d,%d) = %v, want %v",
							cs, ce, es, ee, got, want,
						)
					}
				}
			}
		}
	}
}
