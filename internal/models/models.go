package models

import (
	"slices"

	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

// Schedule is one timed, tagged activity on a specific date.
type Schedule struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag"`
	// TagType is a cached copy of the tag item's type. The tag item lookup
	// takes precedence when both exist.
	TagType string `json:"tagType"`
	Done    bool   `json:"done"`
}

// StartMinutes returns the start time in minutes from midnight.
func (s *Schedule) StartMinutes() int {
	return timeutil.MustMinutes(s.Start)
}

// EndMinutes returns the end time in minutes from midnight.
func (s *Schedule) EndMinutes() int {
	return timeutil.MustMinutes(s.End)
}

// Duration returns end-start in minutes.
func (s *Schedule) Duration() int {
	return s.EndMinutes() - s.StartMinutes()
}

// Valid reports whether the schedule has well-formed clock bounds with
// start before end.
func (s *Schedule) Valid() bool {
	if !timeutil.IsClock(s.Start) || !timeutil.IsClock(s.End) {
		return false
	}

	return s.StartMinutes() < s.EndMinutes()
}

// Tag is a category label with a display colour.
type Tag struct {
	TagType string `json:"tagType"`
	Color   string `json:"color"`
}

// TagItem is a named leaf under a tag type.
type TagItem struct {
	TagType string `json:"tagType"`
	TagName string `json:"tagName"`
}

// GoalEntry is the target duration for one tag type.
type GoalEntry struct {
	TagType string `json:"tagType"`
	// TargetHours is an "HH:MM" duration; hours may exceed 24.
	TargetHours string `json:"targetHours"`
}

// TargetMinutes returns the goal in minutes, or 0 if it is malformed.
func (g GoalEntry) TargetMinutes() int {
	return timeutil.MustMinutes(g.TargetHours)
}

// MonthlyGoal holds at most one goal per tag type for a month.
type MonthlyGoal struct {
	Month string      `json:"month"`
	Goals []GoalEntry `json:"goals"`
}

// Find returns the index of the goal for tagType, or -1.
func (m *MonthlyGoal) Find(tagType string) int {
	return slices.IndexFunc(m.Goals, func(g GoalEntry) bool {
		return g.TagType == tagType
	})
}

// MonthlyPlan is a planning estimate that seeds the month's goals.
type MonthlyPlan struct {
	ID          string `json:"id"`
	TagType     string `json:"tagType"`
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// EstimatedTime is expressed in whole hours.
	EstimatedTime int    `json:"estimatedTime"`
	Month         string `json:"month"`
}

// Bundle is everything stored for one user. It is always saved whole.
type Bundle struct {
	Schedules    []Schedule    `json:"schedules"`
	Tags         []Tag         `json:"tags"`
	TagItems     []TagItem     `json:"tagItems"`
	MonthlyPlans []MonthlyPlan `json:"monthlyPlans"`
	MonthlyGoals []MonthlyGoal `json:"monthlyGoals"`
}

// NewBundle returns an empty bundle whose collections are all non-nil.
func NewBundle() Bundle {
	var b Bundle

	b.Normalize()

	return b
}

// Normalize replaces nil collections with empty ones so that encoders always
// emit arrays.
func (b *Bundle) Normalize() {
	if b.Schedules == nil {
		b.Schedules = []Schedule{}
	}

	if b.Tags == nil {
		b.Tags = []Tag{}
	}

	if b.TagItems == nil {
		b.TagItems = []TagItem{}
	}

	if b.MonthlyPlans == nil {
		b.MonthlyPlans = []MonthlyPlan{}
	}

	if b.MonthlyGoals == nil {
		b.MonthlyGoals = []MonthlyGoal{}
	}

	for i := range b.MonthlyGoals {
		if b.MonthlyGoals[i].Goals == nil {
			b.MonthlyGoals[i].Goals = []GoalEntry{}
		}
	}
}

// Clone returns a deep copy of the bundle.
func (b Bundle) Clone() Bundle {
	c := Bundle{
		Schedules:    slices.Clone(b.Schedules),
		Tags:         slices.Clone(b.Tags),
		TagItems:     slices.Clone(b.TagItems),
		MonthlyPlans: slices.Clone(b.MonthlyPlans),
		MonthlyGoals: make([]MonthlyGoal, len(b.MonthlyGoals)),
	}

	for i, g := range b.MonthlyGoals {
		c.MonthlyGoals[i] = MonthlyGoal{
			Month: g.Month,
			Goals: slices.Clone(g.Goals),
		}
	}

	c.Normalize()

	return c
}

// ScheduleByID returns the index of the schedule with id, or -1.
func (b *Bundle) ScheduleByID(id string) int {
	return slices.IndexFunc(b.Schedules, func(s Schedule) bool {
		return s.ID == id
	})
}

// GoalFor returns the index of the monthly goal for month, or -1.
func (b *Bundle) GoalFor(month string) int {
	return slices.IndexFunc(b.MonthlyGoals, func(g MonthlyGoal) bool {
		return g.Month == month
	})
}
