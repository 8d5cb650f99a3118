package schedule

import (
	"fmt"
	"strings"

	"github.com/ggoeuh/DAL-sub000/internal/models"
)

// Edge is the side of a schedule block being resized.
type Edge int

const (
	Top Edge = iota
	Bottom
)

func (e Edge) String() string {
	if e == Top {
		return "top"
	}

	return "bottom"
}

// ParseEdge accepts "top" or "bottom".
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "start":
		return Top, nil
	case "bottom", "end":
		return Bottom, nil
	}

	return 0, fmt.Errorf("unknown edge %q: use top or bottom", s)
}

// Mode is the board's current pointer interaction. Exactly one mode is
// active at a time; the zero board is Idle.
type Mode interface {
	mode()
}

// Idle means no gesture is in progress.
type Idle struct{}

// Dragging moves ScheduleID. GrabOffset is the pointer's offset from the
// top of the block when the gesture began.
type Dragging struct {
	ScheduleID string
	GrabOffset float64
}

// Resizing moves one Edge of ScheduleID.
type Resizing struct {
	ScheduleID string
	Edge       Edge
}

// Copying places a clone of Source.
type Copying struct {
	Source     models.Schedule
	GrabOffset float64
}

func (Idle) mode()     {}
func (Dragging) mode() {}
func (Resizing) mode() {}
func (Copying) mode()  {}

// ModeName returns a short label for m.
func ModeName(m Mode) string {
	switch m.(type) {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Copying:
		return "copying"
	}

	return "idle"
}

func scrolls(m Mode) bool {
	switch m.(type) {
	case Dragging, Copying:
		return true
	}

	return false
}
