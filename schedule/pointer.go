package schedule

import (
	"context"

	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
)

// DropTarget is where the pointer was released: a day column and a vertical
// offset from the top of the grid in the board's slot height units.
type DropTarget struct {
	Date string
	Y    float64
}

func (b *Board) beginLocked(m Mode) error {
	if _, ok := b.mode.(Idle); !ok {
		return ErrBusy
	}

	b.mode = m

	return nil
}

// BeginDrag starts moving schedule id. grabOffset is the pointer's distance
// from the top of the block.
func (b *Board) BeginDrag(id string, grabOffset float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bundle.ScheduleByID(id) < 0 {
		return ErrNotFound.Fmt(id)
	}

	return b.beginLocked(Dragging{ScheduleID: id, GrabOffset: grabOffset})
}

// BeginResize starts moving one edge of schedule id.
func (b *Board) BeginResize(id string, edge Edge) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bundle.ScheduleByID(id) < 0 {
		return ErrNotFound.Fmt(id)
	}

	return b.beginLocked(Resizing{ScheduleID: id, Edge: edge})
}

// BeginCopy starts placing a clone of schedule id.
func (b *Board) BeginCopy(id string, grabOffset float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.bundle.ScheduleByID(id)
	if i < 0 {
		return ErrNotFound.Fmt(id)
	}

	return b.beginLocked(Copying{
		Source:     b.bundle.Schedules[i],
		GrabOffset: grabOffset,
	})
}

// Release ends the current gesture without applying it.
func (b *Board) Release() {
	b.scroller.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.mode = Idle{}
}

// Drop ends the current gesture at t and applies it. The board returns to
// Idle whether or not the drop is accepted.
func (b *Board) Drop(ctx context.Context, t DropTarget) (models.Schedule, error) {
	b.scroller.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	mode := b.mode
	b.mode = Idle{}

	switch m := mode.(type) {
	case Dragging:
		start := timeutil.NearestSlot(t.Y-m.GrabOffset, b.opts.SlotHeight)
		return b.moveLocked(ctx, m.ScheduleID, t.Date, start)
	case Copying:
		start := timeutil.NearestSlot(t.Y-m.GrabOffset, b.opts.SlotHeight)
		return b.copyLocked(ctx, m.Source, t.Date, start)
	case Resizing:
		return b.resizeLocked(
			ctx,
			m.ScheduleID,
			m.Edge,
			timeutil.NearestSlot(t.Y, b.opts.SlotHeight),
		)
	}

	return models.Schedule{}, ErrNotIdle
}

// PreviewTime returns the start time a drop at y would produce for the
// current gesture, for drawing a ghost block.
func (b *Board) PreviewTime(y float64) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch m := b.mode.(type) {
	case Dragging:
		return timeutil.NearestSlot(y-m.GrabOffset, b.opts.SlotHeight), true
	case Copying:
		return timeutil.NearestSlot(y-m.GrabOffset, b.opts.SlotHeight), true
	case Resizing:
		return timeutil.NearestSlot(y, b.opts.SlotHeight), true
	}

	return "", false
}
