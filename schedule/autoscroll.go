package schedule

import (
	"sync"
	"time"
)

// DefaultAutoScrollDelay is how long the pointer must rest in an edge zone
// before the focused day shifts.
const DefaultAutoScrollDelay = 300 * time.Millisecond

// AutoScroller debounces edge-zone hovering into day shifts.
type AutoScroller struct {
	timer *time.Timer
	fire  func(dir int)
	delay time.Duration
	dir   int
	mu    sync.Mutex
}

// NewAutoScroller returns a scroller calling fire with -1 or +1 once the
// pointer has stayed in an edge zone for delay.
func NewAutoScroller(delay time.Duration, fire func(dir int)) *AutoScroller {
	if delay <= 0 {
		delay = DefaultAutoScrollDelay
	}

	return &AutoScroller{delay: delay, fire: fire}
}

// Arm starts the timer for direction dir, or keeps it running if it is
// already armed for dir. A zero dir cancels.
func (a *AutoScroller) Arm(dir int) {
	if dir == 0 {
		a.Cancel()
		return
	}

	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil && a.dir == dir {
		return
	}

	a.stopLocked()

	a.dir = dir

	var t *time.Timer

	t = time.AfterFunc(a.delay, func() {
		a.mu.Lock()
		if a.timer != t {
			a.mu.Unlock()
			return
		}

		a.timer = nil
		a.dir = 0
		a.mu.Unlock()

		a.fire(dir)
	})

	a.timer = t
}

// Cancel stops a pending shift.
func (a *AutoScroller) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
}

// Armed returns the pending direction, if any.
func (a *AutoScroller) Armed() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.dir, a.timer != nil
}

func (a *AutoScroller) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
	}

	a.timer = nil
	a.dir = 0
}
