package sim

import "time"

// Timer is a handle to a scheduled callback. The zero Timer is never scheduled.
type Timer uint64

type pendingTimer struct {
	id  Timer
	due time.Duration
	fn  func()
}

// Clock is a manually advanced simulation clock. Timers fire on the goroutine
// that calls Advance, in due order; timers due at the same instant fire in
// scheduling order.
type Clock struct {
	now        time.Duration
	delta      float64
	fixedDelta float64

	nextID  Timer
	pending []pendingTimer
}

// NewClock creates a clock whose fixed physics step is fixedStep.
func NewClock(fixedStep time.Duration) *Clock {
	return &Clock{fixedDelta: fixedStep.Seconds()}
}

// Now returns the elapsed simulated time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Delta is the length of the current frame in seconds.
func (c *Clock) Delta() float64 {
	return c.delta
}

// FixedDelta is the physics step in seconds.
func (c *Clock) FixedDelta() float64 {
	return c.fixedDelta
}

// Advance moves time forward by d, making it the current frame delta, and
// fires every timer that became due.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.delta = d.Seconds()
	c.now += d
	c.fireDue()
}

// After schedules fn to run once d has elapsed.
func (c *Clock) After(d time.Duration, fn func()) Timer {
	if fn == nil {
		return 0
	}
	c.nextID++
	c.pending = append(c.pending, pendingTimer{id: c.nextID, due: c.now + d, fn: fn})
	return c.nextID
}

// Cancel stops a pending timer. Cancelling a fired or unknown timer is a no-op.
func (c *Clock) Cancel(t Timer) bool {
	for i, p := range c.pending {
		if p.id == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether t is still scheduled.
func (c *Clock) Pending(t Timer) bool {
	for _, p := range c.pending {
		if p.id == t {
			return true
		}
	}
	return false
}

func (c *Clock) fireDue() {
	for {
		idx := -1
		for i, p := range c.pending {
			if p.due > c.now {
				continue
			}
			if idx < 0 || p.due < c.pending[idx].due {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		p := c.pending[idx]
		c.pending = append(c.pending[:idx], c.pending[idx+1:]...)
		// callbacks may schedule or cancel other timers
		p.fn()
	}
}

