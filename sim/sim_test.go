package sim

import (
	"testing"
	"time"
)

func TestClockTimers(t *testing.T) {
	t.Run("fires_when_due", func(t *testing.T) {
		c := NewClock(20 * time.Millisecond)
		fired := 0
		c.After(time.Second, func() { fired++ })

		c.Advance(900 * time.Millisecond)
		if fired != 0 {
			t.Fatalf("timer fired early at %v", c.Now())
		}
		c.Advance(100 * time.Millisecond)
		if fired != 1 {
			t.Fatalf("expected timer to fire once, fired=%d", fired)
		}
		c.Advance(time.Second)
		if fired != 1 {
			t.Fatalf("timer fired again, fired=%d", fired)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		c := NewClock(20 * time.Millisecond)
		fired := false
		h := c.After(time.Second, func() { fired = true })
		if !c.Pending(h) {
			t.Fatalf("expected timer pending")
		}
		if !c.Cancel(h) {
			t.Fatalf("cancel should report true for a pending timer")
		}
		if c.Cancel(h) {
			t.Fatalf("second cancel should be a no-op")
		}
		c.Advance(2 * time.Second)
		if fired {
			t.Fatalf("cancelled timer fired")
		}
	})

	t.Run("due_order", func(t *testing.T) {
		c := NewClock(20 * time.Millisecond)
		var order []int
		c.After(300*time.Millisecond, func() { order = append(order, 3) })
		c.After(100*time.Millisecond, func() { order = append(order, 1) })
		c.After(100*time.Millisecond, func() { order = append(order, 2) })
		c.Advance(time.Second)
		if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
			t.Fatalf("unexpected firing order %v", order)
		}
	})

	t.Run("delta", func(t *testing.T) {
		c := NewClock(20 * time.Millisecond)
		c.Advance(16 * time.Millisecond)
		if c.Delta() != 0.016 {
			t.Fatalf("expected delta 0.016, got %v", c.Delta())
		}
		if c.FixedDelta() != 0.02 {
			t.Fatalf("expected fixed delta 0.02, got %v", c.FixedDelta())
		}
	})
}

func TestLoopFixedSteps(t *testing.T) {
	cases := []struct {
		name      string
		frame     time.Duration
		frames    int
		wantTicks uint64
	}{
		{"frame_equals_step", 20 * time.Millisecond, 5, 5},
		{"frame_shorter_than_step", 10 * time.Millisecond, 5, 2},
		{"frame_longer_than_step", 50 * time.Millisecond, 2, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := NewClock(20 * time.Millisecond)
			loop := NewLoop(clock, 20*time.Millisecond, nil)
			var frameCalls int
			var physicsCalls uint64
			loop.Add(SystemFunc(func(dt float64) { frameCalls++ }))
			loop.AddPhysics(PhysicsFunc(func(dt float64) { physicsCalls++ }))

			for i := 0; i < tc.frames; i++ {
				loop.Step(tc.frame)
			}
			if frameCalls != tc.frames {
				t.Fatalf("expected %d frame updates, got %d", tc.frames, frameCalls)
			}
			if physicsCalls != tc.wantTicks || loop.PhysicsTicks() != tc.wantTicks {
				t.Fatalf("expected %d physics ticks, got %d (loop %d)", tc.wantTicks, physicsCalls, loop.PhysicsTicks())
			}
		})
	}
}

func TestLoopDropsBacklog(t *testing.T) {
	clock := NewClock(10 * time.Millisecond)
	loop := NewLoop(clock, 10*time.Millisecond, nil)
	loop.MaxFixedSteps = 3
	var ticks int
	loop.AddPhysics(PhysicsFunc(func(dt float64) { ticks++ }))

	loop.Step(time.Second)
	if ticks != 3 {
		t.Fatalf("expected physics capped at 3 ticks, got %d", ticks)
	}
	loop.Step(10 * time.Millisecond)
	if ticks != 4 {
		t.Fatalf("expected backlog dropped and one more tick, got %d", ticks)
	}
}
