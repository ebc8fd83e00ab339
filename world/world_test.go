package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/probe"
	"go.uber.org/zap/zaptest"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := New(zaptest.NewLogger(t))
	w.AddBox("floor", mgl64.Vec3{-10, -1, -10}, mgl64.Vec3{10, 0, 10}, probe.LayerGround)
	w.AddBox("wall", mgl64.Vec3{-2, 0, 5}, mgl64.Vec3{2, 4, 6}, probe.LayerClimbable)
	w.AddBox("crate", mgl64.Vec3{4, 0, 4}, mgl64.Vec3{5, 1, 5}, probe.LayerDestructible)
	return w
}

func TestSphereOverlap(t *testing.T) {
	w := newTestWorld(t)
	cases := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		mask   probe.LayerMask
		want   int
	}{
		{"touching_floor", mgl64.Vec3{0, 0.05, 0}, 0.1, probe.LayerGround, 1},
		{"above_floor", mgl64.Vec3{0, 0.5, 0}, 0.1, probe.LayerGround, 0},
		{"floor_filtered_out", mgl64.Vec3{0, 0.05, 0}, 0.1, probe.LayerClimbable, 0},
		{"crate_and_floor", mgl64.Vec3{4.5, 0.5, 4.5}, 1, probe.AllLayers, 2},
		{"crate_only", mgl64.Vec3{4.5, 0.5, 4.5}, 1, probe.LayerDestructible, 1},
		{"corner_miss", mgl64.Vec3{5.5, 1.5, 5.5}, 0.8, probe.LayerDestructible, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := w.SphereOverlap(tc.center, tc.radius, tc.mask)
			if len(got) != tc.want {
				t.Fatalf("expected %d overlaps, got %v", tc.want, got)
			}
		})
	}
}

func TestRaycast(t *testing.T) {
	w := newTestWorld(t)

	t.Run("hits_wall_face", func(t *testing.T) {
		hit, ok := w.Raycast(mgl64.Vec3{0, 1, 4}, mgl64.Vec3{0, 0, 1}, 2, probe.LayerClimbable)
		if !ok {
			t.Fatalf("expected hit")
		}
		if hit.Point.Sub(mgl64.Vec3{0, 1, 5}).Len() > 1e-9 {
			t.Fatalf("hit point = %v", hit.Point)
		}
		if hit.Normal != (mgl64.Vec3{0, 0, -1}) {
			t.Fatalf("hit normal = %v", hit.Normal)
		}
		if hit.Distance != 1 {
			t.Fatalf("hit distance = %v", hit.Distance)
		}
	})

	t.Run("out_of_range", func(t *testing.T) {
		if _, ok := w.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}, 2, probe.AllLayers); ok {
			t.Fatalf("expected miss")
		}
	})

	t.Run("mask_filters", func(t *testing.T) {
		if _, ok := w.Raycast(mgl64.Vec3{0, 1, 4}, mgl64.Vec3{0, 0, 1}, 2, probe.LayerGround); ok {
			t.Fatalf("expected wall to be filtered out")
		}
	})

	t.Run("origin_inside_is_ignored", func(t *testing.T) {
		// ray along the top surface of the floor
		if _, ok := w.Raycast(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, 3, probe.LayerGround); ok {
			t.Fatalf("expected floor containing the origin to be ignored")
		}
	})

	t.Run("straight_down", func(t *testing.T) {
		hit, ok := w.Raycast(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, -1, 0}, 5, probe.AllLayers)
		if !ok || hit.Distance != 3 {
			t.Fatalf("expected floor hit at distance 3, got %v ok=%v", hit, ok)
		}
	})

	t.Run("nearest_wins", func(t *testing.T) {
		hit, ok := w.Raycast(mgl64.Vec3{4.5, 0.5, 0}, mgl64.Vec3{0, 0, 1}, 10, probe.AllLayers)
		if !ok {
			t.Fatalf("expected hit")
		}
		crate, _ := w.Box(hit.Body)
		if crate.Name != "crate" {
			t.Fatalf("expected crate hit, got %s", crate.Name)
		}
	})
}

func TestRemove(t *testing.T) {
	w := newTestWorld(t)
	ids := w.SphereOverlap(mgl64.Vec3{4.5, 0.5, 4.5}, 0.5, probe.LayerDestructible)
	if len(ids) != 1 {
		t.Fatalf("expected crate, got %v", ids)
	}
	if !w.Remove(ids[0]) {
		t.Fatalf("remove should succeed")
	}
	if w.Remove(ids[0]) {
		t.Fatalf("second remove should fail")
	}
	if got := w.SphereOverlap(mgl64.Vec3{4.5, 0.5, 4.5}, 0.5, probe.LayerDestructible); len(got) != 0 {
		t.Fatalf("crate still indexed: %v", got)
	}
	if w.Len() != 2 {
		t.Fatalf("expected 2 boxes left, got %d", w.Len())
	}
	boxes := w.Boxes()
	if len(boxes) != 2 || boxes[0].Name != "floor" || boxes[1].Name != "wall" {
		t.Fatalf("unexpected boxes %v", boxes)
	}
}

func TestResolve(t *testing.T) {
	w := newTestWorld(t)

	t.Run("lands_on_floor", func(t *testing.T) {
		b := physics.NewBody(mgl64.Vec3{0, -0.1, 0}, 1, 0, physics.Capsule{Radius: 0.3, Height: 1.8, Center: 0.9})
		b.Velocity = mgl64.Vec3{1, -3, 0}
		w.Resolve(b)
		if b.Position.Y() < -1e-9 {
			t.Fatalf("body still below floor: %v", b.Position)
		}
		if b.Velocity.Y() != 0 {
			t.Fatalf("expected vertical velocity cancelled, got %v", b.Velocity)
		}
		if b.Velocity.X() != 1 {
			t.Fatalf("horizontal velocity should be kept, got %v", b.Velocity)
		}
	})

	t.Run("blocked_by_wall", func(t *testing.T) {
		b := physics.NewBody(mgl64.Vec3{0, 0, 4.8}, 1, 0, physics.Capsule{Radius: 0.3, Height: 1.8, Center: 0.9})
		b.Velocity = mgl64.Vec3{0, 0, 2}
		w.Resolve(b)
		if b.Position.Z() > 4.7+1e-9 {
			t.Fatalf("body still inside wall: %v", b.Position)
		}
		if b.Velocity.Z() != 0 {
			t.Fatalf("expected velocity into wall cancelled, got %v", b.Velocity)
		}
	})
}

func TestSimulationWithResolver(t *testing.T) {
	w := newTestWorld(t)
	sim := physics.NewSimulation(physics.DefaultGravity, w, nil)
	b := physics.NewBody(mgl64.Vec3{0, 2, 0}, 1, 0, physics.Capsule{Radius: 0.3, Height: 1.8, Center: 0.9})
	sim.AddBody(b)
	for i := 0; i < 200; i++ {
		sim.Step(0.02)
	}
	if b.Position.Y() < -0.01 || b.Position.Y() > 0.01 {
		t.Fatalf("expected body resting on floor, got y=%v", b.Position.Y())
	}
}
