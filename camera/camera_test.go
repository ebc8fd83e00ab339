package camera

import (
	"math"
	"testing"
)

type rigCall struct {
	clamp bool
	yaw   float64
	angle float64
	fov   float64
	isFOV bool
}

type fakeRig struct {
	calls []rigCall
}

func (f *fakeRig) Perspective() Perspective { return ThirdPerson }
func (f *fakeRig) Yaw() float64             { return 0 }
func (f *fakeRig) SetClampedPOV(enabled bool, yaw, angle float64) {
	f.calls = append(f.calls, rigCall{clamp: enabled, yaw: yaw, angle: angle})
}
func (f *fakeRig) SetThirdPersonFOV(v float64) {
	f.calls = append(f.calls, rigCall{fov: v, isFOV: true})
}
func (f *fakeRig) OnPerspectiveChanged(fn func(Perspective)) func() { return func() {} }

func TestCoordinatorCommands(t *testing.T) {
	rig := &fakeRig{}
	c := NewCoordinator(rig, Settings{ClimbFOV: 70, DefaultFOV: 40, ClampAngle: 30}, nil)

	c.EnterClimb(30)
	c.ExitClimb()
	c.EnterGlide(-10)
	c.ExitGlide()

	want := []rigCall{
		{clamp: true, yaw: 30, angle: 30},
		{fov: 70, isFOV: true},
		{clamp: false, angle: 30},
		{fov: 40, isFOV: true},
		{clamp: true, yaw: -10, angle: 30},
		{clamp: false, angle: 30},
	}
	if len(rig.calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), rig.calls)
	}
	for i := range want {
		if rig.calls[i] != want[i] {
			t.Fatalf("call %d = %+v, want %+v", i, rig.calls[i], want[i])
		}
	}
}

func TestPOVRigClamp(t *testing.T) {
	cases := []struct {
		name    string
		start   float64
		ref     float64
		look    float64
		wantYaw float64
	}{
		{"inside_range", 0, 0, 20, 20},
		{"clamped_high", 0, 0, 90, 45},
		{"clamped_low", 0, 0, -90, -45},
		{"crosses_180", 170, 170, 40, 210},
		{"pulled_into_range", 0, 170, 0, 125},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewPOVRig(40)
			r.Look(tc.start, 0)
			r.SetClampedPOV(true, tc.ref, 45)
			r.Look(tc.look, 0)
			if math.Abs(r.Yaw()-tc.wantYaw) > 1e-9 {
				t.Fatalf("yaw = %v, want %v", r.Yaw(), tc.wantYaw)
			}
		})
	}

	t.Run("disable_restores_wrap", func(t *testing.T) {
		r := NewPOVRig(40)
		r.SetClampedPOV(true, 0, 45)
		r.SetClampedPOV(false, 0, 45)
		r.Look(200, 0)
		if math.Abs(r.Yaw()-(-160)) > 1e-9 {
			t.Fatalf("yaw = %v, want -160", r.Yaw())
		}
		h := r.Horizontal()
		if !h.Wrap || h.Min != -180 || h.Max != 180 {
			t.Fatalf("axis not restored: %+v", h)
		}
	})
}

func TestPOVRigToggleNotifies(t *testing.T) {
	r := NewPOVRig(40)
	var seen []Perspective
	unsubscribe := r.OnPerspectiveChanged(func(p Perspective) { seen = append(seen, p) })

	r.Toggle()
	r.ChangePOV()
	unsubscribe()
	r.Toggle()

	if len(seen) != 2 || seen[0] != FirstPerson || seen[1] != ThirdPerson {
		t.Fatalf("unexpected notifications: %v", seen)
	}
	if r.Perspective() != FirstPerson {
		t.Fatalf("expected first person after three toggles, got %v", r.Perspective())
	}
	if r.Listeners() != 0 {
		t.Fatalf("expected no listeners, got %d", r.Listeners())
	}
}

func TestPOVRigFOV(t *testing.T) {
	r := NewPOVRig(40)
	r.SetThirdPersonFOV(70)
	if r.FOV() != 70 {
		t.Fatalf("fov = %v", r.FOV())
	}
}
