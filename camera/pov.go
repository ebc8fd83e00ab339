package camera

import (
	"github.com/milk9111/locomotion/common"
)

// Axis is a look axis with optional clamping, in degrees.
type Axis struct {
	Value float64
	Min   float64
	Max   float64
	Wrap  bool
}

// Apply adds delta and either wraps or clamps the result.
func (a *Axis) Apply(delta float64) {
	v := a.Value + delta
	if a.Wrap {
		a.Value = common.NormalizeAngle(v)
		return
	}
	a.Value = common.Clamp(v, a.Min, a.Max)
}

// POVRig is an in-process Rig: a perspective toggle, a horizontal look axis
// and a third-person lens.
type POVRig struct {
	perspective Perspective
	horizontal  Axis
	vertical    Axis
	fov         float64
	listeners   []listener
	nextID      int
}

// NewPOVRig creates a third-person rig with unclamped wrapping look.
func NewPOVRig(fov float64) *POVRig {
	return &POVRig{
		horizontal: Axis{Min: -180, Max: 180, Wrap: true},
		vertical:   Axis{Min: -80, Max: 80},
		fov:        fov,
	}
}

func (r *POVRig) Perspective() Perspective { return r.perspective }
func (r *POVRig) Yaw() float64             { return r.horizontal.Value }
func (r *POVRig) Pitch() float64           { return r.vertical.Value }
func (r *POVRig) FOV() float64             { return r.fov }
func (r *POVRig) Horizontal() Axis         { return r.horizontal }

func (r *POVRig) SetClampedPOV(enabled bool, referenceYaw, clampAngle float64) {
	if !enabled {
		r.horizontal.Min = -180
		r.horizontal.Max = 180
		r.horizontal.Wrap = true
		return
	}
	ref := common.NormalizeAngle(referenceYaw)
	r.horizontal.Min = ref - clampAngle
	r.horizontal.Max = ref + clampAngle
	r.horizontal.Wrap = false
	// keep the current look inside the new range on the side closest to it
	r.horizontal.Value = common.Clamp(ref+common.DeltaAngle(ref, r.horizontal.Value), r.horizontal.Min, r.horizontal.Max)
}

func (r *POVRig) SetThirdPersonFOV(fov float64) {
	r.fov = fov
}

// Look rotates the view by the given deltas in degrees.
func (r *POVRig) Look(dyaw, dpitch float64) {
	r.horizontal.Apply(dyaw)
	r.vertical.Apply(dpitch)
}

// Toggle switches perspective and notifies listeners in registration order.
func (r *POVRig) Toggle() {
	if r.perspective == ThirdPerson {
		r.perspective = FirstPerson
	} else {
		r.perspective = ThirdPerson
	}
	for _, l := range append([]listener(nil), r.listeners...) {
		l.fn(r.perspective)
	}
}

// ChangePOV and MainMenu let the rig subscribe to an input.Source as a
// system handler.
func (r *POVRig) ChangePOV() { r.Toggle() }
func (r *POVRig) MainMenu()  {}

func (r *POVRig) OnPerspectiveChanged(fn func(Perspective)) func() {
	if fn == nil {
		return func() {}
	}
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered perspective listeners.
func (r *POVRig) Listeners() int { return len(r.listeners) }

type listener struct {
	id int
	fn func(Perspective)
}
