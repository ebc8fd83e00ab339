// Package physics integrates forces on rigid bodies each fixed step.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
)

var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldForward = mgl64.Vec3{0, 0, 1}
	WorldRight   = mgl64.Vec3{1, 0, 0}
)

// Euler is an orientation in degrees. It is applied yaw first, then pitch,
// then roll, so yaw 0 faces +Z and positive yaw turns toward +X.
type Euler struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// Quat converts the angles to a quaternion.
func (e Euler) Quat() mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(e.Yaw),
		mgl64.DegToRad(e.Pitch),
		mgl64.DegToRad(e.Roll),
		mgl64.YXZ,
	)
}

// YawOnly returns a rotation with pitch and roll removed.
func YawOnly(yaw float64) Euler {
	return Euler{Yaw: common.NormalizeAngle(yaw)}
}

// Capsule is an upright capsule collider. Center is the height of the capsule
// centre above the body origin, which sits at the feet.
type Capsule struct {
	Radius float64
	Height float64
	Center float64
}

// Bottom and Top are the vertical extents relative to the body origin.
func (c Capsule) Bottom() float64 { return c.Center - c.Height/2 }
func (c Capsule) Top() float64    { return c.Center + c.Height/2 }

// Body is a rigid body with a force accumulator. Forces added between steps
// are applied on the next Simulation.Step and then cleared.
type Body struct {
	Position   mgl64.Vec3
	Rotation   Euler
	Velocity   mgl64.Vec3
	Mass       float64
	Drag       float64
	UseGravity bool
	Collider   Capsule

	force mgl64.Vec3
}

// NewBody creates a body with gravity enabled.
func NewBody(position mgl64.Vec3, mass, drag float64, collider Capsule) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position:   position,
		Mass:       mass,
		Drag:       drag,
		UseGravity: true,
		Collider:   collider,
	}
}

// AddForce accumulates a force for the next step.
func (b *Body) AddForce(f mgl64.Vec3) {
	if b == nil {
		return
	}
	b.force = b.force.Add(f)
}

// PendingForce returns the force accumulated since the last step.
func (b *Body) PendingForce() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	return b.force
}

// Forward, Right and Up are the body's local axes in world space.
func (b *Body) Forward() mgl64.Vec3 { return b.Rotation.Quat().Rotate(WorldForward) }
func (b *Body) Right() mgl64.Vec3   { return b.Rotation.Quat().Rotate(WorldRight) }
func (b *Body) Up() mgl64.Vec3      { return b.Rotation.Quat().Rotate(WorldUp) }

// TransformPoint maps a point local to the body into world space.
func (b *Body) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return b.Position.Add(b.Rotation.Quat().Rotate(local))
}

// HorizontalSpeed is the length of the velocity projected onto the ground plane.
func (b *Body) HorizontalSpeed() float64 {
	return mgl64.Vec3{b.Velocity[0], 0, b.Velocity[2]}.Len()
}

// PlanarSpeed is the length of the velocity projected onto the XY plane,
// used while moving across a climbing surface.
func (b *Body) PlanarSpeed() float64 {
	return mgl64.Vec3{b.Velocity[0], b.Velocity[1], 0}.Len()
}

// integrate applies accumulated forces, gravity and drag, then moves the body.
func (b *Body) integrate(gravity mgl64.Vec3, dt float64) {
	accel := b.force.Mul(1 / b.Mass)
	if b.UseGravity {
		accel = accel.Add(gravity)
	}
	b.Velocity = b.Velocity.Add(accel.Mul(dt))
	if b.Drag > 0 {
		b.Velocity = b.Velocity.Mul(common.Clamp(1-b.Drag*dt, 0, 1))
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.force = mgl64.Vec3{}
}
