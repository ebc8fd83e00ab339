package character

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/anim"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/probe"
	"go.uber.org/zap"
)

// Move applies the movement axis for this frame according to the stance.
func (c *Character) Move(axis mgl64.Vec2) {
	if c.closed {
		return
	}
	stanceStates[c.stance].Move(c, axis, c.clock.Delta())
}

// moveOnGround turns and pushes the character while standing or crouching.
// Nothing moves mid-swing.
func (c *Character) moveOnGround(axis mgl64.Vec2, dt float64) {
	if c.combo.Punching() {
		return
	}
	b := c.body
	switch c.rig.Perspective() {
	case camera.ThirdPerson:
		if axis.Len() >= c.cfg.MoveDeadzone {
			target := mgl64.RadToDeg(math.Atan2(axis.X(), axis.Y())) + c.rig.Yaw()
			yaw := common.SmoothDampAngle(b.Rotation.Yaw, target, &c.rotationVelocity, c.cfg.RotationSmoothTime, dt)
			b.Rotation = physics.YawOnly(yaw)
			dir := physics.YawOnly(target).Quat().Rotate(physics.WorldForward)
			b.AddForce(dir.Mul(c.speed * dt))
		}
	case camera.FirstPerson:
		b.Rotation = physics.YawOnly(c.rig.Yaw())
		dir := b.Right().Mul(axis.X()).Add(b.Forward().Mul(axis.Y()))
		b.AddForce(dir.Mul(c.speed * dt))
	}

	h := b.HorizontalSpeed()
	c.emit.Locomotion(h*axis.Len(), h*axis.X(), h*axis.Y())
}

// Sprint ramps speed toward sprint speed while held and back to walk speed
// when released. Only standing characters sprint.
func (c *Character) Sprint(held bool) {
	if c.closed || c.stance != Stand {
		return
	}
	step := c.cfg.WalkToSprintTransition * c.clock.Delta()
	if held {
		c.speed = math.Min(c.speed+step, c.cfg.SprintSpeed)
	} else {
		c.speed = math.Max(c.speed-step, c.cfg.WalkSpeed)
	}
}

// Jump pushes the character up when it is on the ground.
func (c *Character) Jump() {
	if c.closed || !c.grounded {
		return
	}
	c.body.AddForce(physics.WorldUp.Mul(c.cfg.JumpForce * c.clock.Delta()))
	c.emit.Trigger(anim.Jump)
}

func (c *Character) Crouch()      { c.fire(EventCrouch) }
func (c *Character) Climb()       { c.fire(EventClimb) }
func (c *Character) CancelClimb() { c.fire(EventCancelClimb) }
func (c *Character) Glide()       { c.fire(EventGlide) }
func (c *Character) CancelGlide() { c.fire(EventCancelGlide) }

// Punch starts the next attack of the combo when standing.
func (c *Character) Punch() {
	if c.closed || !c.cfg.CanPunch || c.stance != Stand {
		return
	}
	if !c.combo.Punch() {
		return
	}
	if c.cfg.SwingDuration > 0 {
		c.cancelSwing()
		c.swing = c.clock.After(c.cfg.SwingDuration, func() {
			c.swing = 0
			c.AttackResolved()
		})
	}
}

// AttackResolved ends the current swing: everything destructible inside the
// hit detector is removed from the world, then the combo reset is scheduled.
func (c *Character) AttackResolved() {
	if c.closed || !c.combo.Punching() {
		return
	}
	c.cancelSwing()
	hitbox := probe.Sphere{
		Center: c.body.TransformPoint(c.cfg.HitDetector.Offset),
		Radius: c.cfg.HitDetector.Radius,
		Mask:   c.cfg.HitDetector.Mask,
	}
	for _, id := range probe.MeleeTargets(c.world, hitbox) {
		if c.world.Remove(id) {
			c.log.Debug("destroyed", zap.Uint64("body", uint64(id)))
		}
	}
	c.combo.Resolve()
}

// FixedUpdate runs once per physics step: ground check, step assist and the
// glide force.
func (c *Character) FixedUpdate(dt float64) {
	if c.closed || dt <= 0 {
		return
	}
	b := c.body
	anchor := b.TransformPoint(c.cfg.GroundDetector.Offset)

	c.grounded = probe.Grounded(c.world, probe.Sphere{
		Center: anchor,
		Radius: c.cfg.GroundDetector.Radius,
		Mask:   c.cfg.GroundDetector.Mask,
	})
	c.emit.Grounded(c.grounded)
	if c.grounded && c.stance == Glide {
		c.fire(EventLanded)
	}

	if probe.StepBlocked(c.world, anchor, c.cfg.UpperStepOffset, b.Forward(), c.cfg.StepCheckDistance) {
		b.AddForce(physics.WorldUp.Mul(c.cfg.StepForce * dt))
	}

	if c.stance == Glide {
		lift := b.Rotation.Pitch + c.cfg.AirDrag
		force := b.Up().Mul(lift).Add(b.Forward().Mul(c.cfg.GlideSpeed))
		b.AddForce(force.Mul(dt))
	}
}
