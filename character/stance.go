package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/physics"
)

// Stance is the character's current movement mode. Exactly one is active.
type Stance int

const (
	Stand Stance = iota
	Crouch
	Climb
	Glide
)

func (s Stance) String() string {
	if st, ok := stanceStates[s]; ok {
		return st.Name()
	}
	return "unknown"
}

// Event requests a stance change.
type Event int

const (
	EventCrouch Event = iota
	EventClimb
	EventCancelClimb
	EventGlide
	EventCancelGlide
	EventLanded
)

var eventNames = [...]string{"crouch", "climb", "cancel_climb", "glide", "cancel_glide", "landed"}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// stanceState owns the entry and exit side effects of one stance and how it
// reacts to movement input.
type stanceState interface {
	Name() string
	Enter(c *Character, from Stance)
	Exit(c *Character, to Stance)
	Move(c *Character, axis mgl64.Vec2, dt float64)
}

// Stance singletons.
var (
	stanceStand  stanceState = &standState{}
	stanceCrouch stanceState = &crouchState{}
	stanceClimb  stanceState = &climbState{}
	stanceGlide  stanceState = &glideState{}
)

var stanceStates = map[Stance]stanceState{
	Stand:  stanceStand,
	Crouch: stanceCrouch,
	Climb:  stanceClimb,
	Glide:  stanceGlide,
}

type transitionKey struct {
	from  Stance
	event Event
}

type transition struct {
	to    Stance
	guard func(c *Character) bool
}

// transitions is the complete table. A pair that is missing is a no-op, and
// no entry leads back to its own stance.
var transitions = map[transitionKey]transition{
	{Stand, EventCrouch}:      {to: Crouch},
	{Crouch, EventCrouch}:     {to: Stand},
	{Stand, EventClimb}:       {to: Climb, guard: canClimb},
	{Crouch, EventClimb}:      {to: Climb, guard: canClimb},
	{Climb, EventCancelClimb}: {to: Stand},
	{Stand, EventGlide}:       {to: Glide, guard: canGlide},
	{Glide, EventCancelGlide}: {to: Stand},
	{Glide, EventLanded}:      {to: Stand},
}

// canClimb requires ground contact and a climbable surface ahead. The hit is
// kept for climbState.Enter.
func canClimb(c *Character) bool {
	if !c.grounded {
		return false
	}
	hit, ok := c.probeClimbSurface()
	if !ok {
		return false
	}
	c.climbHit = hit
	return true
}

func canGlide(c *Character) bool {
	return c.cfg.CanGlide && !c.grounded
}

type standState struct{}

type crouchState struct{}

type climbState struct{}

type glideState struct{}

func (standState) Name() string { return "stand" }
func (standState) Enter(c *Character, from Stance) {
	c.setCollider(c.cfg.StandCollider)
	if from != Glide {
		c.speed = c.cfg.WalkSpeed
	}
}
func (standState) Exit(c *Character, to Stance) {}
func (standState) Move(c *Character, axis mgl64.Vec2, dt float64) {
	c.moveOnGround(axis, dt)
}

func (crouchState) Name() string { return "crouch" }
func (crouchState) Enter(c *Character, from Stance) {
	c.speed = c.cfg.CrouchSpeed
	c.setCollider(c.cfg.CrouchCollider)
	c.emit.Crouch(true)
}
func (crouchState) Exit(c *Character, to Stance) {
	c.emit.Crouch(false)
}
func (crouchState) Move(c *Character, axis mgl64.Vec2, dt float64) {
	c.moveOnGround(axis, dt)
}

func (climbState) Name() string { return "climb" }
func (climbState) Enter(c *Character, from Stance) {
	b := c.body
	offset := b.Forward().Mul(c.cfg.ClimbOffset.Z()).Add(physics.WorldUp.Mul(c.cfg.ClimbOffset.Y()))
	b.Position = c.climbHit.Point.Sub(offset)
	b.Velocity = mgl64.Vec3{}
	b.UseGravity = false
	c.speed = c.cfg.ClimbSpeed
	c.camera.EnterClimb(b.Rotation.Yaw)
	c.setCollider(ColliderProfile{Height: c.cfg.StandCollider.Height, Center: c.cfg.ClimbCenter})
	c.emit.Climb(true)
}
func (climbState) Exit(c *Character, to Stance) {
	b := c.body
	b.UseGravity = true
	b.Position = b.Position.Sub(b.Forward())
	c.camera.ExitClimb()
	c.emit.Climb(false)
}
func (climbState) Move(c *Character, axis mgl64.Vec2, dt float64) {
	b := c.body
	dir := b.Right().Mul(axis.X()).Add(b.Up().Mul(axis.Y()))
	b.AddForce(dir.Mul(c.speed * dt))
	planar := b.PlanarSpeed()
	c.emit.Climbing(planar*axis.X(), planar*axis.Y())
}

func (glideState) Name() string { return "glide" }
func (glideState) Enter(c *Character, from Stance) {
	c.emit.Glide(true)
	c.camera.EnterGlide(c.body.Rotation.Yaw)
}
func (glideState) Exit(c *Character, to Stance) {
	c.emit.Glide(false)
	c.camera.ExitGlide()
	c.body.Rotation = physics.YawOnly(c.body.Rotation.Yaw)
}
func (glideState) Move(c *Character, axis mgl64.Vec2, dt float64) {
	rot := c.body.Rotation
	rate := c.cfg.GlideRotationSpeed
	rot.Pitch += rate.X() * axis.Y() * dt
	rot.Pitch = common.Clamp(rot.Pitch, c.cfg.MinGlidePitch, c.cfg.MaxGlidePitch)
	rot.Roll += rate.Z() * axis.X() * dt
	rot.Yaw += rate.Y() * axis.X() * dt
	c.body.Rotation = rot
}

