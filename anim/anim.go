// Package anim pushes named locomotion parameters to an animation sink.
package anim

// Parameter names written by the locomotion core.
const (
	Velocity          = "velocity"
	VelocityX         = "velocityX"
	VelocityZ         = "velocityZ"
	ClimbVelocityX    = "climbVelocityX"
	ClimbVelocityY    = "climbVelocityY"
	IsGrounded        = "isGrounded"
	IsCrouch          = "isCrouch"
	IsClimbing        = "isClimbing"
	IsGliding         = "isGliding"
	Combo             = "combo"
	Jump              = "jump"
	Punch             = "punch"
	ChangePerspective = "changePerspective"
)

// Sink accepts named parameter writes, like an animator controller.
type Sink interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
	SetInteger(name string, v int)
	SetTrigger(name string)
}

// Emitter wraps a Sink with the typed writes the core performs.
// Bool parameters are only pushed when their value changes.
type Emitter struct {
	sink  Sink
	bools map[string]bool
}

func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, bools: make(map[string]bool)}
}

// Locomotion writes the stand/crouch movement blend values.
func (e *Emitter) Locomotion(speed, x, z float64) {
	if e == nil || e.sink == nil {
		return
	}
	e.sink.SetFloat(Velocity, speed)
	e.sink.SetFloat(VelocityX, x)
	e.sink.SetFloat(VelocityZ, z)
}

// Climbing writes the climb blend values.
func (e *Emitter) Climbing(x, y float64) {
	if e == nil || e.sink == nil {
		return
	}
	e.sink.SetFloat(ClimbVelocityX, x)
	e.sink.SetFloat(ClimbVelocityY, y)
}

func (e *Emitter) Grounded(v bool) { e.flag(IsGrounded, v) }
func (e *Emitter) Crouch(v bool)   { e.flag(IsCrouch, v) }
func (e *Emitter) Climb(v bool)    { e.flag(IsClimbing, v) }
func (e *Emitter) Glide(v bool)    { e.flag(IsGliding, v) }

func (e *Emitter) Combo(index int) {
	if e == nil || e.sink == nil {
		return
	}
	e.sink.SetInteger(Combo, index)
}

func (e *Emitter) Trigger(name string) {
	if e == nil || e.sink == nil {
		return
	}
	e.sink.SetTrigger(name)
}

func (e *Emitter) flag(name string, v bool) {
	if e == nil || e.sink == nil {
		return
	}
	if prev, ok := e.bools[name]; ok && prev == v {
		return
	}
	e.bools[name] = v
	e.sink.SetBool(name, v)
}
