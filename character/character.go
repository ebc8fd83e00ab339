// Package character is the locomotion core for a single character. It owns
// the stance state machine and the character's motion state, listens to an
// input source and a camera rig, pushes forces into a physics body and
// writes animation parameters.
package character

import (
	"fmt"

	"github.com/milk9111/locomotion/anim"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/combo"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/probe"
	"github.com/milk9111/locomotion/sim"
	"go.uber.org/zap"
)

// Options are the collaborators of a character. Logger is optional.
type Options struct {
	Config Config
	Body   *physics.Body
	World  probe.World
	Input  input.Source
	Rig    camera.Rig
	Sink   anim.Sink
	Clock  *sim.Clock
	Logger *zap.Logger
}

// MotionState is a snapshot of the character's mutable state.
type MotionState struct {
	Stance           Stance
	Speed            float64
	Grounded         bool
	Punching         bool
	Combo            int
	RotationVelocity float64
}

type Character struct {
	cfg    Config
	body   *physics.Body
	world  probe.World
	rig    camera.Rig
	clock  *sim.Clock
	emit   *anim.Emitter
	camera *camera.Coordinator
	combo  *combo.Controller
	log    *zap.Logger

	stance           Stance
	speed            float64
	grounded         bool
	rotationVelocity float64
	climbHit         probe.Hit
	swing            sim.Timer

	unsubscribe []func()
	closed      bool
}

// New validates the config, spawns the character standing at walk speed and
// registers it with the input source and camera rig.
func New(opts Options) (*Character, error) {
	switch {
	case opts.Input == nil:
		return nil, fmt.Errorf("%w: input source", ErrMissingCollaborator)
	case opts.Body == nil:
		return nil, fmt.Errorf("%w: rigid body", ErrMissingCollaborator)
	case opts.World == nil:
		return nil, fmt.Errorf("%w: world probe", ErrMissingCollaborator)
	case opts.Rig == nil:
		return nil, fmt.Errorf("%w: camera rig", ErrMissingCollaborator)
	case opts.Sink == nil:
		return nil, fmt.Errorf("%w: animation sink", ErrMissingCollaborator)
	case opts.Clock == nil:
		return nil, fmt.Errorf("%w: clock", ErrMissingCollaborator)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("component", "character"))

	emit := anim.NewEmitter(opts.Sink)
	coordinator := camera.NewCoordinator(opts.Rig, camera.Settings{
		ClimbFOV:   opts.Config.ClimbFOV,
		DefaultFOV: opts.Config.DefaultFOV,
		ClampAngle: opts.Config.POVClampAngle,
	}, log)
	c := &Character{
		cfg:    opts.Config,
		body:   opts.Body,
		world:  opts.World,
		rig:    opts.Rig,
		clock:  opts.Clock,
		emit:   emit,
		camera: coordinator,
		combo:  combo.New(opts.Clock, opts.Config.ResetComboInterval, emit, log),
		log:    log,
		stance: Stand,
		speed:  opts.Config.WalkSpeed,
	}
	c.body.UseGravity = true
	c.setCollider(c.cfg.StandCollider)

	c.unsubscribe = append(c.unsubscribe,
		opts.Input.Subscribe(c),
		opts.Rig.OnPerspectiveChanged(c.perspectiveChanged),
	)
	log.Info("character spawned",
		zap.Float64("walk_speed", c.cfg.WalkSpeed),
		zap.Bool("can_glide", c.cfg.CanGlide),
		zap.Bool("can_punch", c.cfg.CanPunch))
	return c, nil
}

// Close unregisters from the input source and camera rig and cancels every
// pending timer. It is safe to call more than once.
func (c *Character) Close() {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	for i := len(c.unsubscribe) - 1; i >= 0; i-- {
		c.unsubscribe[i]()
	}
	c.unsubscribe = nil
	c.cancelSwing()
	c.combo.Close()
	c.log.Debug("character closed")
}

func (c *Character) Stance() Stance           { return c.stance }
func (c *Character) Speed() float64           { return c.speed }
func (c *Character) Grounded() bool           { return c.grounded }
func (c *Character) Body() *physics.Body      { return c.body }
func (c *Character) Config() Config           { return c.cfg }
func (c *Character) Combo() *combo.Controller { return c.combo }

// State returns a snapshot of the motion state.
func (c *Character) State() MotionState {
	return MotionState{
		Stance:           c.stance,
		Speed:            c.speed,
		Grounded:         c.grounded,
		Punching:         c.combo.Punching(),
		Combo:            c.combo.Index(),
		RotationVelocity: c.rotationVelocity,
	}
}

// fire runs the transition for (stance, ev) if one exists and its guard
// passes. It reports whether the stance changed.
func (c *Character) fire(ev Event) bool {
	if c.closed {
		return false
	}
	tr, ok := transitions[transitionKey{from: c.stance, event: ev}]
	if !ok {
		c.log.Debug("transition ignored", zap.Stringer("stance", c.stance), zap.Stringer("event", ev))
		return false
	}
	if tr.guard != nil && !tr.guard(c) {
		c.log.Debug("transition rejected", zap.Stringer("stance", c.stance), zap.Stringer("event", ev))
		return false
	}
	from := c.stance
	stanceStates[from].Exit(c, tr.to)
	c.stance = tr.to
	stanceStates[tr.to].Enter(c, from)
	c.log.Debug("stance changed",
		zap.Stringer("from", from),
		zap.Stringer("to", tr.to),
		zap.Stringer("event", ev))
	return true
}

func (c *Character) setCollider(p ColliderProfile) {
	c.body.Collider.Height = p.Height
	c.body.Collider.Center = p.Center
}

func (c *Character) perspectiveChanged(p camera.Perspective) {
	c.emit.Trigger(anim.ChangePerspective)
	c.log.Debug("perspective changed", zap.Stringer("perspective", p))
}

func (c *Character) probeClimbSurface() (probe.Hit, bool) {
	anchor := c.body.TransformPoint(c.cfg.ClimbDetector.Offset)
	return probe.ClimbSurface(c.world, anchor, c.body.Forward(), c.cfg.ClimbCheckDistance, c.cfg.ClimbDetector.Mask)
}

func (c *Character) cancelSwing() {
	if c.swing != 0 {
		c.clock.Cancel(c.swing)
		c.swing = 0
	}
}
