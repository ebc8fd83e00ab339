// Package sim runs the single-threaded frame/physics tick loop.
package sim

import (
	"time"

	"go.uber.org/zap"
)

// System runs once per rendered frame.
type System interface {
	Update(dt float64)
}

// PhysicsSystem runs once per fixed physics step.
type PhysicsSystem interface {
	FixedUpdate(dt float64)
}

// SystemFunc adapts a function to System.
type SystemFunc func(dt float64)

func (f SystemFunc) Update(dt float64) { f(dt) }

// PhysicsFunc adapts a function to PhysicsSystem.
type PhysicsFunc func(dt float64)

func (f PhysicsFunc) FixedUpdate(dt float64) { f(dt) }

// DefaultMaxFixedSteps bounds catch-up work after a long frame.
const DefaultMaxFixedSteps = 8

// Loop advances a Clock and drives frame and physics systems in registration
// order. Physics systems may run zero or more times per frame.
type Loop struct {
	clock   *Clock
	systems []System
	physics []PhysicsSystem

	fixedStep     time.Duration
	accumulator   time.Duration
	MaxFixedSteps int

	frames       uint64
	physicsTicks uint64

	log *zap.Logger
}

func NewLoop(clock *Clock, fixedStep time.Duration, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		clock:         clock,
		fixedStep:     fixedStep,
		MaxFixedSteps: DefaultMaxFixedSteps,
		log:           log.With(zap.String("component", "loop")),
	}
}

func (l *Loop) Clock() *Clock {
	if l == nil {
		return nil
	}
	return l.clock
}

// Add appends a frame system.
func (l *Loop) Add(s System) {
	if s == nil {
		return
	}
	l.systems = append(l.systems, s)
}

// AddPhysics appends a physics system.
func (l *Loop) AddPhysics(s PhysicsSystem) {
	if s == nil {
		return
	}
	l.physics = append(l.physics, s)
}

// Step runs one frame of length d: timers, frame systems, then every fixed
// physics step that fits into the accumulated time.
func (l *Loop) Step(d time.Duration) {
	if l == nil || l.clock == nil {
		return
	}
	l.frames++
	l.clock.Advance(d)

	dt := l.clock.Delta()
	for _, s := range l.systems {
		s.Update(dt)
	}

	if l.fixedStep <= 0 {
		return
	}
	l.accumulator += d
	steps := 0
	for l.accumulator >= l.fixedStep {
		if l.MaxFixedSteps > 0 && steps >= l.MaxFixedSteps {
			l.log.Debug("dropping physics backlog",
				zap.Duration("backlog", l.accumulator),
				zap.Uint64("frame", l.frames))
			l.accumulator = 0
			break
		}
		l.accumulator -= l.fixedStep
		steps++
		l.physicsTicks++
		fdt := l.fixedStep.Seconds()
		for _, s := range l.physics {
			s.FixedUpdate(fdt)
		}
	}
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// PhysicsTicks returns how many fixed steps have run.
func (l *Loop) PhysicsTicks() uint64 {
	return l.physicsTicks
}
