package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// DefaultGravity is the gravitational acceleration in m/s².
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

// Resolver pushes a body out of static geometry after it has moved.
type Resolver interface {
	Resolve(b *Body)
}

// Simulation owns the dynamic bodies and steps them at a fixed rate.
type Simulation struct {
	Gravity  mgl64.Vec3
	resolver Resolver
	bodies   []*Body
	log      *zap.Logger
}

func NewSimulation(gravity mgl64.Vec3, resolver Resolver, log *zap.Logger) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulation{
		Gravity:  gravity,
		resolver: resolver,
		log:      log.With(zap.String("component", "physics")),
	}
}

// AddBody registers a body for integration.
func (s *Simulation) AddBody(b *Body) {
	if s == nil || b == nil {
		return
	}
	for _, existing := range s.bodies {
		if existing == b {
			return
		}
	}
	s.bodies = append(s.bodies, b)
}

// RemoveBody stops integrating a body.
func (s *Simulation) RemoveBody(b *Body) {
	if s == nil {
		return
	}
	for i, existing := range s.bodies {
		if existing == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return
		}
	}
}

// Bodies returns the registered bodies.
func (s *Simulation) Bodies() []*Body {
	if s == nil {
		return nil
	}
	return append([]*Body(nil), s.bodies...)
}

// Step integrates every body by dt seconds and resolves contacts.
func (s *Simulation) Step(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	for _, b := range s.bodies {
		b.integrate(s.Gravity, dt)
		if s.resolver != nil {
			s.resolver.Resolve(b)
		}
	}
}

// FixedUpdate lets the simulation run as a physics system of the tick loop.
func (s *Simulation) FixedUpdate(dt float64) {
	s.Step(dt)
}
