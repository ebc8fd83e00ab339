// Package session assembles a playable scene: an arena, a physics
// simulation, one character and the input, camera and animation plumbing
// around it, all driven by a single frame loop.
package session

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/anim"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/character"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/sim"
	"github.com/milk9111/locomotion/world"
	"go.uber.org/zap"
)

// Session owns every runtime object of a scene.
type Session struct {
	clock      *sim.Clock
	loop       *sim.Loop
	world      *world.World
	simulation *physics.Simulation
	input      *input.Dispatcher
	rig        *camera.POVRig
	recorder   *anim.Recorder
	character  *character.Character

	unsubscribe []func()
	quit        bool
	closed      bool
	log         *zap.Logger
}

// Snapshot summarises a session for HUDs and logs.
type Snapshot struct {
	Frame        uint64
	PhysicsTicks uint64
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Rotation     physics.Euler
	Motion       character.MotionState
	Perspective  camera.Perspective
	CameraYaw    float64
	FOV          float64
	Boxes        int
}

// Load builds a session from named character and arena definitions.
func Load(characterName, arenaName string, log *zap.Logger) (*Session, error) {
	char, err := prefabs.LoadCharacterSpec(characterName)
	if err != nil {
		return nil, err
	}
	arena, err := prefabs.LoadArenaSpec(arenaName)
	if err != nil {
		return nil, err
	}
	return New(char, arena, log)
}

func New(char *prefabs.CharacterSpec, arena *prefabs.ArenaSpec, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg, err := char.Config()
	if err != nil {
		return nil, err
	}

	w := world.New(log)
	if err := arena.Build(w); err != nil {
		return nil, err
	}

	clock := sim.NewClock(arena.Physics.FixedStep)
	loop := sim.NewLoop(clock, arena.Physics.FixedStep, log)
	if arena.Physics.MaxFixedSteps > 0 {
		loop.MaxFixedSteps = arena.Physics.MaxFixedSteps
	}

	s := &Session{
		clock:      clock,
		loop:       loop,
		world:      w,
		simulation: physics.NewSimulation(arena.Physics.Gravity, w, log),
		input:      input.NewDispatcher(log),
		rig:        camera.NewPOVRig(cfg.DefaultFOV),
		recorder:   anim.NewRecorder(),
		log:        log.With(zap.String("component", "session")),
	}
	s.unsubscribe = append(s.unsubscribe,
		s.input.SubscribeSystem(s.rig),
		s.input.SubscribeSystem(s))

	body := char.NewBody()
	s.simulation.AddBody(body)

	c, err := character.New(character.Options{
		Config: cfg,
		Body:   body,
		World:  w,
		Input:  s.input,
		Rig:    s.rig,
		Sink:   s.recorder,
		Clock:  clock,
		Logger: log,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("session: %w", err)
	}
	s.character = c

	// input first, then character forces, then integration
	loop.Add(s.input)
	loop.AddPhysics(c)
	loop.AddPhysics(s.simulation)

	s.log.Info("session ready",
		zap.String("character", char.Name),
		zap.String("arena", arena.Name),
		zap.Int("boxes", w.Len()),
		zap.Duration("fixed_step", arena.Physics.FixedStep))
	return s, nil
}

// Push queues a frame of input for the next Step. Look deltas go straight
// to the camera rig.
func (s *Session) Push(f input.Frame) {
	if s == nil || s.closed {
		return
	}
	if f.Look != (mgl64.Vec2{}) {
		s.rig.Look(f.Look.X(), f.Look.Y())
	}
	s.input.Push(f)
}

// Step runs one frame of length d.
func (s *Session) Step(d time.Duration) {
	if s == nil || s.closed {
		return
	}
	s.loop.Step(d)
}

// Run feeds the script to the session one frame at a time until the script's
// tick count is reached or the session is asked to quit. It returns the
// number of frames run.
func (s *Session) Run(script *input.Script, ticks int, frame time.Duration) int {
	if ticks <= 0 {
		ticks = script.Ticks()
	}
	n := 0
	for ; n < ticks && !s.Quit(); n++ {
		s.Push(script.Next())
		s.Step(frame)
	}
	return n
}

func (s *Session) ChangePOV() {}

// MainMenu asks the host to leave the session.
func (s *Session) MainMenu() {
	if !s.quit {
		s.log.Info("quit requested")
	}
	s.quit = true
}

func (s *Session) Quit() bool                      { return s.quit }
func (s *Session) Character() *character.Character { return s.character }
func (s *Session) World() *world.World             { return s.world }
func (s *Session) Rig() *camera.POVRig             { return s.rig }
func (s *Session) Recorder() *anim.Recorder        { return s.recorder }
func (s *Session) Clock() *sim.Clock               { return s.clock }

func (s *Session) Snapshot() Snapshot {
	b := s.character.Body()
	return Snapshot{
		Frame:        s.loop.Frames(),
		PhysicsTicks: s.loop.PhysicsTicks(),
		Position:     b.Position,
		Velocity:     b.Velocity,
		Rotation:     b.Rotation,
		Motion:       s.character.State(),
		Perspective:  s.rig.Perspective(),
		CameraYaw:    s.rig.Yaw(),
		FOV:          s.rig.FOV(),
		Boxes:        s.world.Len(),
	}
}

// Close detaches the character and every subscription. It is safe to call
// more than once.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	if s.character != nil {
		s.character.Close()
		s.simulation.RemoveBody(s.character.Body())
	}
	for i := len(s.unsubscribe) - 1; i >= 0; i-- {
		s.unsubscribe[i]()
	}
	s.unsubscribe = nil
}
