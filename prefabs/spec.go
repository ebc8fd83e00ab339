package prefabs

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/character"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/probe"
	"github.com/milk9111/locomotion/world"
	"gopkg.in/yaml.v3"
)

// LoadSpec loads and decodes any definition.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CharacterSpec struct {
	Name         string           `yaml:"name"`
	Body         BodySpec         `yaml:"body"`
	Movement     MovementSpec     `yaml:"movement"`
	Glide        GlideSpec        `yaml:"glide"`
	Step         StepSpec         `yaml:"step"`
	Climb        ClimbSpec        `yaml:"climb"`
	Combat       CombatSpec       `yaml:"combat"`
	Detectors    DetectorsSpec    `yaml:"detectors"`
	Colliders    CollidersSpec    `yaml:"colliders"`
	Camera       CameraSpec       `yaml:"camera"`
	Capabilities CapabilitiesSpec `yaml:"capabilities"`
}

type BodySpec struct {
	Spawn  mgl64.Vec3 `yaml:"spawn"`
	Yaw    float64    `yaml:"yaw"`
	Mass   float64    `yaml:"mass"`
	Drag   float64    `yaml:"drag"`
	Radius float64    `yaml:"radius"`
}

type MovementSpec struct {
	WalkSpeed              float64 `yaml:"walk_speed"`
	SprintSpeed            float64 `yaml:"sprint_speed"`
	WalkToSprintTransition float64 `yaml:"walk_to_sprint_transition"`
	CrouchSpeed            float64 `yaml:"crouch_speed"`
	JumpForce              float64 `yaml:"jump_force"`
	RotationSmoothTime     float64 `yaml:"rotation_smooth_time"`
	MoveDeadzone           float64 `yaml:"move_deadzone"`
}

type GlideSpec struct {
	Speed         float64    `yaml:"speed"`
	AirDrag       float64    `yaml:"air_drag"`
	RotationSpeed mgl64.Vec3 `yaml:"rotation_speed"`
	MinPitch      float64    `yaml:"min_pitch"`
	MaxPitch      float64    `yaml:"max_pitch"`
}

type StepSpec struct {
	UpperOffset   mgl64.Vec3 `yaml:"upper_offset"`
	CheckDistance float64    `yaml:"check_distance"`
	Force         float64    `yaml:"force"`
}

type ClimbSpec struct {
	Speed         float64    `yaml:"speed"`
	CheckDistance float64    `yaml:"check_distance"`
	Offset        mgl64.Vec3 `yaml:"offset"`
}

type CombatSpec struct {
	ResetComboInterval time.Duration `yaml:"reset_combo_interval"`
	SwingDuration      time.Duration `yaml:"swing_duration"`
}

type DetectorSpec struct {
	Offset mgl64.Vec3 `yaml:"offset"`
	Radius float64    `yaml:"radius"`
	Layers []string   `yaml:"layers"`
}

type DetectorsSpec struct {
	Ground DetectorSpec `yaml:"ground"`
	Climb  DetectorSpec `yaml:"climb"`
	Hit    DetectorSpec `yaml:"hit"`
}

type ColliderSpec struct {
	Height float64 `yaml:"height"`
	Center float64 `yaml:"center"`
}

type CollidersSpec struct {
	Stand       ColliderSpec `yaml:"stand"`
	Crouch      ColliderSpec `yaml:"crouch"`
	ClimbCenter float64      `yaml:"climb_center"`
}

type CameraSpec struct {
	ClimbFOV      float64 `yaml:"climb_fov"`
	DefaultFOV    float64 `yaml:"default_fov"`
	POVClampAngle float64 `yaml:"pov_clamp_angle"`
}

type CapabilitiesSpec struct {
	Glide bool `yaml:"glide"`
	Punch bool `yaml:"punch"`
}

func LoadCharacterSpec(name string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the definition into a validated character config.
func (s *CharacterSpec) Config() (character.Config, error) {
	ground, err := s.Detectors.Ground.detector()
	if err != nil {
		return character.Config{}, fmt.Errorf("prefabs: character %s: ground detector: %w", s.Name, err)
	}
	climb, err := s.Detectors.Climb.detector()
	if err != nil {
		return character.Config{}, fmt.Errorf("prefabs: character %s: climb detector: %w", s.Name, err)
	}
	hit, err := s.Detectors.Hit.detector()
	if err != nil {
		return character.Config{}, fmt.Errorf("prefabs: character %s: hit detector: %w", s.Name, err)
	}

	cfg := character.Config{
		WalkSpeed:              s.Movement.WalkSpeed,
		SprintSpeed:            s.Movement.SprintSpeed,
		WalkToSprintTransition: s.Movement.WalkToSprintTransition,
		CrouchSpeed:            s.Movement.CrouchSpeed,
		ClimbSpeed:             s.Climb.Speed,
		GlideSpeed:             s.Glide.Speed,
		JumpForce:              s.Movement.JumpForce,
		AirDrag:                s.Glide.AirDrag,
		GlideRotationSpeed:     s.Glide.RotationSpeed,
		MinGlidePitch:          s.Glide.MinPitch,
		MaxGlidePitch:          s.Glide.MaxPitch,
		RotationSmoothTime:     s.Movement.RotationSmoothTime,
		MoveDeadzone:           s.Movement.MoveDeadzone,
		UpperStepOffset:        s.Step.UpperOffset,
		StepCheckDistance:      s.Step.CheckDistance,
		StepForce:              s.Step.Force,
		ClimbCheckDistance:     s.Climb.CheckDistance,
		ClimbOffset:            s.Climb.Offset,
		ResetComboInterval:     s.Combat.ResetComboInterval,
		SwingDuration:          s.Combat.SwingDuration,
		GroundDetector:         ground,
		ClimbDetector:          climb,
		HitDetector:            hit,
		StandCollider:          character.ColliderProfile(s.Colliders.Stand),
		CrouchCollider:         character.ColliderProfile(s.Colliders.Crouch),
		ClimbCenter:            s.Colliders.ClimbCenter,
		ClimbFOV:               s.Camera.ClimbFOV,
		DefaultFOV:             s.Camera.DefaultFOV,
		POVClampAngle:          s.Camera.POVClampAngle,
		CanGlide:               s.Capabilities.Glide,
		CanPunch:               s.Capabilities.Punch,
	}
	if err := cfg.Validate(); err != nil {
		return character.Config{}, fmt.Errorf("prefabs: character %s: %w", s.Name, err)
	}
	return cfg, nil
}

// NewBody creates the character's rigid body at its spawn point.
func (s *CharacterSpec) NewBody() *physics.Body {
	b := physics.NewBody(s.Body.Spawn, s.Body.Mass, s.Body.Drag, physics.Capsule{
		Radius: s.Body.Radius,
		Height: s.Colliders.Stand.Height,
		Center: s.Colliders.Stand.Center,
	})
	b.Rotation = physics.YawOnly(s.Body.Yaw)
	return b
}

func (d DetectorSpec) detector() (character.Detector, error) {
	mask, err := probe.ParseMask(d.Layers)
	if err != nil {
		return character.Detector{}, err
	}
	return character.Detector{Offset: d.Offset, Radius: d.Radius, Mask: mask}, nil
}

type ArenaSpec struct {
	Name    string      `yaml:"name"`
	Physics PhysicsSpec `yaml:"physics"`
	Boxes   []BoxSpec   `yaml:"boxes"`
}

type PhysicsSpec struct {
	Gravity       mgl64.Vec3    `yaml:"gravity"`
	FixedStep     time.Duration `yaml:"fixed_step"`
	MaxFixedSteps int           `yaml:"max_fixed_steps"`
}

type BoxSpec struct {
	Name  string     `yaml:"name"`
	Min   mgl64.Vec3 `yaml:"min"`
	Max   mgl64.Vec3 `yaml:"max"`
	Layer string     `yaml:"layer"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Physics.FixedStep <= 0 {
		return nil, fmt.Errorf("prefabs: arena %s: fixed_step must be positive", name)
	}
	return &spec, nil
}

// Build adds every box of the arena to w.
func (s *ArenaSpec) Build(w *world.World) error {
	for i, b := range s.Boxes {
		layer := probe.LayerDefault
		if b.Layer != "" {
			l, err := probe.ParseLayer(b.Layer)
			if err != nil {
				return fmt.Errorf("prefabs: arena %s: box %d (%s): %w", s.Name, i, b.Name, err)
			}
			layer = l
		}
		w.AddBox(b.Name, b.Min, b.Max, layer)
	}
	return nil
}
