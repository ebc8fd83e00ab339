package character

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/probe"
)

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("character: invalid config")
	// ErrMissingCollaborator is returned by New when a required dependency is nil.
	ErrMissingCollaborator = errors.New("character: missing collaborator")
)

// Detector is a probe anchor local to the character.
type Detector struct {
	Offset mgl64.Vec3
	Radius float64
	Mask   probe.LayerMask
}

// ColliderProfile is a capsule height and centre for one stance.
type ColliderProfile struct {
	Height float64
	Center float64
}

// Config is the per-character tuning. It is read once at spawn and never
// mutated by the character.
type Config struct {
	WalkSpeed              float64
	SprintSpeed            float64
	WalkToSprintTransition float64
	CrouchSpeed            float64
	ClimbSpeed             float64
	GlideSpeed             float64

	JumpForce          float64
	AirDrag            float64
	GlideRotationSpeed mgl64.Vec3
	MinGlidePitch      float64
	MaxGlidePitch      float64
	RotationSmoothTime float64
	MoveDeadzone       float64

	UpperStepOffset   mgl64.Vec3
	StepCheckDistance float64
	StepForce         float64

	ClimbCheckDistance float64
	// ClimbOffset.Z is the distance kept from the wall, ClimbOffset.Y the
	// drop below the probe hit.
	ClimbOffset mgl64.Vec3

	ResetComboInterval time.Duration
	// SwingDuration schedules attack resolution after a punch. Zero leaves
	// it to the caller (an animation event) via AttackResolved.
	SwingDuration time.Duration

	GroundDetector Detector
	ClimbDetector  Detector
	HitDetector    Detector

	StandCollider  ColliderProfile
	CrouchCollider ColliderProfile
	ClimbCenter    float64

	ClimbFOV      float64
	DefaultFOV    float64
	POVClampAngle float64

	CanGlide bool
	CanPunch bool
}

// DefaultConfig returns the stock character tuning.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:              600,
		SprintSpeed:            1200,
		WalkToSprintTransition: 600,
		CrouchSpeed:            300,
		ClimbSpeed:             400,
		GlideSpeed:             600,
		JumpForce:              15000,
		AirDrag:                450,
		GlideRotationSpeed:     mgl64.Vec3{30, 60, 30},
		MinGlidePitch:          0,
		MaxGlidePitch:          45,
		RotationSmoothTime:     0.1,
		MoveDeadzone:           0.1,
		UpperStepOffset:        mgl64.Vec3{0, 0.5, 0},
		StepCheckDistance:      0.6,
		StepForce:              1250,
		ClimbCheckDistance:     1,
		ClimbOffset:            mgl64.Vec3{0, 1, 0.5},
		ResetComboInterval:     time.Second,
		SwingDuration:          400 * time.Millisecond,
		GroundDetector:         Detector{Offset: mgl64.Vec3{0, 0.05, 0}, Radius: 0.15, Mask: probe.LayerGround | probe.LayerDefault},
		ClimbDetector:          Detector{Offset: mgl64.Vec3{0, 1, 0}, Mask: probe.LayerClimbable},
		HitDetector:            Detector{Offset: mgl64.Vec3{0, 1, 0.6}, Radius: 0.5, Mask: probe.LayerDestructible},
		StandCollider:          ColliderProfile{Height: 1.8, Center: 0.9},
		CrouchCollider:         ColliderProfile{Height: 1.3, Center: 0.66},
		ClimbCenter:            1.3,
		ClimbFOV:               70,
		DefaultFOV:             40,
		POVClampAngle:          45,
		CanGlide:               true,
		CanPunch:               true,
	}
}

// Validate reports every problem in the config at once. The returned error
// matches ErrInvalidConfig with errors.Is.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	mask := func(name string, m probe.LayerMask) {
		if m == 0 {
			errs = append(errs, fmt.Errorf("%s mask is empty", name))
		}
	}

	positive("walk_speed", c.WalkSpeed)
	positive("sprint_speed", c.SprintSpeed)
	positive("walk_to_sprint_transition", c.WalkToSprintTransition)
	positive("crouch_speed", c.CrouchSpeed)
	positive("climb_speed", c.ClimbSpeed)
	positive("jump_force", c.JumpForce)
	nonNegative("air_drag", c.AirDrag)
	nonNegative("rotation_smooth_time", c.RotationSmoothTime)
	positive("step_check_distance", c.StepCheckDistance)
	nonNegative("step_force", c.StepForce)
	positive("climb_check_distance", c.ClimbCheckDistance)
	positive("ground_detector.radius", c.GroundDetector.Radius)
	positive("stand_collider.height", c.StandCollider.Height)
	positive("crouch_collider.height", c.CrouchCollider.Height)
	positive("climb_fov", c.ClimbFOV)
	positive("default_fov", c.DefaultFOV)
	mask("ground_detector", c.GroundDetector.Mask)
	mask("climb_detector", c.ClimbDetector.Mask)

	if c.SprintSpeed < c.WalkSpeed {
		errs = append(errs, fmt.Errorf("sprint_speed %v is below walk_speed %v", c.SprintSpeed, c.WalkSpeed))
	}
	// no stance may move faster than a sprint
	if c.CrouchSpeed > c.SprintSpeed {
		errs = append(errs, fmt.Errorf("crouch_speed %v is above sprint_speed %v", c.CrouchSpeed, c.SprintSpeed))
	}
	if c.ClimbSpeed > c.SprintSpeed {
		errs = append(errs, fmt.Errorf("climb_speed %v is above sprint_speed %v", c.ClimbSpeed, c.SprintSpeed))
	}
	if c.MinGlidePitch > c.MaxGlidePitch {
		errs = append(errs, fmt.Errorf("glide pitch bounds inverted: min %v > max %v", c.MinGlidePitch, c.MaxGlidePitch))
	}
	if c.MoveDeadzone < 0 || c.MoveDeadzone >= 1 {
		errs = append(errs, fmt.Errorf("move_deadzone must be in [0,1), got %v", c.MoveDeadzone))
	}
	if c.POVClampAngle <= 0 || c.POVClampAngle > 180 {
		errs = append(errs, fmt.Errorf("pov_clamp_angle must be in (0,180], got %v", c.POVClampAngle))
	}
	if c.SwingDuration < 0 {
		errs = append(errs, fmt.Errorf("swing_duration must not be negative, got %v", c.SwingDuration))
	}
	if c.CanGlide {
		positive("glide_speed", c.GlideSpeed)
	}
	if c.CanPunch {
		if c.ResetComboInterval <= 0 {
			errs = append(errs, fmt.Errorf("reset_combo_interval must be positive, got %v", c.ResetComboInterval))
		}
		positive("hit_detector.radius", c.HitDetector.Radius)
		mask("hit_detector", c.HitDetector.Mask)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
