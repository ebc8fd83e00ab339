// Package camera holds the camera rig boundary and the commands the
// locomotion core sends to it on stance changes.
package camera

import "go.uber.org/zap"

// Perspective is the active camera mode.
type Perspective int

const (
	ThirdPerson Perspective = iota
	FirstPerson
)

func (p Perspective) String() string {
	switch p {
	case FirstPerson:
		return "first_person"
	default:
		return "third_person"
	}
}

// Rig is the camera rig the core talks to.
type Rig interface {
	Perspective() Perspective
	// Yaw is the horizontal look angle in degrees.
	Yaw() float64
	// SetClampedPOV limits horizontal look to referenceYaw ± clampAngle with
	// wrap-around off. Disabling restores full ±180 with wrap.
	SetClampedPOV(enabled bool, referenceYaw, clampAngle float64)
	SetThirdPersonFOV(fov float64)
	// OnPerspectiveChanged registers fn and returns a function that removes it.
	OnPerspectiveChanged(fn func(Perspective)) (unsubscribe func())
}

// Settings are the lens and look limits the coordinator applies.
type Settings struct {
	ClimbFOV   float64
	DefaultFOV float64
	// ClampAngle is the half range of horizontal look while climbing or gliding.
	ClampAngle float64
}

// Coordinator turns climb and glide entry/exit into rig commands.
type Coordinator struct {
	rig      Rig
	settings Settings
	log      *zap.Logger
}

func NewCoordinator(rig Rig, settings Settings, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{rig: rig, settings: settings, log: log.With(zap.String("component", "camera"))}
}

func (c *Coordinator) EnterClimb(yaw float64) {
	if c == nil || c.rig == nil {
		return
	}
	c.rig.SetClampedPOV(true, yaw, c.settings.ClampAngle)
	c.rig.SetThirdPersonFOV(c.settings.ClimbFOV)
	c.log.Debug("climb camera", zap.Float64("yaw", yaw), zap.Float64("fov", c.settings.ClimbFOV))
}

func (c *Coordinator) ExitClimb() {
	if c == nil || c.rig == nil {
		return
	}
	c.rig.SetClampedPOV(false, 0, c.settings.ClampAngle)
	c.rig.SetThirdPersonFOV(c.settings.DefaultFOV)
}

func (c *Coordinator) EnterGlide(yaw float64) {
	if c == nil || c.rig == nil {
		return
	}
	c.rig.SetClampedPOV(true, yaw, c.settings.ClampAngle)
}

func (c *Coordinator) ExitGlide() {
	if c == nil || c.rig == nil {
		return
	}
	c.rig.SetClampedPOV(false, 0, c.settings.ClampAngle)
}
