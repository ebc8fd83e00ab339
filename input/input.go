// Package input turns device or scripted input into the discrete events the
// locomotion core observes.
package input

import "github.com/go-gl/mathgl/mgl64"

// Frame is one tick of sampled input. Move and Sprint are continuous; the
// remaining flags are presses and fire at most once per frame.
type Frame struct {
	Move   mgl64.Vec2
	Sprint bool
	// Look is the camera rotation requested this frame, in degrees.
	Look mgl64.Vec2

	Jump        bool
	Crouch      bool
	ChangePOV   bool
	Climb       bool
	Glide       bool
	CancelClimb bool
	CancelGlide bool
	Punch       bool
	MainMenu    bool
}

// Merge folds a later frame into f. Move and Sprint take the later sample,
// Look deltas add up and a press in either frame is kept.
func (f Frame) Merge(next Frame) Frame {
	return Frame{
		Move:   next.Move,
		Sprint: next.Sprint,
		Look:   f.Look.Add(next.Look),

		Jump:        f.Jump || next.Jump,
		Crouch:      f.Crouch || next.Crouch,
		ChangePOV:   f.ChangePOV || next.ChangePOV,
		Climb:       f.Climb || next.Climb,
		Glide:       f.Glide || next.Glide,
		CancelClimb: f.CancelClimb || next.CancelClimb,
		CancelGlide: f.CancelGlide || next.CancelGlide,
		Punch:       f.Punch || next.Punch,
		MainMenu:    f.MainMenu || next.MainMenu,
	}
}

// Handler receives gameplay input.
type Handler interface {
	Move(axis mgl64.Vec2)
	Sprint(held bool)
	Jump()
	Climb()
	CancelClimb()
	Crouch()
	Glide()
	CancelGlide()
	Punch()
}

// SystemHandler receives input that is not owned by the character.
type SystemHandler interface {
	ChangePOV()
	MainMenu()
}

// Source lets observers register for input. The returned function removes
// the registration and is safe to call more than once.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
	SubscribeSystem(h SystemHandler) (unsubscribe func())
}

var pressNames = map[string]func(*Frame){
	"jump":         func(f *Frame) { f.Jump = true },
	"crouch":       func(f *Frame) { f.Crouch = true },
	"change_pov":   func(f *Frame) { f.ChangePOV = true },
	"climb":        func(f *Frame) { f.Climb = true },
	"glide":        func(f *Frame) { f.Glide = true },
	"cancel_climb": func(f *Frame) { f.CancelClimb = true },
	"cancel_glide": func(f *Frame) { f.CancelGlide = true },
	"cancel":       func(f *Frame) { f.CancelClimb, f.CancelGlide = true, true },
	"punch":        func(f *Frame) { f.Punch = true },
	"main_menu":    func(f *Frame) { f.MainMenu = true },
}

// Press sets the named press flag. It returns false for unknown names.
func (f *Frame) Press(name string) bool {
	set, ok := pressNames[name]
	if !ok {
		return false
	}
	set(f)
	return true
}
