package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/locomotion/input"
)

const stickDeadzone = 0.2

// Keyboard polls ebiten for keyboard, mouse and the first gamepad.
type Keyboard struct {
	// MouseSensitivity is degrees of look per pixel of cursor movement.
	MouseSensitivity float64
	// StickLookSpeed is degrees of look per frame at full right-stick deflection.
	StickLookSpeed float64

	lastX, lastY int
	primed       bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{MouseSensitivity: 0.15, StickLookSpeed: 3}
}

// Poll samples the devices. Call it once per ebiten Update.
func (k *Keyboard) Poll() input.Frame {
	var f input.Frame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.Move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.Move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		f.Move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		f.Move[1] -= 1
	}

	f.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	f.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	f.Crouch = inpututil.IsKeyJustPressed(ebiten.KeyControlLeft) || inpututil.IsKeyJustPressed(ebiten.KeyControlRight)
	f.ChangePOV = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	f.Climb = inpututil.IsKeyJustPressed(ebiten.KeyE)
	f.Glide = inpututil.IsKeyJustPressed(ebiten.KeyG)
	cancel := inpututil.IsKeyJustPressed(ebiten.KeyC)
	f.Punch = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	f.MainMenu = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	x, y := ebiten.CursorPosition()
	if k.primed {
		f.Look[0] = float64(x-k.lastX) * k.MouseSensitivity
		f.Look[1] = float64(y-k.lastY) * k.MouseSensitivity
	}
	k.lastX, k.lastY, k.primed = x, y, true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// stick up is negative
			f.Move = mgl64.Vec2{lx, -ly}
		}

		f.Sprint = f.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		f.Jump = f.Jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		f.Crouch = f.Crouch || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightStick)
		f.ChangePOV = f.ChangePOV || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
		f.Climb = f.Climb || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		f.Glide = f.Glide || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		cancel = cancel || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		f.Punch = f.Punch || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		f.MainMenu = f.MainMenu || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			f.Look = f.Look.Add(mgl64.Vec2{rx, ry}.Mul(k.StickLookSpeed))
		}
	}

	f.CancelClimb = cancel
	f.CancelGlide = cancel
	if f.Move.Len() > 1 {
		f.Move = f.Move.Normalize()
	}
	return f
}
