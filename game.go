package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/probe"
	"github.com/milk9111/locomotion/session"
	"github.com/milk9111/locomotion/world"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// pixels per world unit in the top-down view
	zoom = 24
)

type Game struct {
	frames int

	characterName string
	arenaName     string
	debug         bool

	keyboard *Keyboard
	session  *session.Session
	watcher  *prefabs.Watcher
	log      *zap.Logger

	reloadErr error
}

func NewGame(characterName, arenaName string, debug, watch bool, log *zap.Logger) (*Game, error) {
	s, err := session.Load(characterName, arenaName, log)
	if err != nil {
		return nil, err
	}
	g := &Game{
		characterName: characterName,
		arenaName:     arenaName,
		debug:         debug,
		keyboard:      NewKeyboard(),
		session:       s,
		log:           log,
	}
	if watch {
		w, err := prefabs.NewWatcher(log, prefabs.Dir)
		if err != nil {
			log.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	g.session.Push(g.keyboard.Poll())
	g.session.Step(time.Second / time.Duration(ebiten.TPS()))
	if g.session.Quit() {
		return ebiten.Termination
	}
	return nil
}

// pollReload rebuilds the session when a definition changed on disk. A
// broken edit keeps the running session.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if change.Kind != prefabs.ChangeSpec {
				continue
			}
			s, err := session.Load(g.characterName, g.arenaName, g.log)
			if err != nil {
				g.reloadErr = err
				g.log.Warn("reload failed", zap.String("file", change.Name), zap.Error(err))
				continue
			}
			g.session.Close()
			g.session = s
			g.reloadErr = nil
			g.log.Info("reloaded", zap.String("file", change.Name))
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	snap := g.session.Snapshot()
	// the view follows the character
	originX := float64(baseWidth)/2 - snap.Position.X()*zoom
	originY := float64(baseHeight)/2 + snap.Position.Z()*zoom
	toScreen := func(x, z float64) (float32, float32) {
		return float32(originX + x*zoom), float32(originY - z*zoom)
	}

	for _, b := range g.session.World().Boxes() {
		x0, y0 := toScreen(b.Min.X(), b.Max.Z())
		x1, y1 := toScreen(b.Max.X(), b.Min.Z())
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, boxColor(b), false)
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colornames.Black, false)
	}

	body := g.session.Character().Body()
	cx, cy := toScreen(body.Position.X(), body.Position.Z())
	vector.FillCircle(screen, cx, cy, float32(body.Collider.Radius*zoom), colornames.Orange, true)
	fwd := body.Forward()
	fx, fy := toScreen(body.Position.X()+fwd.X(), body.Position.Z()+fwd.Z())
	vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.White, true)

	if g.debug {
		g.drawProbes(screen, toScreen)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	m := snap.Motion
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Stance: %s, speed: %.0f, grounded: %v, combo: %d, punching: %v",
		m.Stance, m.Speed, m.Grounded, m.Combo, m.Punching), 0, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Pos: %.2f %.2f %.2f  Vel: %.2f %.2f %.2f  Rot: %.0f/%.0f/%.0f",
		snap.Position.X(), snap.Position.Y(), snap.Position.Z(),
		snap.Velocity.X(), snap.Velocity.Y(), snap.Velocity.Z(),
		snap.Rotation.Pitch, snap.Rotation.Yaw, snap.Rotation.Roll), 0, 40)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Camera: %s, yaw: %.0f, fov: %.0f",
		snap.Perspective, snap.CameraYaw, snap.FOV), 0, 60)
	if g.reloadErr != nil {
		ebitenutil.DebugPrintAt(screen, "reload failed: "+g.reloadErr.Error(), 0, 80)
	}
}

func (g *Game) drawProbes(screen *ebiten.Image, toScreen func(x, z float64) (float32, float32)) {
	c := g.session.Character()
	cfg := c.Config()
	body := c.Body()
	for _, d := range []struct {
		offset mgl64.Vec3
		radius float64
		clr    color.Color
	}{
		{cfg.GroundDetector.Offset, cfg.GroundDetector.Radius, colornames.Lime},
		{cfg.HitDetector.Offset, cfg.HitDetector.Radius, colornames.Red},
	} {
		p := body.TransformPoint(d.offset)
		x, y := toScreen(p.X(), p.Z())
		vector.StrokeCircle(screen, x, y, float32(math.Max(d.radius, 0.05)*zoom), 1, d.clr, true)
	}
	anchor := body.TransformPoint(cfg.ClimbDetector.Offset)
	end := anchor.Add(body.Forward().Mul(cfg.ClimbCheckDistance))
	x0, y0 := toScreen(anchor.X(), anchor.Z())
	x1, y1 := toScreen(end.X(), end.Z())
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, colornames.Yellow, true)
}

func boxColor(b *world.Box) color.Color {
	switch {
	case b.Layer&probe.LayerClimbable != 0:
		return colornames.Seagreen
	case b.Layer&probe.LayerDestructible != 0:
		return colornames.Sandybrown
	case b.Layer&probe.LayerGround != 0:
		return colornames.Dimgray
	default:
		return colornames.Slategray
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close watcher", zap.Error(err))
		}
	}
	g.session.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
