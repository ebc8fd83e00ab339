package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/character"
	"github.com/milk9111/locomotion/probe"
	"github.com/milk9111/locomotion/world"
	"go.uber.org/zap/zaptest"
)

// useDir points the disk override at a fresh temp dir for the test.
func useDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
	return dir
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedCharacterMatchesDefaults(t *testing.T) {
	useDir(t)
	spec, err := LoadCharacterSpec("character.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg != character.DefaultConfig() {
		t.Fatalf("embedded character differs from defaults:\n got %+v\nwant %+v", cfg, character.DefaultConfig())
	}

	b := spec.NewBody()
	if b.Mass != 1 || b.Drag != 2 || b.Collider.Radius != 0.3 || b.Collider.Height != 1.8 {
		t.Fatalf("unexpected body %+v", b)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := useDir(t)
	writeFile(t, filepath.Join(dir, "character.yaml"), `
name: tester
body: {mass: 2, radius: 0.4, yaw: 90, spawn: [1, 0, 2]}
movement: {walk_speed: 5, sprint_speed: 10, walk_to_sprint_transition: 5, crouch_speed: 2, jump_force: 100}
glide: {speed: 3, air_drag: 1, rotation_speed: [1, 1, 1], min_pitch: -10, max_pitch: 10}
step: {check_distance: 0.5, force: 10}
climb: {speed: 1, check_distance: 1}
combat: {reset_combo_interval: 750ms}
detectors:
  ground: {radius: 0.1, layers: [ground]}
  climb: {layers: [climbable]}
  hit: {radius: 0.5, layers: [destructible]}
colliders:
  stand: {height: 2, center: 1}
  crouch: {height: 1, center: 0.5}
  climb_center: 1
camera: {climb_fov: 60, default_fov: 50, pov_clamp_angle: 30}
capabilities: {glide: false, punch: true}
`)
	if _, ok := ModTime("character.yaml"); !ok {
		t.Fatalf("expected disk mod time")
	}

	spec, err := LoadCharacterSpec("prefabs/character.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.WalkSpeed != 5 || cfg.CanGlide || cfg.ResetComboInterval != 750*time.Millisecond {
		t.Fatalf("override not applied: %+v", cfg)
	}
	if cfg.GroundDetector.Mask != probe.LayerGround {
		t.Fatalf("ground mask = %v", cfg.GroundDetector.Mask)
	}
	b := spec.NewBody()
	if b.Position != (mgl64.Vec3{1, 0, 2}) || b.Rotation.Yaw != 90 {
		t.Fatalf("unexpected spawn %v %+v", b.Position, b.Rotation)
	}
}

func TestCharacterConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		edit func(*CharacterSpec)
		want string
	}{
		{"unknown_layer", func(s *CharacterSpec) { s.Detectors.Hit.Layers = []string{"lava"} }, "hit detector"},
		{"bad_walk_speed", func(s *CharacterSpec) { s.Movement.WalkSpeed = 0 }, "walk_speed"},
		{"empty_ground_mask", func(s *CharacterSpec) { s.Detectors.Ground.Layers = nil }, "ground_detector"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			useDir(t)
			spec, err := LoadCharacterSpec("character.yaml")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tc.edit(spec)
			_, err = spec.Config()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}

	t.Run("invalid_wraps_sentinel", func(t *testing.T) {
		useDir(t)
		spec, _ := LoadCharacterSpec("character.yaml")
		spec.Movement.SprintSpeed = 1
		_, err := spec.Config()
		if !errors.Is(err, character.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestLoadSpecErrors(t *testing.T) {
	dir := useDir(t)
	if _, err := LoadSpec[ArenaSpec]("missing.yaml"); err == nil || !strings.Contains(err.Error(), "prefabs: load") {
		t.Fatalf("expected load error, got %v", err)
	}
	writeFile(t, filepath.Join(dir, "broken.yaml"), "boxes: [")
	if _, err := LoadSpec[ArenaSpec]("broken.yaml"); err == nil || !strings.Contains(err.Error(), "prefabs: unmarshal") {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
	writeFile(t, filepath.Join(dir, "still.yaml"), "name: still\n")
	if _, err := LoadArenaSpec("still.yaml"); err == nil {
		t.Fatalf("expected fixed_step error")
	}
}

func TestArenaBuild(t *testing.T) {
	useDir(t)
	spec, err := LoadArenaSpec("arena.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Physics.FixedStep != 20*time.Millisecond || spec.Physics.MaxFixedSteps != 8 {
		t.Fatalf("physics = %+v", spec.Physics)
	}
	if spec.Physics.Gravity != (mgl64.Vec3{0, -9.81, 0}) {
		t.Fatalf("gravity = %v", spec.Physics.Gravity)
	}

	w := world.New(zaptest.NewLogger(t))
	if err := spec.Build(w); err != nil {
		t.Fatalf("build: %v", err)
	}
	if w.Len() != len(spec.Boxes) {
		t.Fatalf("built %d boxes, want %d", w.Len(), len(spec.Boxes))
	}
	crates := w.SphereOverlap(mgl64.Vec3{-6, 0.5, 6.5}, 2, probe.LayerDestructible)
	if len(crates) != 3 {
		t.Fatalf("expected 3 crates near the stack, got %v", crates)
	}

	spec.Boxes = append(spec.Boxes, BoxSpec{Name: "bad", Layer: "lava"})
	if err := spec.Build(world.New(nil)); err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected unknown layer error, got %v", err)
	}
}

func TestLoadScript(t *testing.T) {
	dir := useDir(t)
	data, err := LoadScript("demo")
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if !strings.Contains(string(data), "update :=") {
		t.Fatalf("unexpected script %q", data)
	}

	writeFile(t, filepath.Join(dir, "scripts", "demo.tengo"), "ticks := 1\n")
	data, err = LoadScript("scripts/demo.tengo")
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if string(data) != "ticks := 1\n" {
		t.Fatalf("override not used: %q", data)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		ok   bool
		kind ChangeKind
	}{
		{"prefabs/character.yaml", true, ChangeSpec},
		{"prefabs/arena.YML", true, ChangeSpec},
		{"prefabs/scripts/demo.tengo", true, ChangeScript},
		{"prefabs/notes.txt", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			c, ok := classify(fsnotify.Event{Name: tc.path, Op: fsnotify.Write})
			if ok != tc.ok {
				t.Fatalf("ok = %v", ok)
			}
			if ok && c.Kind != tc.kind {
				t.Fatalf("kind = %v", c.Kind)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(zaptest.NewLogger(t), dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "arena.yaml"), "name: x\n")
	select {
	case c := <-w.Events:
		if c.Name != "arena.yaml" || c.Kind != ChangeSpec {
			t.Fatalf("unexpected change %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
