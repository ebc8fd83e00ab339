package input

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const scriptDispatch = `
if __tick >= 0 {
	update(__input, __tick, __state)
}
`

// Script drives input from a tengo scenario. The script defines
//
//	update := func(input, tick, state) { ... }
//
// and calls input.move(x, y), input.sprint(held), input.look(yaw, pitch) and
// input.press(name) to build the frame for that tick. state is a map kept
// between ticks. An optional global `ticks` sets the scenario length.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	log      *zap.Logger
	tick     int
	frame    Frame
}

// NewScript compiles src. name is used in errors and logs.
func NewScript(name string, src []byte, log *zap.Logger) (*Script, error) {
	if log == nil {
		log = zap.NewNop()
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__tick", -1)
	_ = script.Add("__input", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	s := &Script{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		log:      log.With(zap.String("component", "script"), zap.String("script", name)),
	}
	// run the top level once so globals such as `ticks` resolve
	if err := s.compiled.Run(); err != nil {
		return nil, fmt.Errorf("input: run script %s: %w", name, err)
	}
	return s, nil
}

// Ticks returns the scenario length declared by the script, or 0.
func (s *Script) Ticks() int {
	if s == nil || !s.compiled.IsDefined("ticks") {
		return 0
	}
	return s.compiled.Get("ticks").Int()
}

// Next runs update for the next tick and returns the frame it built. On a
// script error the error is logged and an empty frame is returned.
func (s *Script) Next() Frame {
	f, err := s.step()
	if err != nil {
		s.log.Warn("script update failed", zap.Int("tick", s.tick-1), zap.Error(err))
		return Frame{}
	}
	return f
}

func (s *Script) step() (Frame, error) {
	s.frame = Frame{}
	tick := s.tick
	s.tick++
	if err := s.compiled.Set("__tick", tick); err != nil {
		return Frame{}, err
	}
	if err := s.compiled.Set("__input", s.bindings()); err != nil {
		return Frame{}, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return Frame{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return Frame{}, err
	}
	return s.frame, nil
}

func (s *Script) bindings() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, tengo.ErrWrongNumArguments
		}
		s.frame.Move = mgl64.Vec2{objectAsFloat(args[0]), objectAsFloat(args[1])}
		return tengo.TrueValue, nil
	}}

	values["look"] = &tengo.UserFunction{Name: "look", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, tengo.ErrWrongNumArguments
		}
		s.frame.Look[0] = objectAsFloat(args[0])
		if len(args) > 1 {
			s.frame.Look[1] = objectAsFloat(args[1])
		}
		return tengo.TrueValue, nil
	}}

	values["sprint"] = &tengo.UserFunction{Name: "sprint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		held := true
		if len(args) > 0 {
			held = !args[0].IsFalsy()
		}
		s.frame.Sprint = held
		return tengo.TrueValue, nil
	}}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, tengo.ErrWrongNumArguments
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if !s.frame.Press(name) {
			return nil, fmt.Errorf("unknown press %q", name)
		}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.log.Info(strings.Join(parts, " "), zap.Int("tick", s.tick-1))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		f, _ := tengo.ToFloat64(obj)
		return f
	}
}
