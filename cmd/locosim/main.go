// Command locosim runs a character through a scripted scenario without a
// window and logs what happened.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/milk9111/locomotion/anim"
	"github.com/milk9111/locomotion/input"
	"github.com/milk9111/locomotion/logger"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/session"
	"go.uber.org/zap"
)

func main() {
	characterName := flag.String("character", "character.yaml", "character definition in prefabs/")
	arenaName := flag.String("arena", "arena.yaml", "arena definition in prefabs/")
	scriptName := flag.String("script", "demo", "scenario script in prefabs/scripts/")
	ticks := flag.Int("ticks", 0, "frames to run; 0 uses the script's ticks")
	frame := flag.Duration("frame", time.Second/60, "length of one frame")
	trace := flag.Bool("trace", false, "log every animation parameter write")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "also write logs to this rotated file")
	flag.Parse()

	log := logger.New(*logLevel, *logFile)
	defer func() { _ = log.Sync() }()

	if err := run(*characterName, *arenaName, *scriptName, *ticks, *frame, *trace, log); err != nil {
		log.Error("locosim failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(characterName, arenaName, scriptName string, ticks int, frame time.Duration, trace bool, log *zap.Logger) error {
	src, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return err
	}
	script, err := input.NewScript(scriptName, src, log)
	if err != nil {
		return err
	}

	s, err := session.Load(characterName, arenaName, log)
	if err != nil {
		return err
	}
	defer s.Close()

	n := s.Run(script, ticks, frame)
	snap := s.Snapshot()
	rec := s.Recorder()

	if trace {
		for i, w := range rec.History {
			log.Debug("anim", zap.Int("write", i), zap.Stringer("param", w))
		}
	}

	log.Info("scenario finished",
		zap.String("script", scriptName),
		zap.Int("frames", n),
		zap.Uint64("physics_ticks", snap.PhysicsTicks),
		zap.Stringer("stance", snap.Motion.Stance),
		zap.Bool("grounded", snap.Motion.Grounded),
		zap.Float64("speed", snap.Motion.Speed),
		zap.Float64s("position", snap.Position[:]),
		zap.Float64s("velocity", snap.Velocity[:]),
		zap.Stringer("perspective", snap.Perspective),
		zap.Ints("combo", rec.IntegerSeries(anim.Combo)),
		zap.Int("jumps", rec.Triggers[anim.Jump]),
		zap.Int("punches", rec.Triggers[anim.Punch]),
		zap.Int("boxes_left", snap.Boxes),
		zap.Bool("quit", s.Quit()))
	return nil
}
