package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/locomotion/logger"
	"go.uber.org/zap"
)

func main() {
	characterName := flag.String("character", "character.yaml", "character definition in prefabs/")
	arenaName := flag.String("arena", "arena.yaml", "arena definition in prefabs/")
	debug := flag.Bool("debug", false, "draw probes and log at debug level")
	watch := flag.Bool("watch", true, "reload definitions when files in prefabs/ change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "also write logs to this rotated file")
	flag.Parse()

	level := *logLevel
	if *debug {
		level = "debug"
	}
	log := logger.New(level, *logFile)
	defer func() { _ = log.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("locomotion")

	game, err := NewGame(*characterName, *arenaName, *debug, *watch, log)
	if err != nil {
		log.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer game.Close()

	// mouse look needs relative motion, so keep the cursor inside the window
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game exited", zap.Error(err))
	}
}
