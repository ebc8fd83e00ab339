package main

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/locomotion/prefabs"
	"go.uber.org/zap/zaptest"
)

func TestRunDemo(t *testing.T) {
	prev := prefabs.Dir
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = prev })

	if err := run("character.yaml", "arena.yaml", "demo", 0, time.Second/60, true, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := run("character.yaml", "arena.yaml", "missing", 0, time.Second/60, false, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected missing script error")
	}
}

// Only the windowed sandbox at the module root may link ebiten; everything
// locosim builds on must stay free of the cgo window stack.
func TestLibraryPackagesAvoidEbiten(t *testing.T) {
	root := filepath.Join("..", "..")
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Dir(path) == root || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range f.Imports {
			if strings.Contains(imp.Path.Value, "hajimehoshi/ebiten") {
				t.Fatalf("%s imports %s", path, imp.Path.Value)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}
