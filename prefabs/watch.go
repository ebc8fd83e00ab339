package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeKind tells what sort of file changed.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "spec"
}

// Change is a debounced edit of a definition or script on disk.
type Change struct {
	Path string
	Name string
	Kind ChangeKind
}

const debounce = 100 * time.Millisecond

// Watcher reports edits to the prefab directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
	log     *zap.Logger
}

func NewWatcher(log *zap.Logger, dirs ...string) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
		log:     log.With(zap.String("component", "prefabs")),
	}
	go watcher.run()
	watcher.log.Info("watching prefabs", zap.Strings("dirs", dirs))
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := classify(event)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			w.log.Debug("prefab changed",
				zap.String("path", change.Path),
				zap.Stringer("kind", change.Kind))
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(event fsnotify.Event) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return Change{}, false
	}
	name := filepath.Base(event.Name)
	switch {
	case isSpecFile(event.Name):
		return Change{Path: event.Name, Name: name, Kind: ChangeSpec}, true
	case isScriptFile(event.Name):
		return Change{Path: event.Name, Name: name, Kind: ChangeScript}, true
	}
	return Change{}, false
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
