package watch

import (
	"context"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op describes what happened to a watched path.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a single change notification.
type Event struct {
	Path string
	Op   Op
}

// Source delivers change events and watcher errors.
type Source interface {
	Events() <-chan Event
	Errors() <-chan error
}

// FSWatcher is a Source backed by OS-native notifications.
type FSWatcher struct {
	w   *fsnotify.Watcher
	evC chan Event
	erC chan error
}

// NewFSWatcher creates a watcher with nothing added yet.
func NewFSWatcher() (*FSWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FSWatcher{w: w, evC: make(chan Event, 128), erC: make(chan error, 1)}
	go fw.loop()
	return fw, nil
}

func (fw *FSWatcher) loop() {
	defer close(fw.evC)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			var op Op
			if ev.Op&fsnotify.Create != 0 {
				op |= OpCreate
			}
			if ev.Op&fsnotify.Write != 0 {
				op |= OpWrite
			}
			if ev.Op&fsnotify.Remove != 0 {
				op |= OpRemove
			}
			if ev.Op&fsnotify.Rename != 0 {
				op |= OpRename
			}
			if ev.Op&fsnotify.Chmod != 0 {
				op |= OpChmod
			}
			fw.evC <- Event{Path: ev.Name, Op: op}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

func (fw *FSWatcher) Events() <-chan Event     { return fw.evC }
func (fw *FSWatcher) Errors() <-chan error     { return fw.erC }
func (fw *FSWatcher) Add(name string) error    { return fw.w.Add(name) }
func (fw *FSWatcher) Remove(name string) error { return fw.w.Remove(name) }
func (fw *FSWatcher) Close() error             { return fw.w.Close() }

// Run collects events from src and calls onChange with the sorted set of
// relevant paths once no new event has arrived for quiet. Chmod-only
// events are ignored. Run returns when ctx is done, the source is closed,
// or the source reports an error.
func Run(ctx context.Context, src Source, quiet time.Duration, relevant func(path string) bool, onChange func(paths []string)) error {
	pending := map[string]bool{}
	timer := time.NewTimer(quiet)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		pending = map[string]bool{}
		onChange(paths)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-src.Events():
			if !ok {
				flush()
				return nil
			}
			if ev.Op == OpChmod || (relevant != nil && !relevant(ev.Path)) {
				continue
			}
			pending[ev.Path] = true
			timer.Reset(quiet)
		case err := <-src.Errors():
			return err
		case <-timer.C:
			flush()
		}
	}
}
