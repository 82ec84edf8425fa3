package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// debounce is how long a burst of events has to settle before changed fires
const debounce = 50 * time.Millisecond

type fsWatcher struct {
	watcher     *fsnotify.Watcher
	logger      *log.Logger
	changed     func(string)
	isValidFile func(string) bool

	mu    sync.Mutex
	timer *time.Timer
}

// newFSWatcher starts watching. changed receives the last accepted file of
// each burst of events.
func newFSWatcher(logger *log.Logger, isValidFile func(string) bool, changed func(string)) (*fsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}
	watcher := &fsWatcher{
		watcher:     w,
		logger:      logger,
		changed:     changed,
		isValidFile: isValidFile,
	}
	go watcher.watch()
	return watcher, nil
}

func (w *fsWatcher) Add(path string) error {
	return w.watcher.Add(path)
}

// AddTree watches root and every directory below it. fsnotify watches are
// not recursive.
func (w *fsWatcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

func (w *fsWatcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *fsWatcher) watch() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				// Closed
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Error watching", "err", err)
		}
	}
}

func (w *fsWatcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	if ev.Has(fsnotify.Create) {
		// New directories need their own watch
		if err := w.AddTree(ev.Name); err != nil {
			w.logger.Debug("Not watching new path", "path", ev.Name, "err", err)
		}
	}
	if ev.Has(fsnotify.Remove) {
		// Some editors save by removing and recreating a file, which drops
		// the watch on it.
		_ = w.watcher.Remove(ev.Name)
		_ = w.watcher.Add(ev.Name)
	}
	if w.isValidFile == nil || !w.isValidFile(ev.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	name := ev.Name
	w.timer = time.AfterFunc(debounce, func() {
		if w.changed != nil {
			w.changed(name)
		}
	})
}

// watchedFile accepts resources and model files outside of the output
// directory, whose changes are our own writes.
func watchedFile(outputDir string) func(string) bool {
	return func(path string) bool {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		if abs == outputDir || strings.HasPrefix(abs, outputDir+string(filepath.Separator)) {
			return false
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".css", ".js", ".yaml", ".yml", ".json":
			return true
		}
		return false
	}
}
