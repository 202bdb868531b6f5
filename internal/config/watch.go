package config

import (
	"log"
	"os"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
// When List is set it is called on every scan, so files created later are
// picked up; otherwise Paths is fixed.
type FileWatcher struct {
	Paths     []string
	List      func() []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// WatchLoader invalidates l whenever one of its files changes.
func WatchLoader(l *Loader, interval time.Duration) *FileWatcher {
	w := NewFileWatcher(nil, interval, func(path string) {
		log.Printf("config changed: %s, reloading", path)
		l.Invalidate()
	})
	w.List = l.Paths().Files
	return w
}

// Start begins polling in a goroutine.
func (w *FileWatcher) Start() {
	// prime cache before returning so edits right after Start are seen
	w.scanAll(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

// scanAll checks mtimes and invokes onChange for files that changed since last scan.
// A file that appears after priming counts as a change.
func (w *FileWatcher) scanAll(prime bool) {
	paths := w.Paths
	if w.List != nil {
		paths = w.List()
	}
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			// if file missing, keep going
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime {
			continue
		}
		if !ok || mt.After(last) {
			if w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
