package dev

import (
	"context"
	"os"
	"sync"
	"time"
)

// Change represents a detected file change.
type Change struct {
	Path    string
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Files are the document description files to watch.
	Files []string

	// Interval is the poll interval.
	// Default: 200 milliseconds.
	Interval time.Duration
}

// Watcher polls a fixed set of files for modification-time changes. The
// preview command watches document description files, which are few, so
// polling is sufficient and portable.
type Watcher struct {
	config   WatcherConfig
	onChange func(Change)

	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	timestamps map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval == 0 {
		config.Interval = 200 * time.Millisecond
	}
	return &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching and blocks until the context is cancelled or Stop
// is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	w.scanInitial()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) scanInitial() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, path := range w.config.Files {
		if info, err := os.Stat(path); err == nil {
			w.timestamps[path] = info.ModTime()
		}
	}
}

func (w *Watcher) checkForChanges() {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()

	if callback == nil {
		return
	}

	for _, path := range w.config.Files {
		info, err := os.Stat(path)

		w.mu.Lock()
		last, known := w.timestamps[path]
		w.mu.Unlock()

		switch {
		case err != nil:
			if known {
				w.mu.Lock()
				delete(w.timestamps, path)
				w.mu.Unlock()
				callback(Change{Path: path, Removed: true})
			}
		case !known || info.ModTime().After(last):
			w.mu.Lock()
			w.timestamps[path] = info.ModTime()
			w.mu.Unlock()
			// Editors often save by replace, so a file reappearing
			// counts as a change too.
			callback(Change{Path: path})
		}
	}
}
