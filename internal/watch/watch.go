// Package watch rebuilds posts when their sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/roboco-io/postmd/internal/batch"
)

// DefaultDebounce is how long a path must stay quiet before it is rebuilt.
const DefaultDebounce = 200 * time.Millisecond

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Rebuilds      int
	Removed       int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// Watcher keeps an output tree in sync with a source tree.
type Watcher struct {
	// Debounce overrides DefaultDebounce when set before Start.
	Debounce time.Duration
	// OnBuild, if set, receives every file result, including those of the
	// initial build. After Start returns it is called from the watcher goroutine.
	OnBuild func(batch.FileResult)

	mu        sync.Mutex
	opts      batch.Options
	log       *zap.Logger
	watcher   *fsnotify.Watcher
	outputAbs string
	pending   map[string]time.Time // slash-separated source path -> last event
	stats     Stats
	running   bool // Start has been entered
	launched  bool // the event loop goroutine owns doneCh
	closed    bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// New creates a watcher for the given build options.
func New(opts batch.Options) (*Watcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	outputAbs, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		Debounce:  DefaultDebounce,
		opts:      opts,
		log:       opts.Logger.Named("watch"),
		watcher:   fw,
		outputAbs: outputAbs,
		pending:   make(map[string]time.Time),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Start watches the source tree and builds it once.
// It returns after the initial build; events are handled in a goroutine
// until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.New("watcher is closed")
	}
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// watch first so that edits made during the initial build are queued
	if err := w.addTree(w.opts.SourceDir); err != nil {
		w.abort()
		return err
	}

	result, err := batch.Build(ctx, w.opts)
	if err != nil {
		w.abort()
		return fmt.Errorf("initial build failed: %w", err)
	}
	for _, res := range result.Files {
		w.report(res)
	}

	w.mu.Lock()
	if w.closed {
		w.running = false
		w.mu.Unlock()
		return errors.New("watcher stopped during start")
	}
	w.launched = true
	w.mu.Unlock()

	w.log.Info("watching for changes",
		zap.String("dir", w.opts.SourceDir),
		zap.String("pattern", w.opts.Pattern))

	go w.run(ctx)
	return nil
}

// abort undoes a Start that never launched the event loop.
func (w *Watcher) abort() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// Stop stops the event loop and closes the file watcher. It is safe to call
// more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	launched := w.launched
	w.launched = false
	w.running = false
	w.closed = true
	w.mu.Unlock()

	// a Start still in progress sees closed and never launches the loop
	if launched {
		close(w.stopCh)
		<-w.doneCh
	}

	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			w.log.Warn("failed to close file watcher", zap.Error(err))
		}
		w.log.Debug("stopped")
	})
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.Debounce / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.isOutput(event.Name) {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// files written before the watch was added produce no events
			if err := w.addTree(event.Name); err != nil {
				w.log.Warn("failed to watch directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	rel, ok := w.sourcePath(event.Name)
	if !ok {
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventPath = rel
	w.stats.LastEventTime = time.Now()
	w.mu.Unlock()

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.log.Debug("source changed", zap.String("source", rel), zap.String("op", event.Op.String()))
		w.mu.Lock()
		w.pending[rel] = time.Now()
		w.mu.Unlock()
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.removeOutput(rel)
	}
}

// processPending rebuilds paths that have been quiet for the debounce window.
func (w *Watcher) processPending() {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for rel, at := range w.pending {
		if now.Sub(at) >= w.Debounce {
			ready = append(ready, rel)
			delete(w.pending, rel)
		}
	}
	w.mu.Unlock()

	for _, rel := range ready {
		if _, err := os.Stat(filepath.Join(w.opts.SourceDir, filepath.FromSlash(rel))); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		res := batch.BuildFile(w.opts, rel)
		w.mu.Lock()
		w.stats.Rebuilds++
		if res.Err != nil {
			w.stats.Errors++
		}
		w.mu.Unlock()
		w.report(res)
	}
}

func (w *Watcher) removeOutput(rel string) {
	w.mu.Lock()
	delete(w.pending, rel)
	w.mu.Unlock()

	out := batch.OutputPath(w.opts, rel)
	err := os.Remove(out)
	switch {
	case err == nil:
		w.log.Info("removed output", zap.String("source", rel), zap.String("output", out))
		w.mu.Lock()
		w.stats.Removed++
		w.mu.Unlock()
	case errors.Is(err, fs.ErrNotExist):
	default:
		w.log.Warn("failed to remove output", zap.String("output", out), zap.Error(err))
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
	}
}

func (w *Watcher) report(res batch.FileResult) {
	switch {
	case res.Err != nil:
		w.log.Warn("build failed", zap.String("source", res.Source), zap.Error(res.Err))
	case res.Skipped:
		w.log.Debug("skipped draft", zap.String("source", res.Source))
	default:
		w.log.Info("built", zap.String("source", res.Source), zap.String("output", res.Output))
	}
	if w.OnBuild != nil {
		w.OnBuild(res)
	}
}

// addTree watches dir and every directory below it, queueing any matching
// files already present so that files created alongside a new directory are
// not missed.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if dir != w.opts.SourceDir {
				if rel, ok := w.sourcePath(path); ok {
					w.mu.Lock()
					w.pending[rel] = time.Now()
					w.mu.Unlock()
				}
			}
			return nil
		}
		if w.isOutput(path) || (path != w.opts.SourceDir && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// sourcePath converts an event path to a slash-separated source path
// and reports whether it matches the build pattern.
func (w *Watcher) sourcePath(name string) (string, bool) {
	rel, err := filepath.Rel(w.opts.SourceDir, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	ok, err := doublestar.Match(w.opts.Pattern, rel)
	if err != nil || !ok {
		return "", false
	}
	return rel, true
}

func (w *Watcher) isOutput(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == w.outputAbs || strings.HasPrefix(abs, w.outputAbs+string(filepath.Separator))
}
