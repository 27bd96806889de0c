package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/rbossy/md2toc/pkg/core"
)

// DefaultDebounce is how long a source must stay quiet before it is rebuilt.
const DefaultDebounce = 50 * time.Millisecond

// Watcher rebuilds fragments as their sources change.
type Watcher struct {
	builder  *Builder
	logger   *slog.Logger
	debounce time.Duration
	onError  func(error)

	mu      sync.RWMutex
	active  bool
	pending map[string]debounced
	seq     uint64
	built   int
}

// debounced is a rebuild waiting for its source to go quiet. A timer that
// has already fired can still deliver after being replaced or cancelled, so
// deliveries carry seq and only the current one is built.
type debounced struct {
	timer *time.Timer
	seq   uint64
}

type dueBuild struct {
	rel string
	seq uint64
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler registers a callback for errors of the watch loop itself.
func WithErrorHandler(fn func(error)) WatchOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a Watcher over the builder's root and pattern.
func NewWatcher(builder *Builder, opts ...WatchOption) *Watcher {
	w := &Watcher{
		builder:  builder,
		logger:   builder.config.Logger,
		debounce: DefaultDebounce,
		pending:  make(map[string]debounced),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching and returns the stream of build events. The stream
// is closed once ctx is done and the loop has exited.
func (w *Watcher) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		return nil, errors.New("watcher already started")
	}
	w.active = true
	w.mu.Unlock()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.setActive(false)
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.addRecursive(fw, w.builder.config.Root); err != nil {
		_ = fw.Close()
		w.setActive(false)
		return nil, err
	}

	events := make(chan core.Event, 16)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer w.setActive(false)
		defer fw.Close()
		return w.run(ctx, fw, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("watcher stopped", "error", err)
		if w.onError != nil {
			w.onError(err)
		}
	}))

	w.logger.Info("watching", "root", w.builder.config.Root, "pattern", w.builder.config.Pattern)
	return events, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, events chan<- core.Event) error {
	due := make(chan dueBuild)
	done := make(chan struct{})
	defer w.stopTimers()
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if e, ok := w.handle(fw, event, due, done); ok {
				w.send(ctx, events, e)
			}

		case d := <-due:
			if !w.claim(d) {
				continue
			}
			w.send(ctx, events, w.builder.BuildFile(ctx, d.rel))

		case err, ok := <-fw.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", err)
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// handle maps one filesystem event. Removals produce an event right away,
// writes schedule a debounced rebuild.
func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event, due chan<- dueBuild, done <-chan struct{}) (core.Event, bool) {
	w.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fw, event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return core.Event{}, false
		}
	}

	rel, err := filepath.Rel(w.builder.config.Root, event.Name)
	if err != nil || !w.builder.Selects(rel) {
		return core.Event{}, false
	}
	rel = filepath.ToSlash(rel)

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.cancel(rel)
		return w.builder.RemoveTarget(rel), true
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		w.schedule(rel, due, done)
	}
	return core.Event{}, false
}

func (w *Watcher) schedule(rel string, due chan<- dueBuild, done <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pending[rel]; ok && p.timer.Stop() {
		p.timer.Reset(w.debounce)
		return
	}
	w.seq++
	d := dueBuild{rel: rel, seq: w.seq}
	t := time.AfterFunc(w.debounce, func() {
		select {
		case due <- d:
		case <-done:
		}
	})
	w.pending[rel] = debounced{timer: t, seq: d.seq}
}

// claim reports whether d is the current rebuild of its source and, if so,
// marks it as taken.
func (w *Watcher) claim(d dueBuild) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pending[d.rel]
	if !ok || p.seq != d.seq {
		return false
	}
	delete(w.pending, d.rel)
	w.built++
	return true
}

func (w *Watcher) cancel(rel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pending[rel]; ok {
		p.timer.Stop()
		delete(w.pending, rel)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for rel, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, rel)
	}
}

func (w *Watcher) send(ctx context.Context, events chan<- core.Event, e core.Event) {
	select {
	case events <- e:
	case <-ctx.Done():
	}
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}
