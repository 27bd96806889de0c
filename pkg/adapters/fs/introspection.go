package fs

import (
	"github.com/aretw0/introspection"
)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Root     string `json:"root"`
	Pattern  string `json:"pattern"`
	OutDir   string `json:"out_dir,omitempty"`
	Active   bool   `json:"active"`
	Pending  int    `json:"pending"`
	Rebuilds int    `json:"rebuilds"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return WatcherState{
		Root:     w.builder.config.Root,
		Pattern:  w.builder.config.Pattern,
		OutDir:   w.builder.config.OutDir,
		Active:   w.active,
		Pending:  len(w.pending),
		Rebuilds: w.built,
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)
