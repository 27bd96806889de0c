package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rbossy/md2toc/pkg/core"
)

// DefaultSuffix replaces the source extension in generated file names.
const DefaultSuffix = ".toc.html"

// BuildConfig describes which files a Builder reads and where it writes.
type BuildConfig struct {
	Root    string
	Pattern string
	OutDir  string
	Suffix  string
	Jobs    int
	Logger  *slog.Logger
}

// Builder writes one fragment file per matching source file.
type Builder struct {
	service *core.Service
	config  BuildConfig
}

// NewBuilder creates a Builder. Empty config fields take their defaults.
func NewBuilder(service *core.Service, cfg BuildConfig) *Builder {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Builder{service: service, config: cfg}
}

// Config returns the effective configuration.
func (b *Builder) Config() BuildConfig {
	return b.config
}

// Target returns the output path for the root-relative source rel.
func (b *Builder) Target(rel string) string {
	return TargetPath(b.config.Root, rel, b.config.OutDir, b.config.Suffix)
}

// Selects reports whether rel is a source this builder handles. Generated
// files never are, even when the pattern would match them.
func (b *Builder) Selects(rel string) bool {
	rel = filepath.ToSlash(rel)
	if strings.HasSuffix(rel, b.config.Suffix) {
		return false
	}
	return Match(b.config.Pattern, rel)
}

// BuildFile generates the fragment for the root-relative source rel.
// Failures are reported as an EventError.
func (b *Builder) BuildFile(ctx context.Context, rel string) core.Event {
	target := b.Target(rel)
	event := core.Event{
		Type:      core.EventBuild,
		Source:    filepath.ToSlash(rel),
		Target:    target,
		Timestamp: time.Now().Unix(),
	}

	entries, err := b.buildFile(ctx, rel, target)
	if err != nil {
		event.Type = core.EventError
		event.Err = err
		b.config.Logger.Error("build failed", "source", rel, "error", err)
		return event
	}

	event.Entries = entries
	b.config.Logger.Debug("built", "source", rel, "target", target, "entries", entries)
	return event
}

func (b *Builder) buildFile(ctx context.Context, rel, target string) (int, error) {
	src, err := os.Open(filepath.Join(b.config.Root, filepath.FromSlash(rel)))
	if err != nil {
		return 0, err
	}
	defer src.Close()

	var buf bytes.Buffer
	entries, err := b.service.Generate(ctx, src, &buf)
	if err != nil {
		return 0, err
	}
	changed, err := WriteTarget(target, buf.Bytes(), 0644)
	if err != nil {
		return 0, err
	}
	if !changed {
		b.config.Logger.Debug("target unchanged", "target", target)
	}
	return entries, nil
}

// RemoveTarget deletes the fragment of a source that no longer exists.
func (b *Builder) RemoveTarget(rel string) core.Event {
	target := b.Target(rel)
	event := core.Event{
		Type:      core.EventRemove,
		Source:    filepath.ToSlash(rel),
		Target:    target,
		Timestamp: time.Now().Unix(),
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		event.Type = core.EventError
		event.Err = fmt.Errorf("remove %s: %w", target, err)
	}
	return event
}

// Build generates a fragment for every matching source, running at most
// Jobs builds at a time. It returns one event per source in path order and
// the joined errors of the failed ones.
func (b *Builder) Build(ctx context.Context) ([]core.Event, error) {
	sources, err := Glob(b.config.Root, b.config.Pattern)
	if err != nil {
		return nil, err
	}

	var selected []string
	for _, rel := range sources {
		if b.Selects(rel) {
			selected = append(selected, rel)
		}
	}

	events := make([]core.Event, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.Jobs)
	for i, rel := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			events[i] = b.BuildFile(gctx, rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []error
	for _, e := range events {
		if e.Type == core.EventError {
			errs = append(errs, fmt.Errorf("%s: %w", e.Source, e.Err))
		}
	}
	b.config.Logger.Info("build complete", "files", len(events), "failed", len(errs))
	return events, errors.Join(errs...)
}
