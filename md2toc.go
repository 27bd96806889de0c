package md2toc

import (
	_ "embed"
	"log/slog"

	"github.com/rbossy/md2toc/internal/platform"
	"github.com/rbossy/md2toc/pkg/adapters/fs"
	"github.com/rbossy/md2toc/pkg/core"
)

// Version is the release version of md2toc.
//
//go:embed VERSION
var Version string

// --- Configuration ---

// Option defines a functional option for configuring md2toc.
type Option = platform.Option

// Config is the resolved configuration.
type Config = platform.Config

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithConfigFile loads settings from the given YAML file.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithConfigSearch looks for .md2toc.yaml from dir upwards.
func WithConfigSearch(dir string) Option {
	return platform.WithConfigSearch(dir)
}

// WithTitle sets the header line text.
func WithTitle(title string) Option {
	return platform.WithTitle(title)
}

// WithScanner selects the heading scanner ("line" or "markdown").
func WithScanner(name string) Option {
	return platform.WithScanner(name)
}

// WithSlugger selects the anchor style ("simple" or "normalize").
func WithSlugger(name string) Option {
	return platform.WithSlugger(name)
}

// WithDepth limits the table to headings with at most depth '#' characters.
func WithDepth(depth int) Option {
	return platform.WithDepth(depth)
}

// WithFrontmatter strips a leading front matter block before scanning.
func WithFrontmatter(enabled bool) Option {
	return platform.WithFrontmatter(enabled)
}

// WithPattern sets the source glob for Build and Watch.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithOutDir sets the output directory for Build and Watch.
func WithOutDir(dir string) Option {
	return platform.WithOutDir(dir)
}

// WithSuffix sets the generated file suffix for Build and Watch.
func WithSuffix(suffix string) Option {
	return platform.WithSuffix(suffix)
}

// --- Factory ---

// New creates a Service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// Resolve returns the effective configuration for opts.
func Resolve(opts ...Option) (Config, error) {
	return platform.Resolve(opts...)
}

// NewBuilder creates a Builder writing fragments for the files below root.
func NewBuilder(root string, jobs int, opts ...Option) (*fs.Builder, error) {
	return platform.NewBuilder(root, jobs, opts...)
}
