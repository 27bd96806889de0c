package platform

import (
	"errors"
	"log/slog"

	"github.com/rbossy/md2toc/pkg/adapters/fs"
	"github.com/rbossy/md2toc/pkg/core"
	"github.com/rbossy/md2toc/pkg/scan"
	"github.com/rbossy/md2toc/pkg/slug"
	"github.com/rbossy/md2toc/pkg/toc"
)

// Resolve computes the effective configuration: defaults, then the config
// file, then explicit options.
func Resolve(opts ...Option) (Config, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o.resolve()
}

func (o *options) resolve() (Config, error) {
	cfg := DefaultConfig()

	path := o.configFile
	if path == "" && o.searchDir != "" {
		found, err := FindConfig(o.searchDir)
		switch {
		case err == nil:
			path = found
		case !errors.Is(err, ErrConfigNotFound):
			return cfg, err
		}
	}

	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		o.log().Debug("config loaded", "path", path)
	}

	for _, fn := range o.overrides {
		fn(&cfg)
	}
	return cfg, cfg.Validate()
}

func (o *options) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// New builds a Service from the resolved configuration.
//
//	svc, err := md2toc.New(md2toc.WithScanner("markdown"), md2toc.WithDepth(3))
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	cfg, err := o.resolve()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, o.logger)
}

// NewFromConfig wires scanner, slugger and renderer for cfg.
func NewFromConfig(cfg Config, logger *slog.Logger) (*core.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scanner, err := scan.Lookup(cfg.Scanner)
	if err != nil {
		return nil, err
	}
	if cfg.Frontmatter {
		scanner = scan.WithFrontmatter(scanner)
	}

	slugger, err := slug.Lookup(cfg.Slug)
	if err != nil {
		return nil, err
	}

	renderer := toc.New(
		toc.WithTitle(cfg.Title),
		toc.WithSlugger(slugger),
		toc.WithDepth(cfg.Depth),
	)

	return core.NewService(scanner, renderer, logger), nil
}

// NewBuilder resolves opts and returns a Builder over the files below root.
// Jobs of zero or less means one build per CPU.
func NewBuilder(root string, jobs int, opts ...Option) (*fs.Builder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	cfg, err := o.resolve()
	if err != nil {
		return nil, err
	}
	svc, err := NewFromConfig(cfg, o.logger)
	if err != nil {
		return nil, err
	}
	return fs.NewBuilder(svc, fs.BuildConfig{
		Root:    root,
		Pattern: cfg.Pattern,
		OutDir:  cfg.Out,
		Suffix:  cfg.Suffix,
		Jobs:    jobs,
		Logger:  o.logger,
	}), nil
}
