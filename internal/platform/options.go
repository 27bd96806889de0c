package platform

import (
	"log/slog"
)

// options holds the internal configuration for building a Service.
type options struct {
	logger     *slog.Logger
	configFile string
	searchDir  string
	overrides  []func(*Config)
}

// Option defines a functional option for configuring md2toc.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

func override(fn func(*Config)) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, fn)
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfigFile loads the given config file. It must exist.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithConfigSearch looks for ConfigFileName from dir upwards.
// Finding none is not an error.
func WithConfigSearch(dir string) Option {
	return func(o *options) {
		o.searchDir = dir
	}
}

// WithTitle sets the header line text.
func WithTitle(title string) Option {
	return override(func(c *Config) { c.Title = title })
}

// WithScanner selects the heading scanner by name ("line", "markdown").
func WithScanner(name string) Option {
	return override(func(c *Config) { c.Scanner = name })
}

// WithSlugger selects the anchor style by name ("simple", "normalize").
func WithSlugger(name string) Option {
	return override(func(c *Config) { c.Slug = name })
}

// WithDepth limits the table to headings with at most depth '#' characters.
// Zero means no limit.
func WithDepth(depth int) Option {
	return override(func(c *Config) { c.Depth = depth })
}

// WithFrontmatter enables stripping of a leading front matter block.
func WithFrontmatter(enabled bool) Option {
	return override(func(c *Config) { c.Frontmatter = enabled })
}

// WithPattern sets the source glob used by build and watch.
func WithPattern(pattern string) Option {
	return override(func(c *Config) { c.Pattern = pattern })
}

// WithOutDir sets where build and watch write fragments.
func WithOutDir(dir string) Option {
	return override(func(c *Config) { c.Out = dir })
}

// WithSuffix sets the file name suffix of generated fragments.
func WithSuffix(suffix string) Option {
	return override(func(c *Config) { c.Suffix = suffix })
}
