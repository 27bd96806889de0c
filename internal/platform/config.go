package platform

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rbossy/md2toc/pkg/adapters/fs"
	"github.com/rbossy/md2toc/pkg/core"
	"github.com/rbossy/md2toc/pkg/scan"
	"github.com/rbossy/md2toc/pkg/slug"
	"github.com/rbossy/md2toc/pkg/toc"
)

// ConfigFileName is the project config file looked up by FindConfig.
const ConfigFileName = ".md2toc.yaml"

// Config is the on-disk configuration. Zero values mean "default".
type Config struct {
	// Title is the text of the header line.
	Title string `yaml:"title"`
	// Scanner selects how headings are found: "line" or "markdown".
	Scanner string `yaml:"scanner"`
	// Slug selects the anchor style: "simple" or "normalize".
	Slug string `yaml:"slug"`
	// Depth is the largest '#' count included. Zero includes all.
	Depth int `yaml:"depth"`
	// Frontmatter strips a leading front matter block before scanning.
	Frontmatter bool `yaml:"frontmatter"`

	// Pattern, Out and Suffix drive build and watch.
	Pattern string `yaml:"pattern"`
	Out     string `yaml:"out"`
	Suffix  string `yaml:"suffix"`
}

// DefaultConfig reproduces the plain stdin to stdout behavior.
func DefaultConfig() Config {
	return Config{
		Title:   toc.DefaultTitle,
		Scanner: scan.NameLine,
		Slug:    slug.NameSimple,
		Pattern: fs.DefaultPattern,
		Suffix:  fs.DefaultSuffix,
	}
}

// LoadConfig reads a config file on top of DefaultConfig.
// Unknown keys are rejected. An empty file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every named component exists.
func (c Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidDepth, c.Depth)
	}
	if _, err := scan.Lookup(c.Scanner); err != nil {
		return err
	}
	if _, err := slug.Lookup(c.Slug); err != nil {
		return err
	}
	return nil
}
