package toc

import (
	"iter"

	"github.com/rbossy/md2toc/pkg/core"
)

// Generator renders headings as table entries.
type Generator struct {
	title   string
	slugger core.Slugger
	depth   int
}

// Option configures a Generator.
type Option func(*Generator)

// WithTitle sets the text of the header line. Empty keeps DefaultTitle.
func WithTitle(title string) Option {
	return func(g *Generator) {
		if title != "" {
			g.title = title
		}
	}
}

// WithSlugger sets how anchors are derived from titles. Nil keeps SimpleSlugger.
func WithSlugger(s core.Slugger) Option {
	return func(g *Generator) {
		if s != nil {
			g.slugger = s
		}
	}
}

// WithDepth drops headings with more than depth '#' characters.
// Zero or less means no limit.
func WithDepth(depth int) Option {
	return func(g *Generator) {
		g.depth = depth
	}
}

// New creates a Generator. With no options it reproduces Generate exactly.
func New(opts ...Option) *Generator {
	g := &Generator{
		title:   DefaultTitle,
		slugger: SimpleSlugger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render yields the header line followed by one entry per heading, in order.
func (g *Generator) Render(headings iter.Seq[core.Heading]) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(FormatHeader(g.title)) {
			return
		}
		for h := range headings {
			if g.depth > 0 && h.Level >= g.depth {
				continue
			}
			e := core.Entry{Heading: h, Slug: g.slugger.Slug(h.Title)}
			if !yield(FormatEntry(e)) {
				return
			}
		}
	}
}

// ComponentType implements introspection.Component.
func (g *Generator) ComponentType() string {
	return "toc/" + g.slugger.Name()
}

var _ core.Renderer = (*Generator)(nil)

// Headings yields the header lines of lines, numbering them from 1.
func Headings(lines iter.Seq[string]) iter.Seq[core.Heading] {
	return func(yield func(core.Heading) bool) {
		n := 0
		for line := range lines {
			n++
			h, ok := Match(line)
			if !ok {
				continue
			}
			h.Line = n
			if !yield(h) {
				return
			}
		}
	}
}

// Generate is the whole transformation with default settings: the header line,
// then one entry per header line of lines.
func Generate(lines iter.Seq[string]) iter.Seq[string] {
	return New().Render(Headings(lines))
}
