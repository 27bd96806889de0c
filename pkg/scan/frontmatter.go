package scan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/adrg/frontmatter"

	"github.com/rbossy/md2toc/pkg/core"
)

// StripFrontmatter returns the body of a document without its leading front
// matter block (YAML, TOML or JSON). Documents without one are returned whole.
func StripFrontmatter(r io.Reader) (io.Reader, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return bytes.NewReader(body), nil
}

type frontmatterScanner struct {
	inner core.Scanner
}

// WithFrontmatter wraps s so that it only sees the document body.
// Reported line numbers are relative to the body.
func WithFrontmatter(s core.Scanner) core.Scanner {
	return frontmatterScanner{inner: s}
}

func (f frontmatterScanner) Name() string { return f.inner.Name() + "+frontmatter" }

func (f frontmatterScanner) Scan(ctx context.Context, r io.Reader) iter.Seq2[core.Heading, error] {
	return func(yield func(core.Heading, error) bool) {
		body, err := StripFrontmatter(r)
		if err != nil {
			yield(core.Heading{}, err)
			return
		}
		for h, err := range f.inner.Scan(ctx, body) {
			if !yield(h, err) || err != nil {
				return
			}
		}
	}
}
