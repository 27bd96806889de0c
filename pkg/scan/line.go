package scan

import (
	"context"
	"io"
	"iter"

	"github.com/rbossy/md2toc/pkg/core"
	"github.com/rbossy/md2toc/pkg/toc"
)

// Line reports every line that matches toc.Match.
type Line struct{}

func (Line) Name() string { return NameLine }

func (Line) Scan(ctx context.Context, r io.Reader) iter.Seq2[core.Heading, error] {
	return func(yield func(core.Heading, error) bool) {
		lines, readErr := toc.Lines(r)
		for h := range toc.Headings(lines) {
			if err := ctx.Err(); err != nil {
				yield(core.Heading{}, err)
				return
			}
			if !yield(h, nil) {
				return
			}
		}
		if err := readErr(); err != nil {
			yield(core.Heading{}, err)
		}
	}
}

var _ core.Scanner = Line{}
