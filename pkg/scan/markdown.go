package scan

import (
	"bytes"
	"context"
	"io"
	"iter"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/rbossy/md2toc/pkg/core"
)

// Markdown reports the ATX and setext headings of a CommonMark (GFM) document.
// Titles are the plain text of the heading, with inline markup removed.
// The whole input is read before the first heading is reported.
//
// A leading YAML (---) or TOML (+++) block that decodes cleanly is skipped,
// so its closing delimiter is not read as a setext underline. Line numbers
// still count from the top of the input.
type Markdown struct {
	md      goldmark.Markdown
	formats []*frontmatter.Format
}

// NewMarkdown creates a Markdown scanner with the GFM extension enabled.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		formats: []*frontmatter.Format{
			frontmatter.NewFormat("---", "---", yaml.Unmarshal),
			frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
		},
	}
}

func (m *Markdown) Name() string { return NameMarkdown }

func (m *Markdown) Scan(ctx context.Context, r io.Reader) iter.Seq2[core.Heading, error] {
	return func(yield func(core.Heading, error) bool) {
		src, err := io.ReadAll(r)
		if err != nil {
			yield(core.Heading{}, err)
			return
		}

		src, offset := m.body(src)
		doc := m.md.Parser().Parse(text.NewReader(src))
		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			h, ok := n.(*ast.Heading)
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := ctx.Err(); err != nil {
				yield(core.Heading{}, err)
				return ast.WalkStop, nil
			}

			title := headingText(h, src)
			if title == "" {
				return ast.WalkSkipChildren, nil
			}
			heading := core.Heading{
				Level: h.Level - 1,
				Title: title,
				Line:  lineOf(h, src) + offset,
			}
			if !yield(heading, nil) {
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		})
	}
}

// body drops a leading front matter block and returns the number of lines
// it spanned. A block that fails to decode is kept, since it is more likely
// a thematic break followed by a setext heading.
func (m *Markdown) body(src []byte) ([]byte, int) {
	var meta map[string]any
	rest, err := frontmatter.Parse(bytes.NewReader(src), &meta, m.formats...)
	if err != nil || len(rest) >= len(src) {
		return src, 0
	}
	return rest, bytes.Count(src[:len(src)-len(rest)], []byte("\n"))
}

func headingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func lineOf(n ast.Node, src []byte) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	start := lines.At(0).Start
	return bytes.Count(src[:start], []byte("\n")) + 1
}

var _ core.Scanner = (*Markdown)(nil)
