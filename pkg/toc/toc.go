package toc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rbossy/md2toc/pkg/core"
)

// DefaultTitle is the text of the header line that opens every fragment.
const DefaultTitle = "Table of Contents"

// Header is the literal first line of every fragment with the default title.
const Header = "<h2>" + DefaultTitle + "</h2>"

// RE2's \s leaves out \v, which counts as a separator here.
var headerPattern = regexp.MustCompile(`^(#+)[\s\v]+(.*)$`)

// Match reports whether line is a header line and returns the heading it
// describes. Surrounding whitespace is ignored. Line is left at zero.
func Match(line string) (core.Heading, bool) {
	m := headerPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return core.Heading{}, false
	}
	return core.Heading{
		Level: len(m[1]) - 1,
		Title: m[2],
	}, true
}

// Slug lowercases title and replaces every space with a dash. Bytes that are
// not valid UTF-8 are copied as they are, so a title in a legacy encoding
// still links to its own text.
func Slug(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for s := title; s != ""; {
		r, n := utf8.DecodeRuneInString(s)
		switch {
		case r == utf8.RuneError && n == 1:
			b.WriteByte(s[0])
		case r == ' ':
			b.WriteByte('-')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
		s = s[n:]
	}
	return b.String()
}

// FormatEntry renders one table entry.
func FormatEntry(e core.Entry) string {
	return fmt.Sprintf(`<div class="toc toc-level-%d"><a href="#%s">%s</a></div>`, e.Level, e.Slug, e.Title)
}

// FormatHeader renders the header line for the given title.
func FormatHeader(title string) string {
	return "<h2>" + title + "</h2>"
}

type simpleSlugger struct{}

func (simpleSlugger) Name() string             { return "simple" }
func (simpleSlugger) Slug(title string) string { return Slug(title) }

// SimpleSlugger is the default core.Slugger, backed by Slug.
var SimpleSlugger core.Slugger = simpleSlugger{}
