// Package scan provides the heading scanners md2toc can run over a document.
//
//   - Line matches each line against the header pattern of package toc. It is
//     the default and streams its input.
//   - Markdown parses the document with goldmark and reports the headings of
//     the resulting tree, so '#' lines inside fenced code are not headings.
//
// Either one can be wrapped by WithFrontmatter to drop a leading front matter
// block before scanning.
package scan

import (
	"fmt"
	"strings"

	"github.com/rbossy/md2toc/pkg/core"
)

// Scanner names accepted by Lookup.
const (
	NameLine     = "line"
	NameMarkdown = "markdown"
)

// Lookup returns the scanner registered under name. Empty means NameLine.
func Lookup(name string) (core.Scanner, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameLine:
		return Line{}, nil
	case NameMarkdown:
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownScanner, name)
	}
}
