// Package slug provides the anchor styles md2toc can derive from titles.
package slug

import (
	"fmt"
	"strings"

	goslug "github.com/goliatone/go-slug"

	"github.com/rbossy/md2toc/pkg/core"
	"github.com/rbossy/md2toc/pkg/toc"
)

// Slugger names accepted by Lookup.
const (
	NameSimple    = "simple"
	NameNormalize = "normalize"
)

// Simple lowercases the title and replaces every space with a dash.
var Simple = toc.SimpleSlugger

// Normalizer delegates to go-slug, which also folds accents and drops
// punctuation. Titles it rejects fall back to Simple.
type Normalizer struct{}

func (Normalizer) Name() string { return NameNormalize }

func (Normalizer) Slug(title string) string {
	s, err := goslug.Normalize(title)
	if err != nil || s == "" {
		return Simple.Slug(title)
	}
	return s
}

// Lookup returns the slugger registered under name. Empty means NameSimple.
func Lookup(name string) (core.Slugger, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSimple:
		return Simple, nil
	case NameNormalize:
		return Normalizer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSlugger, name)
	}
}
