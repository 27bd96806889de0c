package fs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects every Markdown file below the root.
const DefaultPattern = "**/*.md"

// Glob returns the slash-separated paths of the regular files below root that
// match pattern, sorted.
func Glob(root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Match reports whether the root-relative path rel matches pattern.
func Match(pattern, rel string) bool {
	ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// TargetPath returns where the fragment for the root-relative source rel is
// written: rel with its extension replaced by suffix, placed under outDir, or
// next to the source when outDir is empty.
func TargetPath(root, rel, outDir, suffix string) string {
	rel = filepath.ToSlash(rel)
	name := strings.TrimSuffix(rel, path.Ext(rel)) + suffix
	base := outDir
	if base == "" {
		base = root
	}
	return filepath.Join(base, filepath.FromSlash(name))
}
