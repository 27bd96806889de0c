package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTarget(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "index.toc.html")
		content := []byte("<h2>Table of Contents</h2>\n")

		changed, err := WriteTarget(target, content, 0644)
		require.NoError(t, err)
		assert.True(t, changed)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, string(content), string(got))
	})

	t.Run("Creates Parent Directories", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out", "docs", "guide.toc.html")

		_, err := WriteTarget(target, []byte("x"), 0644)
		require.NoError(t, err)
		assert.FileExists(t, target)
	})

	t.Run("Replaces Different Content", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "index.toc.html")
		require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))

		changed, err := WriteTarget(target, []byte("fresh"), 0644)
		require.NoError(t, err)
		assert.True(t, changed)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "fresh", string(got))
	})

	t.Run("Skips Identical Content", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "index.toc.html")
		require.NoError(t, os.WriteFile(target, []byte("same"), 0644))
		old := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, os.Chtimes(target, old, old))

		changed, err := WriteTarget(target, []byte("same"), 0644)
		require.NoError(t, err)
		assert.False(t, changed)

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old), "unchanged target must keep its mtime")
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		_, err := WriteTarget(filepath.Join(dir, "a.toc.html"), []byte("a"), 0644)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "temp file left behind: %s", e.Name())
		}
	})

	t.Run("Directory In The Way", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "busy")
		require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0755))

		_, err := WriteTarget(target, []byte("x"), 0644)
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "failed write must clean up its temp file")
	})
}
