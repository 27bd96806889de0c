package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbossy/md2toc/pkg/core"
	"github.com/rbossy/md2toc/pkg/scan"
	"github.com/rbossy/md2toc/pkg/toc"
)

func newService() *core.Service {
	return core.NewService(scan.Line{}, toc.New(), nil)
}

func TestBuilder_Build(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.md":          "# Home\n## Getting Started\n",
		"docs/guide.md":     "# Guide\n",
		"docs/empty.md":     "no headers here\n",
		"docs/skip.txt":     "# ignored\n",
		"docs/old.toc.html": "stale\n",
	})

	b := NewBuilder(newService(), BuildConfig{Root: root, Jobs: 2})
	events, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "docs/empty.md", events[0].Source)
	assert.Equal(t, 0, events[0].Entries)
	assert.Equal(t, "docs/guide.md", events[1].Source)
	assert.Equal(t, 1, events[1].Entries)
	assert.Equal(t, "index.md", events[2].Source)
	assert.Equal(t, 2, events[2].Entries)
	for _, e := range events {
		assert.Equal(t, core.EventBuild, e.Type)
	}

	got, err := os.ReadFile(filepath.Join(root, "index.toc.html"))
	require.NoError(t, err)
	assert.Equal(t,
		"<h2>Table of Contents</h2>\n"+
			`<div class="toc toc-level-0"><a href="#home">Home</a></div>`+"\n"+
			`<div class="toc toc-level-1"><a href="#getting-started">Getting Started</a></div>`+"\n",
		string(got))

	got, err = os.ReadFile(filepath.Join(root, "docs", "empty.toc.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h2>Table of Contents</h2>\n", string(got))
}

func TestBuilder_UnchangedTarget(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.md": "# Home\n"})
	b := NewBuilder(newService(), BuildConfig{Root: root})

	e := b.BuildFile(context.Background(), "index.md")
	require.Equal(t, core.EventBuild, e.Type)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(e.Target, old, old))

	e = b.BuildFile(context.Background(), "index.md")
	require.Equal(t, core.EventBuild, e.Type)
	assert.Equal(t, 1, e.Entries)

	info, err := os.Stat(e.Target)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "rebuilding identical output must not rewrite the target")
}

func TestBuilder_OutDir(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeTree(t, root, map[string]string{"a/b.md": "# B\n"})

	b := NewBuilder(newService(), BuildConfig{Root: root, OutDir: out, Suffix: ".html"})
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "a", "b.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "a", "b.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuilder_Selects(t *testing.T) {
	b := NewBuilder(newService(), BuildConfig{Pattern: "**/*"})
	assert.True(t, b.Selects("docs/a.md"))
	assert.False(t, b.Selects("docs/a.toc.html"))
}

func TestBuilder_Failures(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"ok.md": "# Ok\n"})

	b := NewBuilder(newService(), BuildConfig{Root: root})
	event := b.BuildFile(context.Background(), "missing.md")
	assert.Equal(t, core.EventError, event.Type)
	assert.ErrorIs(t, event.Err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilder_RemoveTarget(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"gone.toc.html": "x"})

	b := NewBuilder(newService(), BuildConfig{Root: root})
	e := b.RemoveTarget("gone.md")
	assert.Equal(t, core.EventRemove, e.Type)
	_, err := os.Stat(filepath.Join(root, "gone.toc.html"))
	assert.True(t, os.IsNotExist(err))

	// Removing again is not an error.
	assert.Equal(t, core.EventRemove, b.RemoveTarget("gone.md").Type)
}
