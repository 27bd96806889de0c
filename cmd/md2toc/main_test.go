package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in-process from an empty working directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "No Headers",
			input: "just text\nmore text\n",
			want:  "<h2>Table of Contents</h2>\n",
		},
		{
			name:  "Empty",
			input: "",
			want:  "<h2>Table of Contents</h2>\n",
		},
		{
			name:  "Headers",
			input: "# Title\nbody\n  ## Sub Section\t\n",
			want: "<h2>Table of Contents</h2>\n" +
				"<div class=\"toc toc-level-0\"><a href=\"#title\">Title</a></div>\n" +
				"<div class=\"toc toc-level-1\"><a href=\"#sub-section\">Sub Section</a></div>\n",
		},
		{
			name:  "Latin-1 Bytes",
			input: "# Caf\xe9 Cr\xe8me\n",
			want: "<h2>Table of Contents</h2>\n" +
				"<div class=\"toc toc-level-0\"><a href=\"#caf\xe9-cr\xe8me\">Caf\xe9 Cr\xe8me</a></div>\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRoot_Flags(t *testing.T) {
	input := "# One\n## Two\n### Three\n"

	out, err := run(t, input, "--depth", "2", "--title", "Contents")
	require.NoError(t, err)
	assert.Equal(t,
		"<h2>Contents</h2>\n"+
			"<div class=\"toc toc-level-0\"><a href=\"#one\">One</a></div>\n"+
			"<div class=\"toc toc-level-1\"><a href=\"#two\">Two</a></div>\n",
		out)

	_, err = run(t, input, "--scanner", "bogus")
	assert.Error(t, err)
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "toc.yaml")
	require.NoError(t, os.WriteFile(config, []byte("title: From Config\nscanner: markdown\n"), 0644))

	out, err := run(t, "# A\n```\n# code\n```\n", "--config", config)
	require.NoError(t, err)
	assert.Equal(t,
		"<h2>From Config</h2>\n"+
			"<div class=\"toc toc-level-0\"><a href=\"#a\">A</a></div>\n",
		out)

	// Flags win over the file.
	out, err = run(t, "# A\n", "--config", config, "--title", "From Flag")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<h2>From Flag</h2>\n"))
}

func TestRoot_Files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("# From A"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("# From B\n"), 0644))

	out, err := run(t, "# ignored stdin\n", a, b)
	require.NoError(t, err)
	assert.Equal(t,
		"<h2>Table of Contents</h2>\n"+
			"<div class=\"toc toc-level-0\"><a href=\"#from-a\">From A</a></div>\n"+
			"<div class=\"toc toc-level-0\"><a href=\"#from-b\">From B</a></div>\n",
		out)

	_, err = run(t, "", filepath.Join(dir, "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "guide.md"), []byte("# Guide\n## Install\n"), 0644))

	out, err := run(t, "", "build", "--root", root, "--json")
	require.NoError(t, err)

	var events []eventJSON
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "docs/guide.md", events[0].Source)
	assert.Equal(t, 2, events[0].Entries)

	got, err := os.ReadFile(filepath.Join(root, "docs", "guide.toc.html"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `<a href="#install">Install</a>`)

	out, err = run(t, "", "build", "docs/*.md", "--root", root, "--suffix", ".html")
	require.NoError(t, err)
	assert.Contains(t, out, "BUILD docs/guide.md")
	_, err = os.Stat(filepath.Join(root, "docs", "guide.html"))
	assert.NoError(t, err)
}

func TestWatch_InvalidPattern(t *testing.T) {
	_, err := run(t, "", "watch", "docs/[", "--root", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "md2toc version "))
}
