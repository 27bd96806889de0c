package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbossy/md2toc/pkg/core"
)

func TestLookup(t *testing.T) {
	s, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, NameSimple, s.Name())

	s, err = Lookup("NORMALIZE")
	require.NoError(t, err)
	assert.Equal(t, NameNormalize, s.Name())

	_, err = Lookup("github")
	assert.ErrorIs(t, err, core.ErrUnknownSlugger)
}

func TestSimple(t *testing.T) {
	assert.Equal(t, "sub-section", Simple.Slug("Sub Section"))
	assert.Equal(t, "what's-new?", Simple.Slug("What's New?"))
}

func TestNormalizer(t *testing.T) {
	n := Normalizer{}
	got := n.Slug("Sub Section")
	assert.Contains(t, got, "sub")
	assert.NotContains(t, got, " ")
	assert.Equal(t, strings.ToLower(got), got)
	assert.NotEmpty(t, n.Slug("!!!"))
}
