package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"readenvy/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"The Left Hand of Darkness": "the-left-hand-of-darkness",
		"  Café Society!  ":         "cafe-society",
		"Gödel, Escher, Bach":       "godel-escher-bach",
		"2001: A Space Odyssey":     "2001-a-space-odyssey",
		"???":                       "untitled",
		"":                          "untitled",
		"東京":                        "untitled",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), in)
	}
}

func TestMakeTruncates(t *testing.T) {
	t.Parallel()
	got := slug.Make(strings.Repeat("word ", 40))
	assert.LessOrEqual(t, len(got), slug.MaxLen)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestRegistryClaimsUniqueNames(t *testing.T) {
	t.Parallel()
	r := slug.NewRegistry()
	assert.Equal(t, "dune", r.Claim("Dune"))
	assert.Equal(t, "dune-2", r.Claim("DUNE"))
	assert.Equal(t, "dune-3", r.Claim("dune!"))
	assert.Equal(t, "emma", r.Claim("Emma"))
}
