package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readenvy/internal/platform/markdown"
)

func TestRenderKeepsFieldOrderThenExtras(t *testing.T) {
	t.Parallel()
	out, err := markdown.Render(
		[]markdown.Field{{Key: "title", Value: "Dune"}, {Key: "pages", Value: 412}, {Key: "tags", Value: []string{"sf"}}},
		map[string]any{"rating": 5, "aliases": "d", "title": "stale"},
		"Body\n",
	)
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Dune\npages: 412\ntags:\n  - sf\naliases: d\nrating: 5\n---\n\nBody\n", out)
}

func TestSplitRoundTrip(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.Split("---\ntitle: Dune\nrating: 5\n---\n\nMy notes\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Dune", "rating": 5}, meta)
	assert.Equal(t, "\nMy notes\n", body)

	meta, body, err = markdown.Split("plain text")
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, "plain text", body)

	meta, body, err = markdown.Split("---\n---\nbody")
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, "body", body)

	_, _, err = markdown.Split("---\ntitle: Dune\n")
	require.Error(t, err)
	_, _, err = markdown.Split("---\n: [\n---\n")
	require.Error(t, err)
}

func TestBlockReplace(t *testing.T) {
	t.Parallel()
	b := markdown.Block{Name: "sessions"}

	first := b.Replace("", "v1")
	assert.Equal(t, "<!-- readenvy:sessions:start -->\nv1\n<!-- readenvy:sessions:end -->\n", first)

	edited := "# Notes\nmine\n\n" + first + "\nfooter\n"
	second := b.Replace(edited, "v2\n")
	assert.Equal(t, "# Notes\nmine\n\n<!-- readenvy:sessions:start -->\nv2\n<!-- readenvy:sessions:end -->\n\nfooter\n", second)

	got, ok := b.Content(second)
	require.True(t, ok)
	assert.Equal(t, "v2", got)

	appended := b.Replace("hello\n", "v3")
	assert.Equal(t, "hello\n\n<!-- readenvy:sessions:start -->\nv3\n<!-- readenvy:sessions:end -->\n", appended)
}

func TestTable(t *testing.T) {
	t.Parallel()
	got := markdown.Table([]string{"Date", "Pages"}, [][]string{{"2026-01-02", "12"}, {"a|b"}})
	assert.Equal(t, "| Date | Pages |\n| --- | --- |\n| 2026-01-02 | 12 |\n| a\\|b |  |\n", got)
}
