package pdfdoc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readenvy/internal/platform/pdfdoc"
	"readenvy/internal/platform/pdfdoc/pdftest"
)

func TestOpenReadsMetadataPagesAndOutline(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "book.pdf")
	pdftest.Write(t, path, pdftest.Layout{
		Title:   "Concurrency in Go",
		Author:  "Katherine Cox-Buday",
		Pages:   []string{"Chapter One\nGoroutines", "Chapter Two", "Chapter Three"},
		Outline: []pdftest.Heading{{Title: "One", Page: 1}, {Title: "Three", Page: 3}},
	})

	doc, err := pdfdoc.Open(path)
	require.NoError(t, err)
	defer func() { _ = doc.Close() }()

	assert.Equal(t, 3, doc.PageCount())
	assert.Equal(t, "Concurrency in Go", doc.Title())
	assert.Equal(t, "Katherine Cox-Buday", doc.Author())

	text, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Contains(t, text, "Chapter One")
	assert.Contains(t, text, "\nGoroutines")

	_, err = doc.PageText(4)
	assert.Error(t, err)

	outline, err := doc.Outline()
	require.NoError(t, err)
	require.Len(t, outline, 2)
	assert.Equal(t, pdfdoc.OutlineEntry{Title: "One", Page: 1}, outline[0])
	assert.Equal(t, pdfdoc.OutlineEntry{Title: "Three", Page: 3}, outline[1])
}

func TestOpenRejectsGarbage(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf"), 0o644))
	_, err := pdfdoc.Open(path)
	assert.Error(t, err)

	_, err = pdfdoc.Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
