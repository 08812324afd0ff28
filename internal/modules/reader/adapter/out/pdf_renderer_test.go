package out_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	readeroutadapter "readenvy/internal/modules/reader/adapter/out"
	"readenvy/internal/modules/reader/domain"
	"readenvy/internal/platform/pdfdoc/pdftest"
)

func TestPDFRendererReadsPagesAndOutline(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "book.pdf")
	pdftest.Write(t, path, pdftest.Layout{
		Title:   "Field Notes",
		Pages:   []string{"Opening remarks", "Middle part", "Closing words"},
		Outline: []pdftest.Heading{{Title: "Start", Page: 1}, {Title: "End", Page: 3}},
	})

	doc, err := readeroutadapter.NewPDFRenderer().Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = doc.Close() })

	assert.Equal(t, 3, doc.PageCount())
	text, err := doc.PageText(2)
	require.NoError(t, err)
	assert.Contains(t, text, "Middle")

	outline, err := doc.Outline()
	require.NoError(t, err)
	assert.Equal(t, []domain.OutlineEntry{{Title: "Start", Page: 1}, {Title: "End", Page: 3}}, outline)
}

func TestPDFRendererRejectsMissingFile(t *testing.T) {
	t.Parallel()
	_, err := readeroutadapter.NewPDFRenderer().Open(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
}
