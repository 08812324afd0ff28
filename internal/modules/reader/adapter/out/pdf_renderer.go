package out

import (
	"context"

	"readenvy/internal/modules/reader/domain"
	readerout "readenvy/internal/modules/reader/port/out"
	"readenvy/internal/platform/pdfdoc"
)

type PDFRenderer struct{}

func NewPDFRenderer() readerout.Renderer {
	return PDFRenderer{}
}

func (PDFRenderer) Open(_ context.Context, path string) (readerout.Document, error) {
	doc, err := pdfdoc.Open(path)
	if err != nil {
		return nil, err
	}
	return pdfDocument{doc: doc}, nil
}

type pdfDocument struct {
	doc *pdfdoc.Document
}

func (d pdfDocument) PageCount() int { return d.doc.PageCount() }

func (d pdfDocument) PageText(n int) (string, error) { return d.doc.PageText(n) }

func (d pdfDocument) Close() error { return d.doc.Close() }

func (d pdfDocument) Outline() ([]domain.OutlineEntry, error) {
	entries, err := d.doc.Outline()
	if err != nil {
		return nil, err
	}
	return convertOutline(entries), nil
}

func convertOutline(entries []pdfdoc.OutlineEntry) []domain.OutlineEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]domain.OutlineEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.OutlineEntry{Title: e.Title, Page: e.Page, Children: convertOutline(e.Children)})
	}
	return out
}
