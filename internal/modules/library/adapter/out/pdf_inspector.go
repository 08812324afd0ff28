package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"readenvy/internal/modules/library/domain"
	libraryout "readenvy/internal/modules/library/port/out"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/pdfdoc"
)

type PDFInspector struct{}

func NewPDFInspector() libraryout.FileInspector {
	return &PDFInspector{}
}

func (i *PDFInspector) Inspect(_ context.Context, path string) (domain.FileFacts, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileFacts{}, fmt.Errorf("%w: %v", apperrors.ErrImportRejected, err)
	}
	if info.IsDir() {
		return domain.FileFacts{}, fmt.Errorf("%w: %s is a directory", apperrors.ErrImportRejected, path)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.FileFacts{}, fmt.Errorf("%w: detect type of %s: %v", apperrors.ErrImportRejected, path, err)
	}
	facts := domain.FileFacts{Path: path, Size: info.Size(), MIME: mt.String()}
	if !mt.Is("application/pdf") && !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return facts, nil
	}

	doc, err := pdfdoc.Open(path)
	if err != nil {
		return domain.FileFacts{}, fmt.Errorf("%w: %v", apperrors.ErrImportRejected, err)
	}
	defer func() { _ = doc.Close() }()
	facts.PageCount = doc.PageCount()
	facts.Title = doc.Title()
	facts.Author = doc.Author()
	return facts, nil
}
