package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	apperrors "readenvy/internal/platform/errors"
)

const pdfMIME = "application/pdf"

// FileFacts is what an inspector learned about a candidate file.
type FileFacts struct {
	Path      string
	Size      int64
	MIME      string
	Title     string
	Author    string
	PageCount int
}

type ImportLimits struct {
	MaxBytes  int64
	WarnBytes int64
}

// CheckImport accepts a PDF within the size limit. Files above WarnBytes are
// accepted with a warning.
func CheckImport(f FileFacts, limits ImportLimits) (string, error) {
	isPDF := strings.HasPrefix(f.MIME, pdfMIME) || strings.EqualFold(filepath.Ext(f.Path), ".pdf")
	if !isPDF {
		return "", fmt.Errorf("%w: %s is not a PDF (detected %s)", apperrors.ErrImportRejected, filepath.Base(f.Path), f.MIME)
	}
	if limits.MaxBytes > 0 && f.Size > limits.MaxBytes {
		return "", fmt.Errorf("%w: %s is %s, limit is %s", apperrors.ErrImportRejected,
			filepath.Base(f.Path), humanize.IBytes(uint64(f.Size)), humanize.IBytes(uint64(limits.MaxBytes)))
	}
	if f.PageCount <= 0 {
		return "", fmt.Errorf("%w: %s has no pages", apperrors.ErrImportRejected, filepath.Base(f.Path))
	}
	if limits.WarnBytes > 0 && f.Size > limits.WarnBytes {
		return fmt.Sprintf("large file (%s), loading may be slow", humanize.IBytes(uint64(f.Size))), nil
	}
	return "", nil
}

// DefaultTitle derives a title from the file name.
func DefaultTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}
