package out

import (
	"context"

	"readenvy/internal/modules/reader/domain"
)

// Document is an open file. Pages are 1-based.
type Document interface {
	PageCount() int
	PageText(n int) (string, error)
	Outline() ([]domain.OutlineEntry, error)
	Close() error
}

type Renderer interface {
	Open(ctx context.Context, path string) (Document, error)
}

type BookResolver interface {
	Resolve(ctx context.Context, bookID string) (domain.BookRef, error)
}

// ProgressPort records the reader's position and returns the new percent.
type ProgressPort interface {
	Record(ctx context.Context, bookID string, page, durationSeconds int) (int, error)
}

type GoalsPort interface {
	Refresh(ctx context.Context) error
}
