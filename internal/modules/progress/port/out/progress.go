package out

import (
	"context"
	"time"

	"readenvy/internal/modules/progress/domain"
)

type BookStore interface {
	Get(ctx context.Context, bookID string) (domain.BookProgress, error)
	SaveProgress(ctx context.Context, book domain.BookProgress) error
	ResetAll(ctx context.Context, now time.Time) error
}

type SessionStore interface {
	Add(ctx context.Context, session domain.Session) error
	ByBook(ctx context.Context, bookID string) ([]domain.Session, error)
	// ByDateRange is inclusive on both ends.
	ByDateRange(ctx context.Context, start, end string) ([]domain.Session, error)
	Clear(ctx context.Context) error
}
