package out

import (
	"context"

	"readenvy/internal/modules/library/domain"
)

type BookStore interface {
	Create(ctx context.Context, book domain.Book) error
	Get(ctx context.Context, id string) (domain.Book, error)
	FindByPath(ctx context.Context, path string) (domain.Book, error)
	Update(ctx context.Context, book domain.Book) error
	// Delete removes the book and every session that references it.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Book, error)
	Clear(ctx context.Context) error
}

type FileInspector interface {
	Inspect(ctx context.Context, path string) (domain.FileFacts, error)
}

// DataPurger wipes state owned by other modules (goals, streak) when the
// library is cleared.
type DataPurger interface {
	PurgeAll(ctx context.Context) error
}
