package out

import (
	"context"

	"readenvy/internal/modules/export/domain"
)

type BookSource interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
}

type SessionSource interface {
	Sessions(ctx context.Context, bookID string) ([]domain.Session, error)
}

type StatsSource interface {
	Weekly(ctx context.Context) (domain.Weekly, error)
}

type GoalSource interface {
	Status(ctx context.Context) (domain.GoalStatus, error)
}

// NoteStore reads and writes note files. Read returns "" for a missing note.
type NoteStore interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error
}
