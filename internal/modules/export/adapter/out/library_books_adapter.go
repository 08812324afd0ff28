package out

import (
	"context"

	"readenvy/internal/modules/export/domain"
	exportout "readenvy/internal/modules/export/port/out"
	libraryin "readenvy/internal/modules/library/port/in"
)

type LibraryBooksAdapter struct {
	library libraryin.Usecase
}

func NewLibraryBooksAdapter(library libraryin.Usecase) exportout.BookSource {
	return &LibraryBooksAdapter{library: library}
}

func (a *LibraryBooksAdapter) ListBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := a.library.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		out = append(out, domain.Book{
			ID:             b.ID,
			Title:          b.Title,
			Author:         b.Author,
			FilePath:       b.FilePath,
			Status:         b.Status,
			Priority:       b.Priority,
			Tags:           b.Tags,
			TotalPages:     b.TotalPages,
			CurrentPage:    b.CurrentPage,
			Percent:        b.PercentComplete,
			ReadingSeconds: b.TotalReadingTime,
			CreatedAt:      b.CreatedAt,
			LastReadAt:     b.LastReadAt,
		})
	}
	return out, nil
}
