package out

import (
	"context"

	libraryin "readenvy/internal/modules/library/port/in"
	"readenvy/internal/modules/reader/domain"
	readerout "readenvy/internal/modules/reader/port/out"
)

type LibraryBookAdapter struct {
	library libraryin.Usecase
}

func NewLibraryBookAdapter(library libraryin.Usecase) readerout.BookResolver {
	return &LibraryBookAdapter{library: library}
}

func (a *LibraryBookAdapter) Resolve(ctx context.Context, bookID string) (domain.BookRef, error) {
	book, err := a.library.GetBook(ctx, bookID)
	if err != nil {
		return domain.BookRef{}, err
	}
	return domain.BookRef{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		FilePath:        book.FilePath,
		TotalPages:      book.TotalPages,
		CurrentPage:     book.CurrentPage,
		PercentComplete: book.PercentComplete,
		Status:          book.Status,
	}, nil
}
