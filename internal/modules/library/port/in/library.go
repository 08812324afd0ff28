package in

import (
	"context"

	"readenvy/internal/modules/library/dto"
)

type Usecase interface {
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	ListBooks(ctx context.Context) ([]dto.BookOutput, error)
	Browse(ctx context.Context, input dto.BrowseInput) ([]dto.BookOutput, error)
	GetBook(ctx context.Context, id string) (dto.BookOutput, error)
	Archive(ctx context.Context, id string) (dto.BookOutput, error)
	Restore(ctx context.Context, id string) (dto.BookOutput, error)
	RemoveBook(ctx context.Context, id string) error
	ClearLibrary(ctx context.Context) error
	LastRead(ctx context.Context) (dto.BookOutput, bool, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
}
