package in

import (
	"context"

	"readenvy/internal/modules/library/dto"
	libraryin "readenvy/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Import(ctx context.Context, path, title, author, priority string, tags []string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{
		Path:     path,
		Title:    title,
		Author:   author,
		Tags:     tags,
		Priority: priority,
	})
}

func (h CLIHandler) Browse(ctx context.Context, filter, search, sort string) ([]dto.BookOutput, error) {
	return h.usecase.Browse(ctx, dto.BrowseInput{Filter: filter, Search: search, Sort: sort})
}

func (h CLIHandler) GetBook(ctx context.Context, id string) (dto.BookOutput, error) {
	return h.usecase.GetBook(ctx, id)
}

func (h CLIHandler) Archive(ctx context.Context, id string) (dto.BookOutput, error) {
	return h.usecase.Archive(ctx, id)
}

func (h CLIHandler) Restore(ctx context.Context, id string) (dto.BookOutput, error) {
	return h.usecase.Restore(ctx, id)
}

func (h CLIHandler) Remove(ctx context.Context, id string) error {
	return h.usecase.RemoveBook(ctx, id)
}

func (h CLIHandler) ClearLibrary(ctx context.Context) error {
	return h.usecase.ClearLibrary(ctx)
}

func (h CLIHandler) LastRead(ctx context.Context) (dto.BookOutput, bool, error) {
	return h.usecase.LastRead(ctx)
}

func (h CLIHandler) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}
