package usecase

import (
	"context"

	"readenvy/internal/modules/library/domain"
	"readenvy/internal/modules/library/dto"
	libraryin "readenvy/internal/modules/library/port/in"
	"readenvy/internal/modules/library/service"
)

type Interactor struct {
	svc *service.BookService
}

func NewInteractor(svc *service.BookService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	book, warning, err := i.svc.Import(ctx, input.Path, input.Title, input.Author, input.Tags, input.Priority)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{Book: toOutput(book), Warning: warning}, nil
}

func (i *Interactor) ListBooks(ctx context.Context) ([]dto.BookOutput, error) {
	books, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(books), nil
}

func (i *Interactor) Browse(ctx context.Context, input dto.BrowseInput) ([]dto.BookOutput, error) {
	filter, err := domain.ParseFilter(input.Filter)
	if err != nil {
		return nil, err
	}
	sortKey, err := domain.ParseSortKey(input.Sort)
	if err != nil {
		return nil, err
	}
	books, err := i.svc.Browse(ctx, domain.Query{Filter: filter, Search: input.Search, Sort: sortKey})
	if err != nil {
		return nil, err
	}
	return toOutputs(books), nil
}

func (i *Interactor) GetBook(ctx context.Context, id string) (dto.BookOutput, error) {
	book, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) Archive(ctx context.Context, id string) (dto.BookOutput, error) {
	book, err := i.svc.Archive(ctx, id)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) Restore(ctx context.Context, id string) (dto.BookOutput, error) {
	book, err := i.svc.Restore(ctx, id)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) RemoveBook(ctx context.Context, id string) error {
	return i.svc.Remove(ctx, id)
}

func (i *Interactor) ClearLibrary(ctx context.Context) error {
	return i.svc.ClearLibrary(ctx)
}

func (i *Interactor) LastRead(ctx context.Context) (dto.BookOutput, bool, error) {
	book, ok, err := i.svc.LastRead(ctx)
	if err != nil || !ok {
		return dto.BookOutput{}, false, err
	}
	return toOutput(book), true, nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	s, err := i.svc.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Total:            s.Total,
		Active:           s.Active,
		Completed:        s.Completed,
		Archived:         s.Archived,
		PagesRead:        s.PagesRead,
		TotalReadingTime: s.TotalReadingTime,
	}, nil
}

func toOutputs(books []domain.Book) []dto.BookOutput {
	out := make([]dto.BookOutput, 0, len(books))
	for _, b := range books {
		out = append(out, toOutput(b))
	}
	return out
}

func toOutput(b domain.Book) dto.BookOutput {
	return dto.BookOutput{
		ID:               b.ID,
		Title:            b.Title,
		Author:           b.Author,
		FilePath:         b.FilePath,
		TotalPages:       b.TotalPages,
		CurrentPage:      b.CurrentPage,
		PercentComplete:  b.PercentComplete,
		TotalReadingTime: b.TotalReadingTime,
		Tags:             b.Tags,
		Priority:         string(b.Priority),
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		LastReadAt:       b.LastReadAt,
	}
}
