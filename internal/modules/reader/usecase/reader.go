package usecase

import (
	"context"

	"readenvy/internal/modules/reader/domain"
	"readenvy/internal/modules/reader/dto"
	readerin "readenvy/internal/modules/reader/port/in"
	"readenvy/internal/modules/reader/service"
)

type Interactor struct {
	svc     *service.ReaderService
	tracker *service.Tracker
}

func NewInteractor(svc *service.ReaderService, tracker *service.Tracker) readerin.Usecase {
	return &Interactor{svc: svc, tracker: tracker}
}

func (i *Interactor) Open(ctx context.Context, input dto.OpenInput) (dto.ViewOutput, error) {
	view, err := i.svc.Open(ctx, input.BookID, input.Page)
	if err != nil {
		return dto.ViewOutput{}, err
	}
	i.tracker.Begin(view.Book.ID)
	headings := domain.Flatten(view.Outline)
	outline := make([]dto.HeadingOutput, 0, len(headings))
	for _, h := range headings {
		outline = append(outline, dto.HeadingOutput{Title: h.Title, Page: h.Page, Depth: h.Depth})
	}
	return dto.ViewOutput{
		BookID:          view.Book.ID,
		Title:           view.Book.Title,
		Author:          view.Book.Author,
		Page:            view.Page.Number,
		TotalPages:      view.TotalPages,
		Text:            view.Page.Text,
		Percent:         view.Book.PercentComplete,
		Outline:         outline,
		OutlineMarkdown: domain.OutlineMarkdown(view.Outline),
	}, nil
}

func (i *Interactor) Close(_ context.Context, bookID string) error {
	i.tracker.Flush(bookID)
	return i.svc.Close(bookID)
}

func (i *Interactor) CloseAll(context.Context) error {
	i.tracker.FlushAll()
	return i.svc.CloseAll()
}

func (i *Interactor) PageChanged(bookID string, page int) {
	i.tracker.PageChanged(bookID, page)
}

func (i *Interactor) Flush(bookID string) {
	i.tracker.Flush(bookID)
}

func (i *Interactor) FlushAll() {
	i.tracker.FlushAll()
}

func (i *Interactor) Stop() {
	i.tracker.Stop()
}

func (i *Interactor) OnCommit(fn func(dto.CommitOutput)) {
	if fn == nil {
		i.tracker.OnCommit(nil)
		return
	}
	i.tracker.OnCommit(func(c service.Commit) {
		fn(dto.CommitOutput{
			BookID:          c.BookID,
			Page:            c.Page,
			DurationSeconds: c.DurationSeconds,
			Percent:         c.Percent,
			Err:             c.Err,
		})
	})
}
