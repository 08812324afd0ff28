package usecase

import (
	"context"

	"readenvy/internal/modules/progress/domain"
	"readenvy/internal/modules/progress/dto"
	progressin "readenvy/internal/modules/progress/port/in"
	"readenvy/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RecordProgress(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	book, session, err := i.svc.RecordProgress(ctx, input.BookID, input.Page, input.DurationSeconds)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	out := dto.RecordOutput{Book: toBookOutput(book)}
	if session != nil {
		s := toSessionOutput(*session)
		out.Session = &s
	}
	return out, nil
}

func (i *Interactor) ResetProgress(ctx context.Context, bookID string) (dto.BookProgressOutput, error) {
	book, err := i.svc.ResetProgress(ctx, bookID)
	if err != nil {
		return dto.BookProgressOutput{}, err
	}
	return toBookOutput(book), nil
}

func (i *Interactor) ResetAllProgress(ctx context.Context) error {
	return i.svc.ResetAllProgress(ctx)
}

func (i *Interactor) ListSessions(ctx context.Context, bookID string) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.ListSessions(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return toSessionOutputs(sessions), nil
}

func (i *Interactor) SessionsBetween(ctx context.Context, input dto.RangeInput) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.SessionsBetween(ctx, input.Start, input.End)
	if err != nil {
		return nil, err
	}
	return toSessionOutputs(sessions), nil
}

func (i *Interactor) WeeklyStats(ctx context.Context, endDay string) (dto.WeeklyStatsOutput, error) {
	stats, err := i.svc.WeeklyStats(ctx, endDay)
	if err != nil {
		return dto.WeeklyStatsOutput{}, err
	}
	daily := make([]dto.DailyPagesOutput, 0, len(stats.Daily))
	for _, d := range stats.Daily {
		daily = append(daily, dto.DailyPagesOutput{Date: d.Date, Pages: d.Pages})
	}
	return dto.WeeklyStatsOutput{
		Start:         stats.Start,
		End:           stats.End,
		PagesRead:     stats.PagesRead,
		TimeSpent:     stats.TimeSpent,
		BooksOpened:   stats.BooksOpened,
		SessionsCount: stats.SessionsCount,
		Daily:         daily,
	}, nil
}

func toBookOutput(b domain.BookProgress) dto.BookProgressOutput {
	return dto.BookProgressOutput{
		ID:               b.ID,
		Title:            b.Title,
		TotalPages:       b.TotalPages,
		CurrentPage:      b.CurrentPage,
		PercentComplete:  b.PercentComplete,
		TotalReadingTime: b.TotalReadingTime,
		Status:           b.Status,
		UpdatedAt:        b.UpdatedAt,
		LastReadAt:       b.LastReadAt,
	}
}

func toSessionOutputs(sessions []domain.Session) []dto.SessionOutput {
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionOutput(s))
	}
	return out
}

func toSessionOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:        s.ID,
		BookID:    s.BookID,
		StartPage: s.StartPage,
		EndPage:   s.EndPage,
		PagesRead: s.PagesRead,
		Duration:  s.Duration,
		Date:      s.Date,
		CreatedAt: s.CreatedAt,
	}
}
