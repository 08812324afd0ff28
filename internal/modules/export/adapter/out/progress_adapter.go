package out

import (
	"context"

	"readenvy/internal/modules/export/domain"
	progressin "readenvy/internal/modules/progress/port/in"
)

// ProgressAdapter serves both session history and weekly stats.
type ProgressAdapter struct {
	progress progressin.Usecase
}

func NewProgressAdapter(progress progressin.Usecase) *ProgressAdapter {
	return &ProgressAdapter{progress: progress}
}

func (a *ProgressAdapter) Sessions(ctx context.Context, bookID string) ([]domain.Session, error) {
	sessions, err := a.progress.ListSessions(ctx, bookID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.Session{
			Date:      s.Date,
			StartPage: s.StartPage,
			EndPage:   s.EndPage,
			PagesRead: s.PagesRead,
			Duration:  s.Duration,
			CreatedAt: s.CreatedAt,
		})
	}
	return out, nil
}

func (a *ProgressAdapter) Weekly(ctx context.Context) (domain.Weekly, error) {
	stats, err := a.progress.WeeklyStats(ctx, "")
	if err != nil {
		return domain.Weekly{}, err
	}
	daily := make([]domain.DailyPages, 0, len(stats.Daily))
	for _, d := range stats.Daily {
		daily = append(daily, domain.DailyPages{Date: d.Date, Pages: d.Pages})
	}
	return domain.Weekly{
		Start:         stats.Start,
		End:           stats.End,
		PagesRead:     stats.PagesRead,
		TimeSpent:     stats.TimeSpent,
		BooksOpened:   stats.BooksOpened,
		SessionsCount: stats.SessionsCount,
		Daily:         daily,
	}, nil
}
