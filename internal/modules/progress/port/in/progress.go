package in

import (
	"context"

	"readenvy/internal/modules/progress/dto"
)

type Usecase interface {
	RecordProgress(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	ResetProgress(ctx context.Context, bookID string) (dto.BookProgressOutput, error)
	ResetAllProgress(ctx context.Context) error
	ListSessions(ctx context.Context, bookID string) ([]dto.SessionOutput, error)
	SessionsBetween(ctx context.Context, input dto.RangeInput) ([]dto.SessionOutput, error)
	// WeeklyStats covers the seven days ending at endDay; "" means today.
	WeeklyStats(ctx context.Context, endDay string) (dto.WeeklyStatsOutput, error)
}
