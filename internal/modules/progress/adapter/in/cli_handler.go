package in

import (
	"context"

	"readenvy/internal/modules/progress/dto"
	progressin "readenvy/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, bookID string, page, durationSeconds int) (dto.RecordOutput, error) {
	return h.usecase.RecordProgress(ctx, dto.RecordInput{BookID: bookID, Page: page, DurationSeconds: durationSeconds})
}

func (h CLIHandler) Reset(ctx context.Context, bookID string) (dto.BookProgressOutput, error) {
	return h.usecase.ResetProgress(ctx, bookID)
}

func (h CLIHandler) ResetAll(ctx context.Context) error {
	return h.usecase.ResetAllProgress(ctx)
}

func (h CLIHandler) Sessions(ctx context.Context, bookID string) ([]dto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx, bookID)
}

func (h CLIHandler) SessionsBetween(ctx context.Context, start, end string) ([]dto.SessionOutput, error) {
	return h.usecase.SessionsBetween(ctx, dto.RangeInput{Start: start, End: end})
}

func (h CLIHandler) Weekly(ctx context.Context, endDay string) (dto.WeeklyStatsOutput, error) {
	return h.usecase.WeeklyStats(ctx, endDay)
}
