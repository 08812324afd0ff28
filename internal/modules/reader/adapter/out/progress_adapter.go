package out

import (
	"context"

	progressdto "readenvy/internal/modules/progress/dto"
	progressin "readenvy/internal/modules/progress/port/in"
	readerout "readenvy/internal/modules/reader/port/out"
)

type ProgressAdapter struct {
	progress progressin.Usecase
}

func NewProgressAdapter(progress progressin.Usecase) readerout.ProgressPort {
	return &ProgressAdapter{progress: progress}
}

func (a *ProgressAdapter) Record(ctx context.Context, bookID string, page, durationSeconds int) (int, error) {
	out, err := a.progress.RecordProgress(ctx, progressdto.RecordInput{
		BookID:          bookID,
		Page:            page,
		DurationSeconds: durationSeconds,
	})
	if err != nil {
		return 0, err
	}
	return out.Book.PercentComplete, nil
}
