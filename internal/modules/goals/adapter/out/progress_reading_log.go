package out

import (
	"context"

	goalsout "readenvy/internal/modules/goals/port/out"
	progressdto "readenvy/internal/modules/progress/dto"
	progressin "readenvy/internal/modules/progress/port/in"
)

type ProgressReadingLog struct {
	progress progressin.Usecase
}

func NewProgressReadingLog(progress progressin.Usecase) goalsout.ReadingLog {
	return &ProgressReadingLog{progress: progress}
}

func (l *ProgressReadingLog) PagesReadOn(ctx context.Context, day string) (int, error) {
	sessions, err := l.progress.SessionsBetween(ctx, progressdto.RangeInput{Start: day, End: day})
	if err != nil {
		return 0, err
	}
	total := 0
	for _, s := range sessions {
		total += s.PagesRead
	}
	return total, nil
}
