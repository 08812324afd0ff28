package out

import (
	"context"

	goalsin "readenvy/internal/modules/goals/port/in"
	readerout "readenvy/internal/modules/reader/port/out"
)

type GoalsAdapter struct {
	goals goalsin.Usecase
}

func NewGoalsAdapter(goals goalsin.Usecase) readerout.GoalsPort {
	return &GoalsAdapter{goals: goals}
}

func (a *GoalsAdapter) Refresh(ctx context.Context) error {
	_, err := a.goals.RefreshTodayProgress(ctx)
	return err
}
