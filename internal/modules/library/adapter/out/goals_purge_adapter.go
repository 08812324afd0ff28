package out

import (
	"context"

	goalsin "readenvy/internal/modules/goals/port/in"
	libraryout "readenvy/internal/modules/library/port/out"
)

type GoalsPurgeAdapter struct {
	goals goalsin.Usecase
}

func NewGoalsPurgeAdapter(goals goalsin.Usecase) libraryout.DataPurger {
	return &GoalsPurgeAdapter{goals: goals}
}

func (a *GoalsPurgeAdapter) PurgeAll(ctx context.Context) error {
	return a.goals.ClearAll(ctx)
}
