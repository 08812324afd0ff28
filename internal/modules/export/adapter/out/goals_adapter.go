package out

import (
	"context"

	"readenvy/internal/modules/export/domain"
	exportout "readenvy/internal/modules/export/port/out"
	goalsin "readenvy/internal/modules/goals/port/in"
)

type GoalsAdapter struct {
	goals goalsin.Usecase
}

func NewGoalsAdapter(goals goalsin.Usecase) exportout.GoalSource {
	return &GoalsAdapter{goals: goals}
}

func (a *GoalsAdapter) Status(ctx context.Context) (domain.GoalStatus, error) {
	snap, err := a.goals.Load(ctx)
	if err != nil {
		return domain.GoalStatus{}, err
	}
	return domain.GoalStatus{
		DailyGoal:      snap.DailyGoal,
		TodayPages:     snap.TodayPagesRead,
		DailyProgress:  snap.DailyProgress,
		GoalMet:        snap.GoalMet,
		CurrentStreak:  snap.Streak.CurrentStreak,
		LongestStreak:  snap.Streak.LongestStreak,
		LastActiveDate: snap.Streak.LastActiveDate,
	}, nil
}
