package in

import (
	"context"

	"readenvy/internal/modules/goals/dto"
)

type Usecase interface {
	// RefreshTodayProgress sums today's pages and re-evaluates the streak.
	RefreshTodayProgress(ctx context.Context) (dto.SnapshotOutput, error)
	EvaluateStreak(ctx context.Context, todayPages int) (dto.StreakOutput, error)
	// Load reports current state without touching the streak.
	Load(ctx context.Context) (dto.SnapshotOutput, error)
	SetDailyGoal(ctx context.Context, pages int) (dto.GoalOutput, error)
	SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error)
	ListGoals(ctx context.Context) ([]dto.GoalOutput, error)
	ClearAll(ctx context.Context) error
}
