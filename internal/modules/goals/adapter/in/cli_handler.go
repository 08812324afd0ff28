package in

import (
	"context"

	"readenvy/internal/modules/goals/dto"
	goalsin "readenvy/internal/modules/goals/port/in"
)

type CLIHandler struct {
	usecase goalsin.Usecase
}

func NewCLIHandler(usecase goalsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SetGoal(ctx context.Context, goalType string, target int) (dto.GoalOutput, error) {
	return h.usecase.SetGoal(ctx, dto.SetGoalInput{Type: goalType, Target: target})
}

func (h CLIHandler) SetDailyGoal(ctx context.Context, pages int) (dto.GoalOutput, error) {
	return h.usecase.SetDailyGoal(ctx, pages)
}

func (h CLIHandler) Goals(ctx context.Context) ([]dto.GoalOutput, error) {
	return h.usecase.ListGoals(ctx)
}

func (h CLIHandler) Show(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Load(ctx)
}

// Refresh re-evaluates the streak against today's sessions.
func (h CLIHandler) Refresh(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.RefreshTodayProgress(ctx)
}
