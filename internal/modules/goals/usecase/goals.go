package usecase

import (
	"context"

	"readenvy/internal/modules/goals/domain"
	"readenvy/internal/modules/goals/dto"
	goalsin "readenvy/internal/modules/goals/port/in"
	"readenvy/internal/modules/goals/service"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) goalsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RefreshTodayProgress(ctx context.Context) (dto.SnapshotOutput, error) {
	snap, err := i.svc.RefreshTodayProgress(ctx)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	return toSnapshotOutput(snap), nil
}

func (i *Interactor) EvaluateStreak(ctx context.Context, todayPages int) (dto.StreakOutput, error) {
	streak, err := i.svc.EvaluateStreak(ctx, todayPages)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return toStreakOutput(streak), nil
}

func (i *Interactor) Load(ctx context.Context) (dto.SnapshotOutput, error) {
	snap, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	return toSnapshotOutput(snap), nil
}

func (i *Interactor) SetDailyGoal(ctx context.Context, pages int) (dto.GoalOutput, error) {
	return i.SetGoal(ctx, dto.SetGoalInput{Type: string(domain.GoalDailyPages), Target: pages})
}

func (i *Interactor) SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error) {
	goal, err := i.svc.SetGoal(ctx, domain.GoalType(input.Type), input.Target)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) ListGoals(ctx context.Context) ([]dto.GoalOutput, error) {
	goals, err := i.svc.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalOutput, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalOutput(g))
	}
	return out, nil
}

func (i *Interactor) ClearAll(ctx context.Context) error {
	return i.svc.ClearAll(ctx)
}

func toSnapshotOutput(s service.Snapshot) dto.SnapshotOutput {
	return dto.SnapshotOutput{
		Today:          s.Today,
		DailyGoal:      s.DailyGoal,
		TodayPagesRead: s.TodayPagesRead,
		DailyProgress:  s.DailyProgress,
		GoalMet:        s.GoalMet,
		Streak:         toStreakOutput(s.Streak),
	}
}

func toStreakOutput(s domain.Streak) dto.StreakOutput {
	return dto.StreakOutput{CurrentStreak: s.Current, LongestStreak: s.Longest, LastActiveDate: s.LastActiveDate}
}

func toGoalOutput(g domain.Goal) dto.GoalOutput {
	return dto.GoalOutput{ID: g.ID, Type: string(g.Type), Target: g.Target, CreatedAt: g.CreatedAt}
}
