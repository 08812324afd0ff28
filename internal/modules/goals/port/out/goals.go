package out

import (
	"context"

	"readenvy/internal/modules/goals/domain"
)

type GoalStore interface {
	ByType(ctx context.Context, goalType domain.GoalType) (domain.Goal, error)
	// Replace deletes any goal of the same type before inserting.
	Replace(ctx context.Context, goal domain.Goal) error
	List(ctx context.Context) ([]domain.Goal, error)
	Clear(ctx context.Context) error
}

type StreakStore interface {
	// Get returns the zero Streak when none has been stored.
	Get(ctx context.Context) (domain.Streak, error)
	Replace(ctx context.Context, streak domain.Streak) error
	Clear(ctx context.Context) error
}

// ReadingLog reports pages read across all books on a calendar day.
type ReadingLog interface {
	PagesReadOn(ctx context.Context, day string) (int, error)
}
