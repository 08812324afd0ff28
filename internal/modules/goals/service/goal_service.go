package service

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"readenvy/internal/modules/goals/domain"
	goalsout "readenvy/internal/modules/goals/port/out"
	"readenvy/internal/platform/clock"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/id"
	"readenvy/internal/platform/tx"
)

type Snapshot struct {
	Today          string
	DailyGoal      int
	TodayPagesRead int
	DailyProgress  int
	GoalMet        bool
	Streak         domain.Streak
}

type GoalService struct {
	clock        clock.Clock
	idGen        id.Generator
	goals        goalsout.GoalStore
	streaks      goalsout.StreakStore
	reading      goalsout.ReadingLog
	tx           tx.Manager
	defaultDaily int
	log          hclog.Logger

	// streakMu makes the streak read-evaluate-write a single writer.
	streakMu sync.Mutex
}

func NewGoalService(
	clock clock.Clock,
	idGen id.Generator,
	goals goalsout.GoalStore,
	streaks goalsout.StreakStore,
	reading goalsout.ReadingLog,
	txm tx.Manager,
	defaultDaily int,
	logger hclog.Logger,
) *GoalService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if defaultDaily <= 0 {
		defaultDaily = domain.DefaultDailyPages
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GoalService{
		clock:        clock,
		idGen:        idGen,
		goals:        goals,
		streaks:      streaks,
		reading:      reading,
		tx:           txm,
		defaultDaily: defaultDaily,
		log:          logger.Named("goals"),
	}
}

func (s *GoalService) RefreshTodayProgress(ctx context.Context) (Snapshot, error) {
	s.streakMu.Lock()
	defer s.streakMu.Unlock()

	var snap Snapshot
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		snap, err = s.snapshot(ctx)
		if err != nil {
			return err
		}
		snap.Streak, err = s.evaluate(ctx, snap.Today, snap.TodayPagesRead, snap.DailyGoal)
		return err
	})
	return snap, err
}

func (s *GoalService) EvaluateStreak(ctx context.Context, todayPages int) (domain.Streak, error) {
	s.streakMu.Lock()
	defer s.streakMu.Unlock()

	var out domain.Streak
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		goal, err := s.dailyGoal(ctx)
		if err != nil {
			return err
		}
		out, err = s.evaluate(ctx, clock.Day(s.clock.Now()), todayPages, goal)
		return err
	})
	return out, err
}

func (s *GoalService) evaluate(ctx context.Context, today string, todayPages, goal int) (domain.Streak, error) {
	stored, err := s.streaks.Get(ctx)
	if err != nil {
		return domain.Streak{}, err
	}
	next, changed, err := domain.Evaluate(todayPages, goal, stored, today)
	if err != nil {
		return domain.Streak{}, err
	}
	if !changed {
		return stored, nil
	}
	if err := s.streaks.Replace(ctx, next); err != nil {
		return domain.Streak{}, err
	}
	s.log.Info("daily goal met", "day", today, "streak", next.Current, "longest", next.Longest)
	return next, nil
}

// Load reports the stored streak as-is, even when it is stale.
func (s *GoalService) Load(ctx context.Context) (Snapshot, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Streak, err = s.streaks.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *GoalService) snapshot(ctx context.Context) (Snapshot, error) {
	today := clock.Day(s.clock.Now())
	pages, err := s.reading.PagesReadOn(ctx, today)
	if err != nil {
		return Snapshot{}, err
	}
	goal, err := s.dailyGoal(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Today:          today,
		DailyGoal:      goal,
		TodayPagesRead: pages,
		DailyProgress:  domain.DailyProgress(pages, goal),
		GoalMet:        pages >= goal,
	}, nil
}

func (s *GoalService) dailyGoal(ctx context.Context) (int, error) {
	goal, err := s.goals.ByType(ctx, domain.GoalDailyPages)
	if errors.Is(err, apperrors.ErrNotFound) {
		return s.defaultDaily, nil
	}
	if err != nil {
		return 0, err
	}
	return goal.Target, nil
}

func (s *GoalService) SetGoal(ctx context.Context, goalType domain.GoalType, target int) (domain.Goal, error) {
	goal := domain.Goal{
		ID:        s.idGen.New(),
		Type:      goalType,
		Target:    target,
		CreatedAt: s.clock.Now(),
	}
	if err := goal.Validate(); err != nil {
		return domain.Goal{}, err
	}
	if err := s.tx.Within(ctx, func(ctx context.Context) error {
		return s.goals.Replace(ctx, goal)
	}); err != nil {
		return domain.Goal{}, err
	}
	s.log.Info("goal set", "type", goal.Type, "target", goal.Target)
	return goal, nil
}

func (s *GoalService) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	return s.goals.List(ctx)
}

// ClearAll removes every goal and the streak record.
func (s *GoalService) ClearAll(ctx context.Context) error {
	s.streakMu.Lock()
	defer s.streakMu.Unlock()
	return s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.goals.Clear(ctx); err != nil {
			return err
		}
		return s.streaks.Clear(ctx)
	})
}
