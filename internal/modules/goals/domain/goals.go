package domain

import (
	"fmt"
	"math"
	"time"

	"readenvy/internal/platform/clock"
	apperrors "readenvy/internal/platform/errors"
)

// DefaultDailyPages applies until the user sets a daily goal.
const DefaultDailyPages = 20

type GoalType string

const (
	GoalDailyPages    GoalType = "daily_pages"
	GoalWeeklyPages   GoalType = "weekly_pages"
	GoalBooksPerMonth GoalType = "books_per_month"
)

func (t GoalType) Validate() error {
	switch t {
	case GoalDailyPages, GoalWeeklyPages, GoalBooksPerMonth:
		return nil
	default:
		return fmt.Errorf("%w: unsupported goal type %q", apperrors.ErrInvalidInput, string(t))
	}
}

type Goal struct {
	ID        string
	Type      GoalType
	Target    int
	CreatedAt time.Time
}

func (g Goal) Validate() error {
	if err := g.Type.Validate(); err != nil {
		return err
	}
	if g.Target <= 0 {
		return fmt.Errorf("%w: goal target must be positive, got %d", apperrors.ErrInvalidInput, g.Target)
	}
	return nil
}

// Streak is the singleton streak record. LastActiveDate is "" until the goal
// is first met.
type Streak struct {
	Current        int
	Longest        int
	LastActiveDate string
}

// Evaluate credits today to the streak when todayPages meets dailyGoal. It
// reports whether the record changed. A day below goal never breaks the
// streak; a gap is only noticed on the next qualifying day, which restarts at 1.
func Evaluate(todayPages, dailyGoal int, stored Streak, today string) (Streak, bool, error) {
	if todayPages < dailyGoal {
		return stored, false, nil
	}
	if stored.LastActiveDate == today {
		return stored, false, nil
	}
	yesterday, err := clock.AddDays(today, -1)
	if err != nil {
		return stored, false, err
	}
	next := Streak{Current: 1, Longest: stored.Longest, LastActiveDate: today}
	if stored.LastActiveDate == yesterday {
		next.Current = stored.Current + 1
	}
	next.Longest = max(next.Longest, next.Current)
	return next, true, nil
}

// DailyProgress is round(min(1, pages/goal)*100); a zero goal counts as met.
func DailyProgress(todayPages, dailyGoal int) int {
	if dailyGoal <= 0 {
		return 100
	}
	ratio := math.Min(1, float64(todayPages)/float64(dailyGoal))
	return int(math.Round(max(0, ratio) * 100))
}
