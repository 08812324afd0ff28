package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readenvy/internal/modules/goals/domain"
	apperrors "readenvy/internal/platform/errors"
)

const today = "2026-03-01"

func TestEvaluateContinuesFromYesterday(t *testing.T) {
	t.Parallel()
	got, changed, err := domain.Evaluate(25, 20, domain.Streak{Current: 4, Longest: 4, LastActiveDate: "2026-02-28"}, today)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.Streak{Current: 5, Longest: 5, LastActiveDate: today}, got)

	got, _, err = domain.Evaluate(20, 20, domain.Streak{Current: 4, Longest: 9, LastActiveDate: "2026-02-28"}, today)
	require.NoError(t, err)
	assert.Equal(t, domain.Streak{Current: 5, Longest: 9, LastActiveDate: today}, got)
}

func TestEvaluateResetsAfterGap(t *testing.T) {
	t.Parallel()
	got, changed, err := domain.Evaluate(30, 20, domain.Streak{Current: 4, Longest: 6, LastActiveDate: "2026-02-26"}, today)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.Streak{Current: 1, Longest: 6, LastActiveDate: today}, got)
}

func TestEvaluateStartsFreshStreak(t *testing.T) {
	t.Parallel()
	got, changed, err := domain.Evaluate(20, 20, domain.Streak{}, today)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.Streak{Current: 1, Longest: 1, LastActiveDate: today}, got)
}

func TestEvaluateDoesNotDoubleCreditSameDay(t *testing.T) {
	t.Parallel()
	first, _, err := domain.Evaluate(20, 20, domain.Streak{Current: 2, Longest: 2, LastActiveDate: "2026-02-28"}, today)
	require.NoError(t, err)
	second, changed, err := domain.Evaluate(40, 20, first, today)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, second.Current)
}

func TestEvaluateBelowGoalLeavesStaleStreak(t *testing.T) {
	t.Parallel()
	stored := domain.Streak{Current: 7, Longest: 7, LastActiveDate: "2026-02-20"}
	got, changed, err := domain.Evaluate(5, 20, stored, today)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, stored, got)
}

func TestEvaluateCrossesMonthAndYearBoundaries(t *testing.T) {
	t.Parallel()
	got, _, err := domain.Evaluate(1, 1, domain.Streak{Current: 1, Longest: 1, LastActiveDate: "2025-12-31"}, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Current)

	got, _, err = domain.Evaluate(1, 1, domain.Streak{Current: 1, Longest: 1, LastActiveDate: "2024-02-28"}, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Current, "2024 is a leap year so Feb 29 was skipped")
}

func TestEvaluateRejectsMalformedDay(t *testing.T) {
	t.Parallel()
	_, _, err := domain.Evaluate(20, 20, domain.Streak{}, "03/01/2026")
	assert.Error(t, err)
}

func TestDailyProgress(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 100, domain.DailyProgress(0, 0))
	assert.Equal(t, 0, domain.DailyProgress(0, 20))
	assert.Equal(t, 100, domain.DailyProgress(25, 20))
	assert.Equal(t, 50, domain.DailyProgress(10, 20))
	assert.Equal(t, 33, domain.DailyProgress(1, 3))
}

func TestGoalValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, domain.Goal{Type: domain.GoalDailyPages, Target: 1}.Validate())
	assert.ErrorIs(t, domain.Goal{Type: domain.GoalDailyPages, Target: 0}.Validate(), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, domain.Goal{Type: domain.GoalDailyPages, Target: -3}.Validate(), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, domain.Goal{Type: "hours", Target: 3}.Validate(), apperrors.ErrInvalidInput)
}
