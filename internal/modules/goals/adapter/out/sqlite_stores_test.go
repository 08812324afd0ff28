package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalsoutadapter "readenvy/internal/modules/goals/adapter/out"
	"readenvy/internal/modules/goals/domain"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/sqlitedb"
)

func TestStreakStoreUpsertsSingleRow(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "readenvy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := goalsoutadapter.NewSQLiteStreakStore(db)
	ctx := context.Background()

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Streak{}, got)

	require.NoError(t, store.Replace(ctx, domain.Streak{Current: 1, Longest: 1, LastActiveDate: "2026-01-01"}))
	require.NoError(t, store.Replace(ctx, domain.Streak{Current: 2, Longest: 4, LastActiveDate: "2026-01-02"}))

	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Streak{Current: 2, Longest: 4, LastActiveDate: "2026-01-02"}, got)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM streaks`).Scan(&rows))
	assert.Equal(t, 1, rows)

	require.NoError(t, store.Clear(ctx))
	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Streak{}, got)
}

func TestGoalStoreByTypeAndReplace(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "readenvy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := goalsoutadapter.NewSQLiteGoalStore(db)
	ctx := context.Background()
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	_, err = store.ByType(ctx, domain.GoalDailyPages)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.Replace(ctx, domain.Goal{ID: "g1", Type: domain.GoalDailyPages, Target: 10, CreatedAt: created}))
	require.NoError(t, store.Replace(ctx, domain.Goal{ID: "g2", Type: domain.GoalDailyPages, Target: 30, CreatedAt: created}))

	got, err := store.ByType(ctx, domain.GoalDailyPages)
	require.NoError(t, err)
	assert.Equal(t, "g2", got.ID)
	assert.Equal(t, 30, got.Target)
	assert.True(t, created.Equal(got.CreatedAt))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
