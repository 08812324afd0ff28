package sqlitedb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/sqlitedb"
)

func TestOpenIsIdempotentAndCreatesTables(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "readenvy.db")
	db, err := sqlitedb.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlitedb.Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, table := range []string{"books", "sessions", "goals", "streaks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestTxManagerRollsBackOnError(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "readenvy.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	mgr := sqlitedb.NewTxManager(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err = mgr.Within(ctx, func(ctx context.Context) error {
		_, err := sqlitedb.Conn(ctx, db).ExecContext(ctx, `INSERT INTO goals (id, type, target, created_at) VALUES ('g1', 'daily_pages', 10, 'x')`)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM goals`).Scan(&count))
	assert.Zero(t, count)

	err = mgr.Within(ctx, func(ctx context.Context) error {
		return mgr.Within(ctx, func(ctx context.Context) error {
			_, err := sqlitedb.Conn(ctx, db).ExecContext(ctx, `INSERT INTO goals (id, type, target, created_at) VALUES ('g1', 'daily_pages', 10, 'x')`)
			return err
		})
	})
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM goals`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTimeLayoutOrdersLexically(t *testing.T) {
	t.Parallel()
	a := time.Date(2026, 3, 1, 9, 0, 0, 5, time.FixedZone("x", 3600))
	b := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	assert.Less(t, sqlitedb.FormatTime(a), sqlitedb.FormatTime(b))

	parsed, err := sqlitedb.ParseTime(sqlitedb.FormatTime(a))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(a))

	nt, err := sqlitedb.ParseNullTime(sqlitedb.FormatNullTime(nil))
	require.NoError(t, err)
	assert.Nil(t, nt)
}

func TestStoreErrorMatchesBothSentinelAndCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("disk I/O error")
	err := sqlitedb.StoreError("update book", cause)
	assert.ErrorIs(t, err, apperrors.ErrStoreFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "update book")
}
