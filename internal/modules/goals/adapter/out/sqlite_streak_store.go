package out

import (
	"context"
	"database/sql"
	"errors"

	"readenvy/internal/modules/goals/domain"
	goalsout "readenvy/internal/modules/goals/port/out"
	"readenvy/internal/platform/sqlitedb"
)

type SQLiteStreakStore struct {
	db *sql.DB
}

func NewSQLiteStreakStore(db *sql.DB) goalsout.StreakStore {
	return &SQLiteStreakStore{db: db}
}

func (s *SQLiteStreakStore) Get(ctx context.Context) (domain.Streak, error) {
	var (
		streak     domain.Streak
		lastActive sql.NullString
	)
	err := sqlitedb.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT current_streak, longest_streak, last_active_date FROM streaks WHERE id = 1`,
	).Scan(&streak.Current, &streak.Longest, &lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Streak{}, nil
	}
	if err != nil {
		return domain.Streak{}, sqlitedb.StoreError("get streak", err)
	}
	streak.LastActiveDate = lastActive.String
	return streak, nil
}

func (s *SQLiteStreakStore) Replace(ctx context.Context, streak domain.Streak) error {
	lastActive := sql.NullString{String: streak.LastActiveDate, Valid: streak.LastActiveDate != ""}
	_, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO streaks (id, current_streak, longest_streak, last_active_date) VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	current_streak = excluded.current_streak,
	longest_streak = excluded.longest_streak,
	last_active_date = excluded.last_active_date`,
		streak.Current, streak.Longest, lastActive)
	if err != nil {
		return sqlitedb.StoreError("replace streak", err)
	}
	return nil
}

func (s *SQLiteStreakStore) Clear(ctx context.Context) error {
	if _, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM streaks`); err != nil {
		return sqlitedb.StoreError("clear streak", err)
	}
	return nil
}
