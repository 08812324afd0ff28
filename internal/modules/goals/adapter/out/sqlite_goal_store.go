package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"readenvy/internal/modules/goals/domain"
	goalsout "readenvy/internal/modules/goals/port/out"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/sqlitedb"
)

type SQLiteGoalStore struct {
	db *sql.DB
}

func NewSQLiteGoalStore(db *sql.DB) goalsout.GoalStore {
	return &SQLiteGoalStore{db: db}
}

func (s *SQLiteGoalStore) ByType(ctx context.Context, goalType domain.GoalType) (domain.Goal, error) {
	row := sqlitedb.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, type, target, created_at FROM goals WHERE type = ?`, string(goalType))
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalType)
	}
	if err != nil {
		return domain.Goal{}, sqlitedb.StoreError("get goal", err)
	}
	return goal, nil
}

func (s *SQLiteGoalStore) Replace(ctx context.Context, goal domain.Goal) error {
	conn := sqlitedb.Conn(ctx, s.db)
	if _, err := conn.ExecContext(ctx, `DELETE FROM goals WHERE type = ?`, string(goal.Type)); err != nil {
		return sqlitedb.StoreError("replace goal", err)
	}
	_, err := conn.ExecContext(ctx, `INSERT INTO goals (id, type, target, created_at) VALUES (?, ?, ?, ?)`,
		goal.ID, string(goal.Type), goal.Target, sqlitedb.FormatTime(goal.CreatedAt))
	if err != nil {
		return sqlitedb.StoreError("replace goal", err)
	}
	return nil
}

func (s *SQLiteGoalStore) List(ctx context.Context) ([]domain.Goal, error) {
	rows, err := sqlitedb.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT id, type, target, created_at FROM goals ORDER BY type`)
	if err != nil {
		return nil, sqlitedb.StoreError("list goals", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, sqlitedb.StoreError("list goals", err)
		}
		out = append(out, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlitedb.StoreError("list goals", err)
	}
	return out, nil
}

func (s *SQLiteGoalStore) Clear(ctx context.Context) error {
	if _, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return sqlitedb.StoreError("clear goals", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (domain.Goal, error) {
	var (
		goal      domain.Goal
		goalType  string
		createdAt string
	)
	if err := row.Scan(&goal.ID, &goalType, &goal.Target, &createdAt); err != nil {
		return domain.Goal{}, err
	}
	goal.Type = domain.GoalType(goalType)
	var err error
	if goal.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
		return domain.Goal{}, err
	}
	return goal, nil
}
