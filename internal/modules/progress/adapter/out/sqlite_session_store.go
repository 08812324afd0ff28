package out

import (
	"context"
	"database/sql"
	"fmt"

	"readenvy/internal/modules/progress/domain"
	progressout "readenvy/internal/modules/progress/port/out"
	"readenvy/internal/platform/sqlitedb"
)

const sessionColumns = `id, book_id, start_page, end_page, pages_read, duration, date, created_at`

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) progressout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

func (s *SQLiteSessionStore) Add(ctx context.Context, session domain.Session) error {
	_, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.BookID, session.StartPage, session.EndPage, session.PagesRead,
		session.Duration, session.Date, sqlitedb.FormatTime(session.CreatedAt),
	)
	if err != nil {
		return sqlitedb.StoreError("insert session", err)
	}
	return nil
}

func (s *SQLiteSessionStore) ByBook(ctx context.Context, bookID string) ([]domain.Session, error) {
	return s.query(ctx, "sessions by book", `SELECT `+sessionColumns+` FROM sessions WHERE book_id = ? ORDER BY created_at, id`, bookID)
}

func (s *SQLiteSessionStore) ByDateRange(ctx context.Context, start, end string) ([]domain.Session, error) {
	return s.query(ctx, "sessions by date", `SELECT `+sessionColumns+` FROM sessions WHERE date BETWEEN ? AND ? ORDER BY created_at, id`, start, end)
}

func (s *SQLiteSessionStore) Clear(ctx context.Context) error {
	if _, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return sqlitedb.StoreError("clear sessions", err)
	}
	return nil
}

func (s *SQLiteSessionStore) query(ctx context.Context, op, query string, args ...any) ([]domain.Session, error) {
	rows, err := sqlitedb.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlitedb.StoreError(op, err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Session{}
	for rows.Next() {
		var (
			session   domain.Session
			createdAt string
		)
		if err := rows.Scan(&session.ID, &session.BookID, &session.StartPage, &session.EndPage,
			&session.PagesRead, &session.Duration, &session.Date, &createdAt); err != nil {
			return nil, sqlitedb.StoreError(op, err)
		}
		if session.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse session created_at: %w", err)
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlitedb.StoreError(op, err)
	}
	return out, nil
}
