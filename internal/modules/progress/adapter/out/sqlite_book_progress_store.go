package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"readenvy/internal/modules/progress/domain"
	progressout "readenvy/internal/modules/progress/port/out"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/sqlitedb"
)

// SQLiteBookProgressStore reads and writes the progress columns of the books table.
type SQLiteBookProgressStore struct {
	db *sql.DB
}

func NewSQLiteBookProgressStore(db *sql.DB) progressout.BookStore {
	return &SQLiteBookProgressStore{db: db}
}

func (s *SQLiteBookProgressStore) Get(ctx context.Context, bookID string) (domain.BookProgress, error) {
	var (
		book       domain.BookProgress
		updatedAt  string
		lastReadAt sql.NullString
	)
	err := sqlitedb.Conn(ctx, s.db).QueryRowContext(ctx, `
SELECT id, title, total_pages, current_page, percent_complete, total_reading_time, status, updated_at, last_read_at
FROM books WHERE id = ?`, bookID).Scan(
		&book.ID, &book.Title, &book.TotalPages, &book.CurrentPage, &book.PercentComplete,
		&book.TotalReadingTime, &book.Status, &updatedAt, &lastReadAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BookProgress{}, fmt.Errorf("book %q: %w", bookID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.BookProgress{}, sqlitedb.StoreError("get book progress", err)
	}
	if book.UpdatedAt, err = sqlitedb.ParseTime(updatedAt); err != nil {
		return domain.BookProgress{}, fmt.Errorf("parse updated_at for %s: %w", bookID, err)
	}
	if book.LastReadAt, err = sqlitedb.ParseNullTime(lastReadAt); err != nil {
		return domain.BookProgress{}, fmt.Errorf("parse last_read_at for %s: %w", bookID, err)
	}
	return book, nil
}

func (s *SQLiteBookProgressStore) SaveProgress(ctx context.Context, book domain.BookProgress) error {
	res, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `
UPDATE books SET
  current_page = ?, percent_complete = ?, total_reading_time = ?, status = ?, updated_at = ?, last_read_at = ?
WHERE id = ?`,
		book.CurrentPage, book.PercentComplete, book.TotalReadingTime, book.Status,
		sqlitedb.FormatTime(book.UpdatedAt), sqlitedb.FormatNullTime(book.LastReadAt), book.ID,
	)
	if err != nil {
		return sqlitedb.StoreError("save book progress", err)
	}
	return sqlitedb.RequireAffected(res, "book", book.ID)
}

func (s *SQLiteBookProgressStore) ResetAll(ctx context.Context, now time.Time) error {
	_, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `
UPDATE books SET
  current_page = 0, percent_complete = 0, total_reading_time = 0, status = 'active', updated_at = ?, last_read_at = NULL`,
		sqlitedb.FormatTime(now),
	)
	if err != nil {
		return sqlitedb.StoreError("reset all progress", err)
	}
	return nil
}
