package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"readenvy/internal/modules/library/domain"
	libraryout "readenvy/internal/modules/library/port/out"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/sqlitedb"
)

const bookColumns = `id, title, author, file_path, total_pages, current_page, percent_complete,
  total_reading_time, tags, priority, status, created_at, updated_at, last_read_at`

type SQLiteBookStore struct {
	db *sql.DB
}

func NewSQLiteBookStore(db *sql.DB) libraryout.BookStore {
	return &SQLiteBookStore{db: db}
}

func (s *SQLiteBookStore) Create(ctx context.Context, book domain.Book) error {
	tags, err := json.Marshal(nonNilTags(book.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `
INSERT INTO books (`+bookColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID, book.Title, book.Author, book.FilePath,
		book.TotalPages, book.CurrentPage, book.PercentComplete, book.TotalReadingTime,
		string(tags), string(book.Priority), string(book.Status),
		sqlitedb.FormatTime(book.CreatedAt), sqlitedb.FormatTime(book.UpdatedAt), sqlitedb.FormatNullTime(book.LastReadAt),
	)
	if err != nil {
		return sqlitedb.StoreError("insert book", err)
	}
	return nil
}

func (s *SQLiteBookStore) Get(ctx context.Context, id string) (domain.Book, error) {
	row := sqlitedb.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, fmt.Errorf("book %q: %w", id, apperrors.ErrNotFound)
	}
	return book, err
}

func (s *SQLiteBookStore) FindByPath(ctx context.Context, path string) (domain.Book, error) {
	row := sqlitedb.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE file_path = ? LIMIT 1`, path)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, fmt.Errorf("book at %q: %w", path, apperrors.ErrNotFound)
	}
	return book, err
}

func (s *SQLiteBookStore) Update(ctx context.Context, book domain.Book) error {
	tags, err := json.Marshal(nonNilTags(book.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	res, err := sqlitedb.Conn(ctx, s.db).ExecContext(ctx, `
UPDATE books SET
  title = ?, author = ?, file_path = ?, total_pages = ?, current_page = ?, percent_complete = ?,
  total_reading_time = ?, tags = ?, priority = ?, status = ?, updated_at = ?, last_read_at = ?
WHERE id = ?`,
		book.Title, book.Author, book.FilePath, book.TotalPages, book.CurrentPage, book.PercentComplete,
		book.TotalReadingTime, string(tags), string(book.Priority), string(book.Status),
		sqlitedb.FormatTime(book.UpdatedAt), sqlitedb.FormatNullTime(book.LastReadAt),
		book.ID,
	)
	if err != nil {
		return sqlitedb.StoreError("update book", err)
	}
	return sqlitedb.RequireAffected(res, "book", book.ID)
}

func (s *SQLiteBookStore) Delete(ctx context.Context, id string) error {
	conn := sqlitedb.Conn(ctx, s.db)
	if _, err := conn.ExecContext(ctx, `DELETE FROM sessions WHERE book_id = ?`, id); err != nil {
		return sqlitedb.StoreError("delete book sessions", err)
	}
	res, err := conn.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return sqlitedb.StoreError("delete book", err)
	}
	return sqlitedb.RequireAffected(res, "book", id)
}

func (s *SQLiteBookStore) List(ctx context.Context) ([]domain.Book, error) {
	rows, err := sqlitedb.Conn(ctx, s.db).QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY created_at, id`)
	if err != nil {
		return nil, sqlitedb.StoreError("list books", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, book)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlitedb.StoreError("iterate books", err)
	}
	return out, nil
}

func (s *SQLiteBookStore) Clear(ctx context.Context) error {
	conn := sqlitedb.Conn(ctx, s.db)
	if _, err := conn.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return sqlitedb.StoreError("clear sessions", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return sqlitedb.StoreError("clear books", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (domain.Book, error) {
	var (
		book                   domain.Book
		tags, priority, status string
		createdAt, updatedAt   string
		lastReadAt             sql.NullString
	)
	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.FilePath,
		&book.TotalPages, &book.CurrentPage, &book.PercentComplete, &book.TotalReadingTime,
		&tags, &priority, &status, &createdAt, &updatedAt, &lastReadAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, err
	}
	if err != nil {
		return domain.Book{}, sqlitedb.StoreError("scan book", err)
	}
	if err := json.Unmarshal([]byte(tags), &book.Tags); err != nil {
		return domain.Book{}, fmt.Errorf("decode tags for %s: %w", book.ID, err)
	}
	book.Priority = domain.Priority(priority)
	book.Status = domain.Status(status)
	if book.CreatedAt, err = sqlitedb.ParseTime(createdAt); err != nil {
		return domain.Book{}, fmt.Errorf("parse created_at for %s: %w", book.ID, err)
	}
	if book.UpdatedAt, err = sqlitedb.ParseTime(updatedAt); err != nil {
		return domain.Book{}, fmt.Errorf("parse updated_at for %s: %w", book.ID, err)
	}
	if book.LastReadAt, err = sqlitedb.ParseNullTime(lastReadAt); err != nil {
		return domain.Book{}, fmt.Errorf("parse last_read_at for %s: %w", book.ID, err)
	}
	return book, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
