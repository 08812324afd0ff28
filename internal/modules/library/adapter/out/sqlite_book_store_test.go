package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libraryout "readenvy/internal/modules/library/adapter/out"
	"readenvy/internal/modules/library/domain"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/sqlitedb"
)

func TestSQLiteBookStoreRoundTrip(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "readenvy.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	store := libraryout.NewSQLiteBookStore(db)
	ctx := context.Background()

	created := time.Date(2026, 2, 3, 4, 5, 6, 7, time.UTC)
	book := domain.Book{
		ID: "b-1", Title: "Dune", Author: "Herbert", FilePath: "/books/dune.pdf",
		TotalPages: 412, Tags: []string{"scifi"}, Priority: domain.PriorityLow, Status: domain.StatusActive,
		CreatedAt: created, UpdatedAt: created,
	}
	require.NoError(t, store.Create(ctx, book))

	got, err := store.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, []string{"scifi"}, got.Tags)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Nil(t, got.LastReadAt)

	read := created.Add(time.Hour)
	got.CurrentPage = 100
	got.PercentComplete = 24
	got.LastReadAt = &read
	got.UpdatedAt = read
	require.NoError(t, store.Update(ctx, got))

	byPath, err := store.FindByPath(ctx, "/books/dune.pdf")
	require.NoError(t, err)
	assert.Equal(t, 100, byPath.CurrentPage)
	require.NotNil(t, byPath.LastReadAt)
	assert.True(t, byPath.LastReadAt.Equal(read))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, domain.Book{ID: "missing", Title: "x", TotalPages: 1}), apperrors.ErrNotFound)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.Clear(ctx))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteBookStoreRejectsNonPositivePages(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "readenvy.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	store := libraryout.NewSQLiteBookStore(db)

	err = store.Create(context.Background(), domain.Book{ID: "b", Title: "x", TotalPages: 0, Priority: "medium", Status: "active"})
	assert.ErrorIs(t, err, apperrors.ErrStoreFailure)
}
