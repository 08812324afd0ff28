package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exportoutadapter "readenvy/internal/modules/export/adapter/out"
	"readenvy/internal/modules/export/domain"
	"readenvy/internal/modules/export/dto"
	exportin "readenvy/internal/modules/export/port/in"
	"readenvy/internal/modules/export/service"
	"readenvy/internal/modules/export/usecase"
	"readenvy/internal/platform/clock"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/markdown"
)

var exportedAt = time.Date(2026, 4, 10, 21, 0, 0, 0, time.UTC)

type fakeBooks struct{ books []domain.Book }

func (f fakeBooks) ListBooks(context.Context) ([]domain.Book, error) {
	return append([]domain.Book(nil), f.books...), nil
}

type fakeProgress struct {
	sessions map[string][]domain.Session
	weekly   domain.Weekly
}

func (f fakeProgress) Sessions(_ context.Context, bookID string) ([]domain.Session, error) {
	return f.sessions[bookID], nil
}

func (f fakeProgress) Weekly(context.Context) (domain.Weekly, error) { return f.weekly, nil }

type fakeGoals struct{ status domain.GoalStatus }

func (f fakeGoals) Status(context.Context) (domain.GoalStatus, error) { return f.status, nil }

func newExporter() exportin.Usecase {
	lastRead := exportedAt.Add(-time.Hour)
	books := fakeBooks{books: []domain.Book{
		{ID: "b2", Title: "Dune", Status: "completed", Priority: "high", TotalPages: 10, CurrentPage: 10, Percent: 100, CreatedAt: exportedAt.Add(-48 * time.Hour)},
		{ID: "b1", Title: "Dune", Author: "Frank Herbert", Status: "active", Priority: "medium", Tags: []string{"sf"}, TotalPages: 400, CurrentPage: 50, Percent: 13, ReadingSeconds: 3900, CreatedAt: exportedAt.Add(-72 * time.Hour), LastReadAt: &lastRead},
	}}
	progress := fakeProgress{
		sessions: map[string][]domain.Session{
			"b1": {
				{Date: "2026-04-09", StartPage: 0, EndPage: 30, PagesRead: 30, Duration: 1800, CreatedAt: exportedAt.Add(-26 * time.Hour)},
				{Date: "2026-04-10", StartPage: 30, EndPage: 50, PagesRead: 20, Duration: 2100, CreatedAt: exportedAt.Add(-time.Hour)},
			},
		},
		weekly: domain.Weekly{Start: "2026-04-04", End: "2026-04-10", PagesRead: 50, TimeSpent: 3900, BooksOpened: 1, SessionsCount: 2,
			Daily: []domain.DailyPages{{Date: "2026-04-09", Pages: 30}, {Date: "2026-04-10", Pages: 20}}},
	}
	goals := fakeGoals{status: domain.GoalStatus{DailyGoal: 20, TodayPages: 20, DailyProgress: 100, GoalMet: true, CurrentStreak: 2, LongestStreak: 5}}
	return usecase.NewInteractor(service.NewExportService(
		clock.Fixed{At: exportedAt}, books, progress, progress, goals, exportoutadapter.NewFSNoteStore(), nil,
	))
}

func readNote(t *testing.T, path string) (map[string]any, string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	meta, body, err := markdown.Split(string(raw))
	require.NoError(t, err)
	return meta, body
}

func TestExportVaultWritesBooksAndDashboard(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out, err := newExporter().ExportVault(context.Background(), dto.ExportInput{Dir: dir})
	require.NoError(t, err)

	require.Len(t, out.Books, 2)
	assert.Equal(t, dto.NoteOutput{BookID: "b1", Path: filepath.Join(dir, "books", "dune.md")}, out.Books[0])
	assert.Equal(t, dto.NoteOutput{BookID: "b2", Path: filepath.Join(dir, "books", "dune-2.md")}, out.Books[1])
	assert.Equal(t, filepath.Join(dir, "dashboard.md"), out.Dashboard)

	meta, body := readNote(t, out.Books[0].Path)
	assert.Equal(t, "b1", meta["id"])
	assert.Equal(t, "Frank Herbert", meta["author"])
	assert.Equal(t, 13, meta["percent"])
	assert.Equal(t, "1h 05m", meta["reading_time"])
	assert.Equal(t, []any{"sf"}, meta["tags"])
	assert.Contains(t, body, "# Dune")
	assert.Contains(t, body, "| 2026-04-10 | 30 → 50 | 20 | 35m |")
	assert.Less(t, strings.Index(body, "2026-04-10"), strings.Index(body, "2026-04-09"), "newest session first")

	_, body = readNote(t, out.Books[1].Path)
	assert.Contains(t, body, "No reading sessions yet.")

	meta, body = readNote(t, out.Dashboard)
	assert.Equal(t, "dashboard", meta["type"])
	assert.Equal(t, 2, meta["current_streak"])
	assert.Contains(t, body, "- Pages read: 20 / 20 (100%)")
	assert.Contains(t, body, "- Streak: 2 days (longest 5 days)")
	assert.Contains(t, body, "- [[books/dune|Dune]] 13%")
	assert.NotContains(t, body, "dune-2")
}

func TestExportVaultPreservesUserEdits(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	uc := newExporter()
	ctx := context.Background()

	out, err := uc.ExportVault(ctx, dto.ExportInput{Dir: dir})
	require.NoError(t, err)
	path := out.Books[0].Path

	meta, body := readNote(t, path)
	meta["rating"] = 4
	meta["percent"] = 99
	edited, err := markdown.Render(nil, meta, body+"\nMy thoughts on Arrakis.\n")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = uc.ExportVault(ctx, dto.ExportInput{Dir: dir})
	require.NoError(t, err)

	meta, body = readNote(t, path)
	assert.Equal(t, 4, meta["rating"])
	assert.Equal(t, 13, meta["percent"], "generated fields are refreshed")
	assert.Contains(t, body, "My thoughts on Arrakis.")
	assert.Equal(t, 1, strings.Count(body, "readenvy:sessions:start"))
}

func TestExportVaultRequiresDir(t *testing.T) {
	t.Parallel()
	_, err := newExporter().ExportVault(context.Background(), dto.ExportInput{Dir: "  "})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
