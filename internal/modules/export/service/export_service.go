package service

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"readenvy/internal/modules/export/domain"
	exportout "readenvy/internal/modules/export/port/out"
	"readenvy/internal/platform/clock"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/markdown"
	"readenvy/internal/platform/slug"
)

const (
	booksDir      = "books"
	dashboardFile = "dashboard.md"
)

type Note struct {
	BookID string
	Path   string
}

type Result struct {
	Dir       string
	Books     []Note
	Dashboard string
}

type ExportService struct {
	clock    clock.Clock
	books    exportout.BookSource
	sessions exportout.SessionSource
	stats    exportout.StatsSource
	goals    exportout.GoalSource
	notes    exportout.NoteStore
	log      hclog.Logger
}

func NewExportService(
	clock clock.Clock,
	books exportout.BookSource,
	sessions exportout.SessionSource,
	stats exportout.StatsSource,
	goals exportout.GoalSource,
	notes exportout.NoteStore,
	logger hclog.Logger,
) *ExportService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExportService{
		clock:    clock,
		books:    books,
		sessions: sessions,
		stats:    stats,
		goals:    goals,
		notes:    notes,
		log:      logger.Named("export"),
	}
}

// ExportVault writes one note per book plus a dashboard under dir. Text
// outside the generated blocks and unknown frontmatter keys survive re-export.
func (s *ExportService) ExportVault(ctx context.Context, dir string) (Result, error) {
	if strings.TrimSpace(dir) == "" {
		return Result{}, fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Result{}, fmt.Errorf("resolve export directory: %w", err)
	}

	books, err := s.books.ListBooks(ctx)
	if err != nil {
		return Result{}, err
	}
	// Oldest first keeps slug suffixes stable as books are added.
	slices.SortStableFunc(books, func(a, b domain.Book) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	result := Result{Dir: dir, Books: make([]Note, 0, len(books))}
	names := slug.NewRegistry()
	var reading []domain.Link
	for _, book := range books {
		name := names.Claim(book.Title)
		path := filepath.Join(dir, booksDir, name+".md")
		if err := s.writeBook(ctx, path, book); err != nil {
			return Result{}, err
		}
		result.Books = append(result.Books, Note{BookID: book.ID, Path: path})
		if book.Status == "active" && book.CurrentPage > 0 {
			reading = append(reading, domain.Link{Slug: name, Title: book.Title, Percent: book.Percent, Status: book.Status})
		}
	}

	result.Dashboard = filepath.Join(dir, dashboardFile)
	if err := s.writeDashboard(ctx, result.Dashboard, reading); err != nil {
		return Result{}, err
	}
	s.log.Info("vault exported", "dir", dir, "books", len(result.Books))
	return result, nil
}

func (s *ExportService) writeBook(ctx context.Context, path string, book domain.Book) error {
	sessions, err := s.sessions.Sessions(ctx, book.ID)
	if err != nil {
		return err
	}
	return s.merge(ctx, path, domain.BookFields(book), domain.NewBookBody(book),
		domain.SessionsBlock, domain.SessionsMarkdown(sessions))
}

func (s *ExportService) writeDashboard(ctx context.Context, path string, reading []domain.Link) error {
	goals, err := s.goals.Status(ctx)
	if err != nil {
		return err
	}
	weekly, err := s.stats.Weekly(ctx)
	if err != nil {
		return err
	}
	return s.merge(ctx, path, domain.DashboardFields(goals, s.clock.Now()), "# Reading dashboard\n",
		domain.DashboardBlock, domain.DashboardMarkdown(goals, weekly, reading))
}

func (s *ExportService) merge(ctx context.Context, path string, fields []markdown.Field, freshBody string, block markdown.Block, generated string) error {
	existing, err := s.notes.Read(ctx, path)
	if err != nil {
		return err
	}
	meta, body := map[string]any{}, freshBody
	if existing != "" {
		meta, body, err = markdown.Split(existing)
		if err != nil {
			return fmt.Errorf("note %s: %w", path, err)
		}
	}
	content, err := markdown.Render(fields, meta, block.Replace(body, generated))
	if err != nil {
		return fmt.Errorf("note %s: %w", path, err)
	}
	return s.notes.Write(ctx, path, content)
}
