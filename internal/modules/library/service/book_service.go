package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"readenvy/internal/modules/library/domain"
	libraryout "readenvy/internal/modules/library/port/out"
	"readenvy/internal/platform/clock"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/id"
	"readenvy/internal/platform/tx"
)

type BookService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     libraryout.BookStore
	inspector libraryout.FileInspector
	purger    libraryout.DataPurger
	tx        tx.Manager
	limits    domain.ImportLimits
	log       hclog.Logger
}

func NewBookService(
	clock clock.Clock,
	idGen id.Generator,
	store libraryout.BookStore,
	inspector libraryout.FileInspector,
	purger libraryout.DataPurger,
	txm tx.Manager,
	limits domain.ImportLimits,
	logger hclog.Logger,
) *BookService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &BookService{
		clock:     clock,
		idGen:     idGen,
		store:     store,
		inspector: inspector,
		purger:    purger,
		tx:        txm,
		limits:    limits,
		log:       logger.Named("library"),
	}
}

// Import validates a file and persists it as a new active book. The returned
// string is a non-fatal warning for the caller to surface.
func (s *BookService) Import(ctx context.Context, path, title, author string, tags []string, priority string) (domain.Book, string, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Book{}, "", fmt.Errorf("%w: file path is required", apperrors.ErrInvalidInput)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Book{}, "", fmt.Errorf("%w: resolve %s: %v", apperrors.ErrImportRejected, path, err)
	}
	prio, err := domain.ParsePriority(priority)
	if err != nil {
		return domain.Book{}, "", err
	}

	facts, err := s.inspector.Inspect(ctx, abs)
	if err != nil {
		return domain.Book{}, "", err
	}
	warning, err := domain.CheckImport(facts, s.limits)
	if err != nil {
		s.log.Warn("import rejected", "path", abs, "error", err)
		return domain.Book{}, "", err
	}

	if existing, err := s.store.FindByPath(ctx, abs); err == nil {
		return domain.Book{}, "", fmt.Errorf("%w: %s is already in the library as %q", apperrors.ErrImportRejected, filepath.Base(abs), existing.Title)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Book{}, "", err
	}

	title = firstNonEmpty(title, facts.Title, domain.DefaultTitle(abs))
	now := s.clock.Now()
	book := domain.Book{
		ID:         s.idGen.New(),
		Title:      title,
		Author:     firstNonEmpty(author, facts.Author),
		FilePath:   abs,
		TotalPages: facts.PageCount,
		Tags:       domain.NormalizeTags(tags),
		Priority:   prio,
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := book.Validate(); err != nil {
		return domain.Book{}, "", err
	}
	if err := s.store.Create(ctx, book); err != nil {
		return domain.Book{}, "", err
	}
	s.log.Info("book imported", "id", book.ID, "title", book.Title, "pages", book.TotalPages)
	return book, warning, nil
}

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.store.List(ctx)
}

func (s *BookService) Browse(ctx context.Context, q domain.Query) ([]domain.Book, error) {
	books, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Browse(books, q), nil
}

func (s *BookService) Get(ctx context.Context, bookID string) (domain.Book, error) {
	return s.store.Get(ctx, bookID)
}

func (s *BookService) Archive(ctx context.Context, bookID string) (domain.Book, error) {
	return s.setStatus(ctx, bookID, func(domain.Book) domain.Status { return domain.StatusArchived })
}

// Restore brings an archived book back, as completed when it was finished.
func (s *BookService) Restore(ctx context.Context, bookID string) (domain.Book, error) {
	return s.setStatus(ctx, bookID, func(b domain.Book) domain.Status {
		if b.Status != domain.StatusArchived {
			return b.Status
		}
		if b.PercentComplete >= 100 {
			return domain.StatusCompleted
		}
		return domain.StatusActive
	})
}

func (s *BookService) setStatus(ctx context.Context, bookID string, next func(domain.Book) domain.Status) (domain.Book, error) {
	return tx.Value(ctx, s.tx, func(ctx context.Context) (domain.Book, error) {
		book, err := s.store.Get(ctx, bookID)
		if err != nil {
			return domain.Book{}, err
		}
		status := next(book)
		if status == book.Status {
			return book, nil
		}
		book.Status = status
		book.UpdatedAt = s.clock.Now()
		if err := s.store.Update(ctx, book); err != nil {
			return domain.Book{}, err
		}
		return book, nil
	})
}

func (s *BookService) Remove(ctx context.Context, bookID string) error {
	if err := s.tx.Within(ctx, func(ctx context.Context) error {
		return s.store.Delete(ctx, bookID)
	}); err != nil {
		return err
	}
	s.log.Info("book removed", "id", bookID)
	return nil
}

// ClearLibrary deletes every book and session, then the goal and streak state.
func (s *BookService) ClearLibrary(ctx context.Context) error {
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.store.Clear(ctx); err != nil {
			return err
		}
		if s.purger == nil {
			return nil
		}
		return s.purger.PurgeAll(ctx)
	})
	if err != nil {
		return err
	}
	s.log.Warn("library cleared")
	return nil
}

func (s *BookService) LastRead(ctx context.Context) (domain.Book, bool, error) {
	books, err := s.store.List(ctx)
	if err != nil {
		return domain.Book{}, false, err
	}
	book, ok := domain.LastRead(books)
	return book, ok, nil
}

func (s *BookService) Summary(ctx context.Context) (domain.Summary, error) {
	books, err := s.store.List(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(books), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
