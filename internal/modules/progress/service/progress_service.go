package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"readenvy/internal/modules/progress/domain"
	progressout "readenvy/internal/modules/progress/port/out"
	"readenvy/internal/platform/clock"
	apperrors "readenvy/internal/platform/errors"
	"readenvy/internal/platform/id"
	"readenvy/internal/platform/lock"
	"readenvy/internal/platform/tx"
)

type ProgressService struct {
	clock    clock.Clock
	idGen    id.Generator
	books    progressout.BookStore
	sessions progressout.SessionStore
	tx       tx.Manager
	locks    *lock.Keyed
	log      hclog.Logger
}

func NewProgressService(
	clock clock.Clock,
	idGen id.Generator,
	books progressout.BookStore,
	sessions progressout.SessionStore,
	txm tx.Manager,
	logger hclog.Logger,
) *ProgressService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ProgressService{
		clock:    clock,
		idGen:    idGen,
		books:    books,
		sessions: sessions,
		tx:       txm,
		locks:    lock.NewKeyed(),
		log:      logger.Named("progress"),
	}
}

// RecordProgress moves a book to newPage and logs a session when pages were
// read. The book update and the session insert commit together. Calls for
// the same book are serialized so the previous page is always read fresh.
func (s *ProgressService) RecordProgress(ctx context.Context, bookID string, newPage, durationSeconds int) (domain.BookProgress, *domain.Session, error) {
	if strings.TrimSpace(bookID) == "" {
		return domain.BookProgress{}, nil, fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	if durationSeconds < 0 {
		return domain.BookProgress{}, nil, fmt.Errorf("%w: duration must be non-negative, got %d", apperrors.ErrInvalidInput, durationSeconds)
	}
	unlock := s.locks.Lock(bookID)
	defer unlock()

	var (
		updated domain.BookProgress
		session *domain.Session
	)
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		book, err := s.books.Get(ctx, bookID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		next, pagesRead := domain.Advance(book, newPage, durationSeconds, now)
		if err := s.books.SaveProgress(ctx, next); err != nil {
			return err
		}
		if pagesRead > 0 {
			created := domain.NewSession(s.idGen.New(), bookID, book.CurrentPage, newPage, durationSeconds, now)
			if err := s.sessions.Add(ctx, created); err != nil {
				return err
			}
			session = &created
		}
		updated = next
		return nil
	})
	if err != nil {
		return domain.BookProgress{}, nil, err
	}
	if session != nil {
		s.log.Debug("session recorded", "book", bookID, "from", session.StartPage, "to", session.EndPage, "date", session.Date)
	}
	if updated.Status == domain.StatusCompleted {
		s.log.Debug("book completed", "book", bookID)
	}
	return updated, session, nil
}

// ResetProgress clears a book's reading state. Its sessions are kept.
func (s *ProgressService) ResetProgress(ctx context.Context, bookID string) (domain.BookProgress, error) {
	unlock := s.locks.Lock(bookID)
	defer unlock()

	var out domain.BookProgress
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		book, err := s.books.Get(ctx, bookID)
		if err != nil {
			return err
		}
		out = domain.Reset(book, s.clock.Now())
		return s.books.SaveProgress(ctx, out)
	})
	if err != nil {
		return domain.BookProgress{}, err
	}
	s.log.Info("progress reset", "book", bookID)
	return out, nil
}

// ResetAllProgress resets every book and deletes every session.
func (s *ProgressService) ResetAllProgress(ctx context.Context) error {
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		if err := s.books.ResetAll(ctx, s.clock.Now()); err != nil {
			return err
		}
		return s.sessions.Clear(ctx)
	})
	if err != nil {
		return err
	}
	s.log.Warn("all progress reset")
	return nil
}

func (s *ProgressService) ListSessions(ctx context.Context, bookID string) ([]domain.Session, error) {
	if _, err := s.books.Get(ctx, bookID); err != nil {
		return nil, err
	}
	return s.sessions.ByBook(ctx, bookID)
}

func (s *ProgressService) SessionsBetween(ctx context.Context, start, end string) ([]domain.Session, error) {
	startDay, err := parseDay(start)
	if err != nil {
		return nil, err
	}
	endDay, err := parseDay(end)
	if err != nil {
		return nil, err
	}
	if endDay.Before(startDay) {
		return nil, fmt.Errorf("%w: range end %s is before start %s", apperrors.ErrInvalidInput, end, start)
	}
	return s.sessions.ByDateRange(ctx, start, end)
}

func (s *ProgressService) WeeklyStats(ctx context.Context, endDay string) (domain.WeeklyStats, error) {
	if endDay == "" {
		endDay = clock.Day(s.clock.Now())
	}
	if _, err := parseDay(endDay); err != nil {
		return domain.WeeklyStats{}, err
	}
	start, err := clock.AddDays(endDay, -(domain.WeekDays - 1))
	if err != nil {
		return domain.WeeklyStats{}, err
	}
	sessions, err := s.sessions.ByDateRange(ctx, start, endDay)
	if err != nil {
		return domain.WeeklyStats{}, err
	}
	return domain.Weekly(sessions, endDay)
}

func parseDay(day string) (time.Time, error) {
	t, err := time.Parse(clock.DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, day)
	}
	return t, nil
}
