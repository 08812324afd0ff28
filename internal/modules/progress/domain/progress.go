package domain

import (
	"math"
	"time"

	"readenvy/internal/platform/clock"
)

const (
	StatusActive    = "active"
	StatusArchived  = "archived"
	StatusCompleted = "completed"
)

// BookProgress is the slice of a book the progress engine reads and writes.
type BookProgress struct {
	ID               string
	Title            string
	TotalPages       int
	CurrentPage      int
	PercentComplete  int
	TotalReadingTime int
	Status           string
	UpdatedAt        time.Time
	LastReadAt       *time.Time
}

// Session is an immutable record of forward progress on one book.
type Session struct {
	ID        string
	BookID    string
	StartPage int
	EndPage   int
	PagesRead int
	Duration  int
	Date      string
	CreatedAt time.Time
}

// Percent is round(page/total*100) clamped to [0,100].
func Percent(page, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(page) / float64(total) * 100))
	return min(100, max(0, pct))
}

// PagesRead counts forward movement only; going back reads zero pages.
func PagesRead(previous, next int) int {
	return max(0, next-previous)
}

// Advance applies a page change to b. Status only ever moves forward to
// completed; a completed book stays completed if the page later drops.
func Advance(b BookProgress, newPage, durationSeconds int, now time.Time) (BookProgress, int) {
	read := PagesRead(b.CurrentPage, newPage)
	b.CurrentPage = newPage
	b.PercentComplete = Percent(newPage, b.TotalPages)
	b.TotalReadingTime += durationSeconds
	if b.PercentComplete >= 100 {
		b.Status = StatusCompleted
	}
	b.LastReadAt = &now
	b.UpdatedAt = now
	return b, read
}

// Reset returns b to an unread, active state.
func Reset(b BookProgress, now time.Time) BookProgress {
	b.CurrentPage = 0
	b.PercentComplete = 0
	b.TotalReadingTime = 0
	b.Status = StatusActive
	b.LastReadAt = nil
	b.UpdatedAt = now
	return b
}

// NewSession builds the session for a forward move from start to end, dated
// by the calendar day of now in now's location.
func NewSession(id, bookID string, start, end, durationSeconds int, now time.Time) Session {
	return Session{
		ID:        id,
		BookID:    bookID,
		StartPage: start,
		EndPage:   end,
		PagesRead: PagesRead(start, end),
		Duration:  durationSeconds,
		Date:      clock.Day(now),
		CreatedAt: now,
	}
}
