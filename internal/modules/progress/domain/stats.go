package domain

import (
	"readenvy/internal/platform/clock"
)

const WeekDays = 7

type DailyPages struct {
	Date  string
	Pages int
}

type WeeklyStats struct {
	Start         string
	End           string
	PagesRead     int
	TimeSpent     int
	BooksOpened   int
	SessionsCount int
	Daily         []DailyPages
}

// Weekly summarizes sessions over the seven days ending at end (inclusive).
// Sessions outside the window are ignored.
func Weekly(sessions []Session, end string) (WeeklyStats, error) {
	start, err := clock.AddDays(end, -(WeekDays - 1))
	if err != nil {
		return WeeklyStats{}, err
	}
	stats := WeeklyStats{Start: start, End: end, Daily: make([]DailyPages, 0, WeekDays)}
	index := make(map[string]int, WeekDays)
	for i := 0; i < WeekDays; i++ {
		day, err := clock.AddDays(start, i)
		if err != nil {
			return WeeklyStats{}, err
		}
		index[day] = i
		stats.Daily = append(stats.Daily, DailyPages{Date: day})
	}

	books := map[string]struct{}{}
	for _, s := range sessions {
		i, ok := index[s.Date]
		if !ok {
			continue
		}
		stats.Daily[i].Pages += s.PagesRead
		stats.PagesRead += s.PagesRead
		stats.TimeSpent += s.Duration
		stats.SessionsCount++
		books[s.BookID] = struct{}{}
	}
	stats.BooksOpened = len(books)
	return stats, nil
}
