package dto

import "time"

type RecordInput struct {
	BookID          string
	Page            int
	DurationSeconds int
}

type BookProgressOutput struct {
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

type SessionOutput struct {
	ID        string
	BookID    string
	StartPage int
	EndPage   int
	PagesRead int
	Duration  int
	Date      string
	CreatedAt time.Time
}

type RecordOutput struct {
	Book BookProgressOutput
	// Session is nil when the call did not advance the page.
	Session *SessionOutput
}

type RangeInput struct {
	Start string
	End   string
}

type DailyPagesOutput struct {
	Date  string
	Pages int
}

type WeeklyStatsOutput struct {
	Start         string
	End           string
	PagesRead     int
	TimeSpent     int
	BooksOpened   int
	SessionsCount int
	Daily         []DailyPagesOutput
}
