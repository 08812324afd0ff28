package dto

import "time"

type ImportInput struct {
	Path     string
	Title    string
	Author   string
	Tags     []string
	Priority string
}

type ImportOutput struct {
	Book    BookOutput
	Warning string
}

type BrowseInput struct {
	Filter string
	Search string
	Sort   string
}

type BookOutput struct {
	ID               string
	Title            string
	Author           string
	FilePath         string
	TotalPages       int
	CurrentPage      int
	PercentComplete  int
	TotalReadingTime int
	Tags             []string
	Priority         string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastReadAt       *time.Time
}

type SummaryOutput struct {
	Total            int
	Active           int
	Completed        int
	Archived         int
	PagesRead        int
	TotalReadingTime int
}
