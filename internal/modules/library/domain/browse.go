package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "readenvy/internal/platform/errors"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterArchived  Filter = "archived"
)

type SortKey string

const (
	SortLastRead  SortKey = "last_read"
	SortTitle     SortKey = "title"
	SortProgress  SortKey = "progress"
	SortDateAdded SortKey = "date_added"
)

type Query struct {
	Filter Filter
	Search string
	Sort   SortKey
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted, FilterArchived:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unsupported filter %q", apperrors.ErrInvalidInput, raw)
	}
}

func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case "":
		return SortLastRead, nil
	case SortLastRead, SortTitle, SortProgress, SortDateAdded:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unsupported sort key %q", apperrors.ErrInvalidInput, raw)
	}
}

// Browse filters and sorts books for display. The input slice is not modified.
func Browse(books []Book, q Query) []Book {
	search := strings.ToLower(q.Search)
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if !matchesFilter(b, q.Filter) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(b.Title), search) && !strings.Contains(strings.ToLower(b.Author), search) {
			continue
		}
		out = append(out, b)
	}

	switch q.Sort {
	case SortTitle:
		coll := collate.New(language.Und, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b Book) int {
			return coll.CompareString(a.Title, b.Title)
		})
	case SortProgress:
		slices.SortStableFunc(out, func(a, b Book) int {
			return b.PercentComplete - a.PercentComplete
		})
	case SortDateAdded:
		slices.SortStableFunc(out, func(a, b Book) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	default:
		slices.SortStableFunc(out, compareLastRead)
	}
	return out
}

func matchesFilter(b Book, f Filter) bool {
	switch f {
	case FilterActive:
		return b.Status == StatusActive
	case FilterCompleted:
		return b.Status == StatusCompleted
	case FilterArchived:
		return b.Status == StatusArchived
	default:
		return true
	}
}

// compareLastRead puts the most recently read first and never-read books last.
func compareLastRead(a, b Book) int {
	switch {
	case a.LastReadAt == nil && b.LastReadAt == nil:
		return strings.Compare(isoKey(b.CreatedAt), isoKey(a.CreatedAt))
	case a.LastReadAt == nil:
		return 1
	case b.LastReadAt == nil:
		return -1
	}
	return strings.Compare(isoKey(*b.LastReadAt), isoKey(*a.LastReadAt))
}

func isoKey(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

// LastRead returns the active book read most recently.
func LastRead(books []Book) (Book, bool) {
	var (
		best  Book
		found bool
	)
	for _, b := range books {
		if b.Status != StatusActive || b.LastReadAt == nil {
			continue
		}
		if !found || b.LastReadAt.After(*best.LastReadAt) {
			best = b
			found = true
		}
	}
	return best, found
}

type Summary struct {
	Total            int
	Active           int
	Completed        int
	Archived         int
	PagesRead        int
	TotalReadingTime int
}

func Summarize(books []Book) Summary {
	s := Summary{Total: len(books)}
	for _, b := range books {
		switch b.Status {
		case StatusActive:
			s.Active++
		case StatusCompleted:
			s.Completed++
		case StatusArchived:
			s.Archived++
		}
		s.PagesRead += b.CurrentPage
		s.TotalReadingTime += b.TotalReadingTime
	}
	return s
}
