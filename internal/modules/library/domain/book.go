package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "readenvy/internal/platform/errors"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusArchived  Status = "archived"
	StatusCompleted Status = "completed"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Book struct {
	ID               string
	Title            string
	Author           string
	FilePath         string
	TotalPages       int
	CurrentPage      int
	PercentComplete  int
	TotalReadingTime int
	Tags             []string
	Priority         Priority
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastReadAt       *time.Time
}

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusArchived, StatusCompleted:
		return nil
	default:
		return fmt.Errorf("%w: unsupported status %q", apperrors.ErrInvalidInput, string(s))
	}
}

// ParsePriority maps an empty value to medium.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, nil
	}
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unsupported priority %q", apperrors.ErrInvalidInput, raw)
	}
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if b.TotalPages <= 0 {
		return fmt.Errorf("%w: total pages must be positive, got %d", apperrors.ErrInvalidInput, b.TotalPages)
	}
	if b.CurrentPage < 0 || b.CurrentPage > b.TotalPages {
		return fmt.Errorf("%w: current page %d outside [0,%d]", apperrors.ErrInvalidInput, b.CurrentPage, b.TotalPages)
	}
	if b.PercentComplete < 0 || b.PercentComplete > 100 {
		return fmt.Errorf("%w: percent complete %d outside [0,100]", apperrors.ErrInvalidInput, b.PercentComplete)
	}
	if b.TotalReadingTime < 0 {
		return fmt.Errorf("%w: reading time must be non-negative", apperrors.ErrInvalidInput)
	}
	if _, err := ParsePriority(string(b.Priority)); err != nil {
		return err
	}
	return b.Status.Validate()
}

// NormalizeTags trims, lowercases and de-duplicates tags, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
