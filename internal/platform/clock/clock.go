package clock

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day key used by sessions and streaks.
const DayLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in Location, or local time when Location is nil.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// Day formats t as a calendar day in t's own location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// AddDays shifts a calendar day by n days.
func AddDays(day string, n int) (string, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", day, err)
	}
	return t.AddDate(0, 0, n).Format(DayLayout), nil
}

// LoadLocation resolves a timezone name; "" and "Local" mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
