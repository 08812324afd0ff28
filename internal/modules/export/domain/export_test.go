package domain_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"readenvy/internal/modules/export/domain"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0s", domain.FormatDuration(0))
	assert.Equal(t, "0s", domain.FormatDuration(-5))
	assert.Equal(t, "40s", domain.FormatDuration(40))
	assert.Equal(t, "12m", domain.FormatDuration(12*60+30))
	assert.Equal(t, "1h 05m", domain.FormatDuration(3900))
	assert.Equal(t, "26h 00m", domain.FormatDuration(26*3600))
}

func TestSessionsMarkdownKeepsRecentOnly(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	var sessions []domain.Session
	for i := 0; i < domain.RecentSessions+5; i++ {
		sessions = append(sessions, domain.Session{
			Date:      base.AddDate(0, 0, i).Format(time.DateOnly),
			StartPage: i, EndPage: i + 1, PagesRead: 1,
			CreatedAt: base.AddDate(0, 0, i),
		})
	}
	got := domain.SessionsMarkdown(sessions)
	assert.True(t, strings.HasPrefix(got, fmt.Sprintf("## Reading sessions (latest %d of %d)", domain.RecentSessions, len(sessions))))
	assert.Contains(t, got, "2026-01-25")
	assert.NotContains(t, got, "| 2026-01-05 |")
	assert.Equal(t, domain.RecentSessions+2, strings.Count(got, "\n|"), "header, separator and rows")
}

func TestBookFieldsOmitEmptyOptionalKeys(t *testing.T) {
	t.Parallel()
	fields := domain.BookFields(domain.Book{ID: "b1", Title: "T", CreatedAt: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)})
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"id", "title", "status", "priority", "tags", "pages", "current_page", "percent", "reading_time", "added", "file"}, keys)
}
