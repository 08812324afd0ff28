package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readenvy/internal/modules/progress/domain"
)

var now = time.Date(2026, 6, 15, 21, 30, 0, 0, time.UTC)

func book(current, total int) domain.BookProgress {
	return domain.BookProgress{ID: "b", TotalPages: total, CurrentPage: current, PercentComplete: domain.Percent(current, total), Status: domain.StatusActive}
}

func TestAdvanceForwardCountsPages(t *testing.T) {
	t.Parallel()
	for prev := 0; prev <= 20; prev += 5 {
		for next := prev; next <= 20; next += 3 {
			got, read := domain.Advance(book(prev, 20), next, 0, now)
			assert.Equal(t, next-prev, read, "prev=%d next=%d", prev, next)
			assert.Equal(t, next, got.CurrentPage)
		}
	}
}

func TestAdvanceBackwardReadsNothingButMovesPage(t *testing.T) {
	t.Parallel()
	got, read := domain.Advance(book(80, 100), 30, 60, now)
	assert.Zero(t, read)
	assert.Equal(t, 30, got.CurrentPage)
	assert.Equal(t, 30, got.PercentComplete)
	assert.Equal(t, 60, got.TotalReadingTime)
	require.NotNil(t, got.LastReadAt)
	assert.True(t, got.LastReadAt.Equal(now))
}

func TestAdvanceExampleScenario(t *testing.T) {
	t.Parallel()
	got, read := domain.Advance(book(0, 200), 50, 300, now)
	assert.Equal(t, 50, read)
	assert.Equal(t, 50, got.CurrentPage)
	assert.Equal(t, 25, got.PercentComplete)
	assert.Equal(t, 300, got.TotalReadingTime)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestCompletionIsOneDirectional(t *testing.T) {
	t.Parallel()
	done, _ := domain.Advance(book(150, 200), 200, 0, now)
	assert.Equal(t, 100, done.PercentComplete)
	assert.Equal(t, domain.StatusCompleted, done.Status)

	back, _ := domain.Advance(done, 10, 0, now)
	assert.Equal(t, 5, back.PercentComplete)
	assert.Equal(t, domain.StatusCompleted, back.Status)

	archived := book(10, 200)
	archived.Status = domain.StatusArchived
	still, _ := domain.Advance(archived, 20, 0, now)
	assert.Equal(t, domain.StatusArchived, still.Status)
}

func TestAdvanceRoundingCompletesAtNinetyNinePointFive(t *testing.T) {
	t.Parallel()
	got, _ := domain.Advance(book(0, 200), 199, 0, now)
	assert.Equal(t, 100, got.PercentComplete)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestPercentClamps(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, domain.Percent(-5, 10))
	assert.Equal(t, 100, domain.Percent(15, 10))
	assert.Equal(t, 33, domain.Percent(1, 3))
	assert.Equal(t, 67, domain.Percent(2, 3))
	assert.Equal(t, 0, domain.Percent(5, 0))
}

func TestResetClearsProgress(t *testing.T) {
	t.Parallel()
	done, _ := domain.Advance(book(0, 10), 10, 90, now)
	reset := domain.Reset(done, now.Add(time.Hour))
	assert.Equal(t, 0, reset.CurrentPage)
	assert.Equal(t, 0, reset.PercentComplete)
	assert.Equal(t, 0, reset.TotalReadingTime)
	assert.Equal(t, domain.StatusActive, reset.Status)
	assert.Nil(t, reset.LastReadAt)
}

func TestNewSessionUsesCalendarDayOfNow(t *testing.T) {
	t.Parallel()
	tokyo := time.FixedZone("JST", 9*3600)
	s := domain.NewSession("s", "b", 3, 10, 45, now.In(tokyo))
	assert.Equal(t, 7, s.PagesRead)
	assert.Equal(t, "2026-06-16", s.Date)
	assert.Equal(t, 45, s.Duration)
}

func TestWeeklyStats(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{
		{BookID: "a", PagesRead: 10, Duration: 60, Date: "2026-06-15"},
		{BookID: "a", PagesRead: 5, Duration: 30, Date: "2026-06-15"},
		{BookID: "b", PagesRead: 7, Duration: 20, Date: "2026-06-09"},
		{BookID: "c", PagesRead: 99, Duration: 99, Date: "2026-06-08"},
		{BookID: "c", PagesRead: 99, Duration: 99, Date: "2026-06-16"},
	}
	stats, err := domain.Weekly(sessions, "2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-09", stats.Start)
	assert.Equal(t, 22, stats.PagesRead)
	assert.Equal(t, 110, stats.TimeSpent)
	assert.Equal(t, 2, stats.BooksOpened)
	assert.Equal(t, 3, stats.SessionsCount)
	require.Len(t, stats.Daily, 7)
	assert.Equal(t, domain.DailyPages{Date: "2026-06-09", Pages: 7}, stats.Daily[0])
	assert.Equal(t, domain.DailyPages{Date: "2026-06-15", Pages: 15}, stats.Daily[6])

	_, err = domain.Weekly(nil, "June 15")
	assert.Error(t, err)
}
