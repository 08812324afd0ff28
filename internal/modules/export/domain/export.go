package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"readenvy/internal/platform/markdown"
)

// RecentSessions bounds the session table written into each book note.
const RecentSessions = 20

var (
	SessionsBlock  = markdown.Block{Name: "sessions"}
	DashboardBlock = markdown.Block{Name: "dashboard"}
)

type Book struct {
	ID             string
	Title          string
	Author         string
	FilePath       string
	Status         string
	Priority       string
	Tags           []string
	TotalPages     int
	CurrentPage    int
	Percent        int
	ReadingSeconds int
	CreatedAt      time.Time
	LastReadAt     *time.Time
}

type Session struct {
	Date      string
	StartPage int
	EndPage   int
	PagesRead int
	Duration  int
	CreatedAt time.Time
}

type DailyPages struct {
	Date  string
	Pages int
}

type Weekly struct {
	Start         string
	End           string
	PagesRead     int
	TimeSpent     int
	BooksOpened   int
	SessionsCount int
	Daily         []DailyPages
}

type GoalStatus struct {
	DailyGoal      int
	TodayPages     int
	DailyProgress  int
	GoalMet        bool
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate string
}

// Link is how the dashboard refers to an exported book note.
type Link struct {
	Slug    string
	Title   string
	Percent int
	Status  string
}

func BookFields(b Book) []markdown.Field {
	fields := []markdown.Field{
		{Key: "id", Value: b.ID},
		{Key: "title", Value: b.Title},
	}
	if b.Author != "" {
		fields = append(fields, markdown.Field{Key: "author", Value: b.Author})
	}
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	fields = append(fields,
		markdown.Field{Key: "status", Value: b.Status},
		markdown.Field{Key: "priority", Value: b.Priority},
		markdown.Field{Key: "tags", Value: tags},
		markdown.Field{Key: "pages", Value: b.TotalPages},
		markdown.Field{Key: "current_page", Value: b.CurrentPage},
		markdown.Field{Key: "percent", Value: b.Percent},
		markdown.Field{Key: "reading_time", Value: FormatDuration(b.ReadingSeconds)},
		markdown.Field{Key: "added", Value: b.CreatedAt.Format(time.DateOnly)},
	)
	if b.LastReadAt != nil {
		fields = append(fields, markdown.Field{Key: "last_read", Value: b.LastReadAt.Format(time.RFC3339)})
	}
	fields = append(fields, markdown.Field{Key: "file", Value: b.FilePath})
	return fields
}

// NewBookBody is the body of a note that did not exist before.
func NewBookBody(b Book) string {
	heading := "# " + b.Title + "\n"
	if b.Author != "" {
		heading += "\n_" + b.Author + "_\n"
	}
	return heading
}

// SessionsMarkdown lists the most recent sessions, newest first.
func SessionsMarkdown(sessions []Session) string {
	if len(sessions) == 0 {
		return "## Reading sessions\n\nNo reading sessions yet."
	}
	sorted := slices.Clone(sessions)
	slices.SortStableFunc(sorted, func(a, b Session) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(sorted) > RecentSessions {
		sorted = sorted[:RecentSessions]
	}
	rows := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, []string{
			s.Date,
			fmt.Sprintf("%d → %d", s.StartPage, s.EndPage),
			strconv.Itoa(s.PagesRead),
			FormatDuration(s.Duration),
		})
	}
	title := "## Reading sessions"
	if len(sessions) > RecentSessions {
		title = fmt.Sprintf("## Reading sessions (latest %d of %d)", RecentSessions, len(sessions))
	}
	return title + "\n\n" + strings.TrimRight(markdown.Table([]string{"Date", "Pages", "Read", "Time"}, rows), "\n")
}

func DashboardFields(g GoalStatus, exportedAt time.Time) []markdown.Field {
	return []markdown.Field{
		{Key: "type", Value: "dashboard"},
		{Key: "exported_at", Value: exportedAt.Format(time.RFC3339)},
		{Key: "daily_goal", Value: g.DailyGoal},
		{Key: "current_streak", Value: g.CurrentStreak},
		{Key: "longest_streak", Value: g.LongestStreak},
	}
}

func DashboardMarkdown(g GoalStatus, w Weekly, reading []Link) string {
	var b strings.Builder
	b.WriteString("## Today\n\n")
	fmt.Fprintf(&b, "- Pages read: %s / %s (%d%%)\n", humanize.Comma(int64(g.TodayPages)), humanize.Comma(int64(g.DailyGoal)), g.DailyProgress)
	if g.GoalMet {
		b.WriteString("- Daily goal met\n")
	}
	fmt.Fprintf(&b, "- Streak: %s (longest %s)\n", days(g.CurrentStreak), days(g.LongestStreak))

	fmt.Fprintf(&b, "\n## Last 7 days (%s to %s)\n\n", w.Start, w.End)
	rows := make([][]string, 0, len(w.Daily))
	for _, d := range w.Daily {
		rows = append(rows, []string{d.Date, strconv.Itoa(d.Pages)})
	}
	b.WriteString(markdown.Table([]string{"Date", "Pages"}, rows))
	fmt.Fprintf(&b, "\n%s pages in %s across %d sessions and %d books.\n",
		humanize.Comma(int64(w.PagesRead)), FormatDuration(w.TimeSpent), w.SessionsCount, w.BooksOpened)

	b.WriteString("\n## Currently reading\n\n")
	if len(reading) == 0 {
		b.WriteString("Nothing in progress.\n")
	}
	for _, l := range reading {
		fmt.Fprintf(&b, "- [[books/%s|%s]] %d%%\n", l.Slug, strings.ReplaceAll(l.Title, "|", "-"), l.Percent)
	}
	return b.String()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

// FormatDuration renders seconds as "1h 05m", "12m" or "40s".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds) * time.Second
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
