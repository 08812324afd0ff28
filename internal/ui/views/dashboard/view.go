package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	goalsdto "readenvy/internal/modules/goals/dto"
	libdto "readenvy/internal/modules/library/dto"
	progressdto "readenvy/internal/modules/progress/dto"
	"readenvy/internal/ui/theme"
)

type Port interface {
	Goals(ctx context.Context) (goalsdto.SnapshotOutput, error)
	Weekly(ctx context.Context) (progressdto.WeeklyStatsOutput, error)
	Summary(ctx context.Context) (libdto.SummaryOutput, error)
	LastRead(ctx context.Context) (libdto.BookOutput, bool, error)
}

type Data struct {
	Goals    goalsdto.SnapshotOutput
	Weekly   progressdto.WeeklyStatsOutput
	Summary  libdto.SummaryOutput
	LastRead *libdto.BookOutput
}

type LoadedMsg struct {
	Data Data
	Err  error
}

type Model struct {
	port   Port
	data   Data
	err    error
	ready  bool
	goal   progress.Model
	width  int
	height int
}

func New(port Port) Model {
	return Model{
		port: port,
		goal: progress.New(progress.WithGradient(string(theme.Peach), string(theme.Green))),
	}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		var d Data
		var err error
		if d.Goals, err = port.Goals(ctx); err != nil {
			return LoadedMsg{Err: err}
		}
		if d.Weekly, err = port.Weekly(ctx); err != nil {
			return LoadedMsg{Err: err}
		}
		if d.Summary, err = port.Summary(ctx); err != nil {
			return LoadedMsg{Err: err}
		}
		last, ok, err := port.LastRead(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		if ok {
			d.LastRead = &last
		}
		return LoadedMsg{Data: d}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.goal.Width = max(m.width/2-8, 10)
	case LoadedMsg:
		m.ready = true
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Data
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	if !m.ready {
		return theme.Muted.Render("Loading…")
	}
	half := max(m.width/2-2, 20)
	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.Pane.Width(half).Render(m.renderToday()),
		theme.Pane.Width(half).Render(m.renderLibrary()),
	)
	right := theme.Pane.Width(half).Render(m.renderWeek())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderToday() string {
	g := m.data.Goals
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + theme.Muted.Render("  "+g.Today) + "\n\n")
	sb.WriteString(m.goal.ViewAs(float64(g.DailyProgress)/100) + "\n")
	fmt.Fprintf(&sb, "%d of %d pages", g.TodayPagesRead, g.DailyGoal)
	if g.GoalMet {
		sb.WriteString("  " + theme.Good.Render("goal met"))
	}
	sb.WriteString("\n\n")
	streak := fmt.Sprintf("🔥 %d day streak", g.Streak.CurrentStreak)
	if g.Streak.CurrentStreak == 0 {
		streak = "no active streak"
	}
	sb.WriteString(theme.Hot.Render(streak) + theme.Muted.Render(fmt.Sprintf("  longest %d", g.Streak.LongestStreak)))
	return sb.String()
}

func (m Model) renderLibrary() string {
	s := m.data.Summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Library") + "\n\n")
	fmt.Fprintf(&sb, "%d books  %d reading  %d finished  %d archived\n", s.Total, s.Active, s.Completed, s.Archived)
	fmt.Fprintf(&sb, "%s pages read in total\n", humanize.Comma(int64(s.PagesRead)))
	if lr := m.data.LastRead; lr != nil && lr.LastReadAt != nil {
		sb.WriteString("\n" + theme.Muted.Render("continue: ") + lr.Title +
			theme.Muted.Render(fmt.Sprintf("  %d%%  %s", lr.PercentComplete, humanize.Time(*lr.LastReadAt))))
	}
	return sb.String()
}

func (m Model) renderWeek() string {
	w := m.data.Weekly
	peak := 1
	for _, d := range w.Daily {
		peak = max(peak, d.Pages)
	}
	barW := max(m.width/2-24, 5)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Last 7 days") + "\n\n")
	for _, d := range w.Daily {
		n := d.Pages * barW / peak
		sb.WriteString(theme.Muted.Render(d.Date[5:]) + " " +
			lipgloss.NewStyle().Foreground(theme.Sapphire).Render(strings.Repeat("█", n)) +
			fmt.Sprintf(" %d\n", d.Pages))
	}
	fmt.Fprintf(&sb, "\n%s pages  %d sessions  %d books  %s\n",
		humanize.Comma(int64(w.PagesRead)), w.SessionsCount, w.BooksOpened, minutes(w.TimeSpent))
	return sb.String()
}

func minutes(seconds int) string {
	if seconds < 3600 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dh %02dm", seconds/3600, seconds%3600/60)
}
