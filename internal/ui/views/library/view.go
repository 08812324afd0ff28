package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	libdto "readenvy/internal/modules/library/dto"
	"readenvy/internal/ui/theme"
)

type Port interface {
	Browse(ctx context.Context, filter, search, sort string) ([]libdto.BookOutput, error)
}

type BooksLoadedMsg struct {
	Books []libdto.BookOutput
	Err   error
}

var (
	filters = []string{"all", "active", "completed", "archived"}
	sorts   = []string{"last_read", "title", "progress", "date_added"}
)

type bookItem struct {
	book libdto.BookOutput
}

func (i bookItem) Title() string { return i.book.Title }
func (i bookItem) Description() string {
	desc := fmt.Sprintf("%s  %d%%  p.%d/%d", i.book.Status, i.book.PercentComplete, i.book.CurrentPage, i.book.TotalPages)
	if i.book.Author != "" {
		desc = i.book.Author + "  " + desc
	}
	return desc
}
func (i bookItem) FilterValue() string { return i.book.Title }

type Model struct {
	port    Port
	list    list.Model
	bar     progress.Model
	spinner spinner.Model
	loading bool
	err     error

	filter int
	sort   int
	search string

	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{
		port:    port,
		list:    l,
		bar:     progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green))),
		spinner: sp,
		loading: true,
	}
	m.list.Title = m.queryLabel()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BooksLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		selected, _ := m.SelectedBook()
		items := make([]list.Item, len(msg.Books))
		keep := 0
		for i, b := range msg.Books {
			items[i] = bookItem{book: b}
			if b.ID == selected.ID {
				keep = i
			}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Select(keep)
		m.list.Title = m.queryLabel()

	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			m.filter = (m.filter + 1) % len(filters)
			return m, m.Reload()
		case "o":
			m.sort = (m.sort + 1) % len(sorts)
			return m, m.Reload()
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading library…")
	}
	listW := m.width / 2
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.
		Width(max(m.width-listW-4, 10)).
		Height(max(m.height-2, 1)).
		Render(m.renderDetail())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload re-runs the current query.
func (m Model) Reload() tea.Cmd {
	filter, search, sort := filters[m.filter], m.search, sorts[m.sort]
	return func() tea.Msg {
		books, err := m.port.Browse(context.Background(), filter, search, sort)
		return BooksLoadedMsg{Books: books, Err: err}
	}
}

// SetSearch replaces the search text and reloads.
func (m *Model) SetSearch(text string) tea.Cmd {
	m.search = strings.TrimSpace(text)
	return m.Reload()
}

// SetFilter and SetSort accept the same names as the browse query.
func (m *Model) SetFilter(name string) (tea.Cmd, bool) {
	for i, f := range filters {
		if f == name {
			m.filter = i
			return m.Reload(), true
		}
	}
	return nil, false
}

func (m *Model) SetSort(name string) (tea.Cmd, bool) {
	for i, s := range sorts {
		if s == name {
			m.sort = i
			return m.Reload(), true
		}
	}
	return nil, false
}

func (m Model) SelectedBook() (libdto.BookOutput, bool) {
	if item, ok := m.list.SelectedItem().(bookItem); ok {
		return item.book, true
	}
	return libdto.BookOutput{}, false
}

func (m *Model) resize() {
	m.list.SetSize(m.width/2, m.height)
	m.bar.Width = max(m.width/2-10, 10)
}

func (m Model) queryLabel() string {
	label := fmt.Sprintf("Library · %s · %s", filters[m.filter], strings.ReplaceAll(sorts[m.sort], "_", " "))
	if m.search != "" {
		label += fmt.Sprintf(" · %q", m.search)
	}
	return label
}

func (m Model) renderDetail() string {
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	b, ok := m.SelectedBook()
	if !ok {
		return theme.Muted.Render("No books. Import one with `readenvy import <file.pdf>`.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(b.Title) + "\n")
	if b.Author != "" {
		sb.WriteString(theme.Muted.Render(b.Author) + "\n")
	}
	sb.WriteString("\n" + m.bar.ViewAs(float64(b.PercentComplete)/100) + "\n\n")
	row := func(label, value string) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-9s", label)) + value + "\n")
	}
	row("status", theme.StatusStyle(b.Status).Render(b.Status))
	row("pages", fmt.Sprintf("%d / %d", b.CurrentPage, b.TotalPages))
	row("time", readingTime(b.TotalReadingTime))
	row("priority", b.Priority)
	if len(b.Tags) > 0 {
		row("tags", strings.Join(b.Tags, ", "))
	}
	row("added", humanize.Time(b.CreatedAt))
	if b.LastReadAt != nil {
		row("last read", humanize.Time(*b.LastReadAt))
	} else {
		row("last read", "never")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: read  f: filter  o: order  a: archive  r: restore"))
	return sb.String()
}

func readingTime(seconds int) string {
	h, m := seconds/3600, seconds%3600/60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
