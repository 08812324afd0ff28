package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goalsdto "readenvy/internal/modules/goals/dto"
	libdto "readenvy/internal/modules/library/dto"
	progressdto "readenvy/internal/modules/progress/dto"
	readerdto "readenvy/internal/modules/reader/dto"
	"readenvy/internal/ui/components"
	"readenvy/internal/ui/theme"
	dashboardview "readenvy/internal/ui/views/dashboard"
	libraryview "readenvy/internal/ui/views/library"
	readerview "readenvy/internal/ui/views/reader"
)

type libraryPort interface {
	Browse(ctx context.Context, filter, search, sort string) ([]libdto.BookOutput, error)
	Archive(ctx context.Context, id string) (libdto.BookOutput, error)
	Restore(ctx context.Context, id string) (libdto.BookOutput, error)
	Remove(ctx context.Context, id string) error
	Summary(ctx context.Context) (libdto.SummaryOutput, error)
	LastRead(ctx context.Context) (libdto.BookOutput, bool, error)
}

type progressPort interface {
	Reset(ctx context.Context, bookID string) (progressdto.BookProgressOutput, error)
	Weekly(ctx context.Context, endDay string) (progressdto.WeeklyStatsOutput, error)
}

type goalsPort interface {
	Show(ctx context.Context) (goalsdto.SnapshotOutput, error)
	SetDailyGoal(ctx context.Context, pages int) (goalsdto.GoalOutput, error)
}

type readerPort interface {
	Open(ctx context.Context, bookID string, page int) (readerdto.ViewOutput, error)
	Turn(ctx context.Context, bookID string, page int) (readerdto.ViewOutput, error)
	Quit(ctx context.Context) error
}

type tabID int

const (
	tabLibrary tabID = iota
	tabReader
	tabDashboard
	tabCount
)

var tabLabels = [tabCount]string{"Library", "Reader", "Dashboard"}

var commands = []components.Command{
	{Usage: "goal <pages>", Help: "set the daily page goal"},
	{Usage: "go <page>", Help: "jump to a page in the reader"},
	{Usage: "search <text>", Help: "search titles and authors"},
	{Usage: "filter <all|active|completed|archived>", Help: "filter the library"},
	{Usage: "sort <last_read|title|progress|date_added>", Help: "order the library"},
	{Usage: "archive", Help: "archive the selected book"},
	{Usage: "restore", Help: "restore the selected book"},
	{Usage: "reset", Help: "reset progress of the selected book"},
	{Usage: "remove yes", Help: "delete the selected book and its sessions"},
	{Usage: "refresh", Help: "reload everything"},
}

// actionDoneMsg reports a palette or key action that changed stored state.
type actionDoneMsg struct {
	status string
	err    error
}

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Archive key.Binding
	Restore key.Binding
	Filter  key.Binding
	Order   key.Binding
	Page    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "commands")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read book")),
		Archive: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
		Restore: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		Order:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "cycle order / outline")),
		Page:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "turn page")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Archive, k.Restore},
		{k.Filter, k.Order, k.Page},
		{k.Help, k.Palette, k.Quit},
	}
}

// Model routes input between the tabs, the palette and the help overlay.
// Reads and writes go through the ports; rendering lives in the views.
type Model struct {
	library  libraryPort
	progress progressPort
	goals    goalsPort
	reader   readerPort

	libView  libraryview.Model
	readView readerview.Model
	dashView dashboardview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(library libraryPort, progress progressPort, goals goalsPort, reader readerPort) Model {
	return Model{
		library:   library,
		progress:  progress,
		goals:     goals,
		reader:    reader,
		libView:   libraryview.New(library),
		readView:  readerview.New(reader),
		dashView:  dashboardview.New(dashboardBridge{library: library, progress: progress, goals: goals}),
		activeTab: tabLibrary,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(commands),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.libView.Init(), m.dashView.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, tea.Batch(m.libView.Reload(), m.dashView.Reload())

	case readerview.OpenedMsg:
		if msg.Err != nil {
			m.status = "reader: " + msg.Err.Error()
		} else {
			m.activeTab = tabReader
			m.status = fmt.Sprintf("reading %s", msg.View.Title)
		}
		var cmd tea.Cmd
		m.readView, cmd = m.readView.Update(msg)
		return m, cmd

	case readerview.CommittedMsg:
		var cmd tea.Cmd
		m.readView, cmd = m.readView.Update(msg)
		return m, tea.Batch(cmd, m.libView.Reload(), m.dashView.Reload())

	case libraryview.BooksLoadedMsg:
		var cmd tea.Cmd
		m.libView, cmd = m.libView.Update(msg)
		return m, cmd

	case dashboardview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var libCmd, readCmd tea.Cmd
		m.libView, libCmd = m.libView.Update(msg)
		m.readView, readCmd = m.readView.Update(msg)
		return m, tea.Batch(libCmd, readCmd)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if err := m.reader.Quit(context.Background()); err != nil {
				m.status = "saving progress: " + err.Error()
			}
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, m.onTabEnter()
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, m.onTabEnter()
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "enter":
			if m.activeTab == tabLibrary {
				if b, ok := m.libView.SelectedBook(); ok {
					cmd := m.readView.Open(b.ID, 0)
					return m, cmd
				}
			}
		case "a":
			if m.activeTab == tabLibrary {
				return m, m.archiveCmd(true)
			}
		case "r":
			if m.activeTab == tabLibrary {
				return m, m.archiveCmd(false)
			}
		case "left":
			if m.activeTab == tabReader {
				return m, m.readView.PrevPage()
			}
		case "right":
			if m.activeTab == tabReader {
				return m, m.readView.NextPage()
			}
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabLibrary:
		m.libView, cmd = m.libView.Update(msg)
	case tabReader:
		m.readView, cmd = m.readView.Update(msg)
	case tabDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		switch m.activeTab {
		case tabLibrary:
			content = m.libView.View()
		case tabReader:
			content = m.readView.View()
		case tabDashboard:
			content = m.dashView.View()
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		style := theme.Muted
		if i == m.activeTab {
			style = theme.Hot
		}
		parts[i] = style.Render(" " + tabLabels[i] + " ")
	}
	bar := theme.Title.Render("readenvy") + "  " + strings.Join(parts, theme.Muted.Render("│"))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)
	if name == "" {
		return m, nil
	}
	selected, hasSelection := m.libView.SelectedBook()

	switch name {
	case "goal":
		pages, err := strconv.Atoi(arg)
		if err != nil {
			m.status = "usage: goal <pages>"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			if _, err := m.goals.SetDailyGoal(ctx, pages); err != nil {
				return "", err
			}
			return fmt.Sprintf("daily goal set to %d pages", pages), nil
		})

	case "go":
		page, err := strconv.Atoi(arg)
		if err != nil || m.readView.BookID() == "" {
			m.status = "usage: go <page> (with a book open)"
			return m, nil
		}
		m.activeTab = tabReader
		return m, m.readView.GoTo(page)

	case "search":
		m.activeTab = tabLibrary
		cmd := m.libView.SetSearch(arg)
		return m, cmd

	case "filter":
		cmd, ok := m.libView.SetFilter(arg)
		if !ok {
			m.status = "unknown filter " + strconv.Quote(arg)
			return m, nil
		}
		m.activeTab = tabLibrary
		return m, cmd

	case "sort":
		cmd, ok := m.libView.SetSort(arg)
		if !ok {
			m.status = "unknown sort " + strconv.Quote(arg)
			return m, nil
		}
		m.activeTab = tabLibrary
		return m, cmd

	case "archive", "restore":
		return m, m.archiveCmd(name == "archive")

	case "reset":
		if !hasSelection {
			m.status = "no book selected"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			if _, err := m.progress.Reset(ctx, selected.ID); err != nil {
				return "", err
			}
			return "progress reset: " + selected.Title, nil
		})

	case "remove":
		if !hasSelection {
			m.status = "no book selected"
			return m, nil
		}
		if arg != "yes" {
			m.status = "type `remove yes` to delete " + selected.Title
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			if err := m.library.Remove(ctx, selected.ID); err != nil {
				return "", err
			}
			return "removed " + selected.Title, nil
		})

	case "refresh":
		return m, tea.Batch(m.libView.Reload(), m.dashView.Reload())

	default:
		m.status = "unknown command: " + name
	}
	return m, nil
}

func (m Model) archiveCmd(archive bool) tea.Cmd {
	b, ok := m.libView.SelectedBook()
	if !ok {
		return nil
	}
	return m.action(func(ctx context.Context) (string, error) {
		if archive {
			if _, err := m.library.Archive(ctx, b.ID); err != nil {
				return "", err
			}
			return "archived " + b.Title, nil
		}
		out, err := m.library.Restore(ctx, b.ID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("restored %s (%s)", b.Title, out.Status), nil
	})
}

func (m Model) action(fn func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return actionDoneMsg{status: status, err: err}
	}
}

func (m Model) onTabEnter() tea.Cmd {
	if m.activeTab == tabDashboard {
		return m.dashView.Reload()
	}
	return nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.libView, _ = m.libView.Update(sz)
	m.readView, _ = m.readView.Update(sz)
	m.dashView, _ = m.dashView.Update(sz)
}

// dashboardBridge narrows the module ports to what the dashboard reads.
type dashboardBridge struct {
	library  libraryPort
	progress progressPort
	goals    goalsPort
}

func (b dashboardBridge) Goals(ctx context.Context) (goalsdto.SnapshotOutput, error) {
	return b.goals.Show(ctx)
}

func (b dashboardBridge) Weekly(ctx context.Context) (progressdto.WeeklyStatsOutput, error) {
	return b.progress.Weekly(ctx, "")
}

func (b dashboardBridge) Summary(ctx context.Context) (libdto.SummaryOutput, error) {
	return b.library.Summary(ctx)
}

func (b dashboardBridge) LastRead(ctx context.Context) (libdto.BookOutput, bool, error) {
	return b.library.LastRead(ctx)
}
