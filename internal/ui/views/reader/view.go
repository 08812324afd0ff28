package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	readerdto "readenvy/internal/modules/reader/dto"
	"readenvy/internal/ui/theme"
)

// Port is what the reader tab needs from the reader module.
type Port interface {
	Open(ctx context.Context, bookID string, page int) (readerdto.ViewOutput, error)
	Turn(ctx context.Context, bookID string, page int) (readerdto.ViewOutput, error)
}

type OpenedMsg struct {
	View readerdto.ViewOutput
	Err  error
}

// CommittedMsg reports a debounced progress write.
type CommittedMsg struct {
	Commit readerdto.CommitOutput
}

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	bar      progress.Model
	renderer *glamour.TermRenderer
	view     readerdto.ViewOutput
	outline  bool
	loading  bool
	err      error
	saved    string
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		bar:      progress.New(progress.WithSolidFill(string(theme.Sapphire)), progress.WithoutPercentage()),
		renderer: newRenderer(80),
	}
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-4, 1)
		m.bar.Width = max(m.width/3, 10)
		m.renderer = newRenderer(max(m.width-4, 20))
		m.refresh()

	case OpenedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.view = msg.View
			m.saved = ""
		}
		m.refresh()
		m.viewport.GotoTop()

	case CommittedMsg:
		if msg.Commit.BookID == m.view.BookID {
			if msg.Commit.Err != nil {
				m.saved = theme.Bad.Render("not saved: " + msg.Commit.Err.Error())
			} else {
				m.view.Percent = msg.Commit.Percent
				m.saved = theme.Good.Render(fmt.Sprintf("saved p.%d", msg.Commit.Page))
			}
		}

	case tea.KeyMsg:
		if msg.String() == "o" && m.view.BookID != "" {
			m.outline = !m.outline
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := m.renderHeader()
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, m.spinner.View()+" Opening book…"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), m.renderFooter())
}

// Open loads a book at page; page 0 resumes where the reader left off.
func (m *Model) Open(bookID string, page int) tea.Cmd {
	m.loading = true
	m.outline = false
	port := m.port
	return tea.Batch(func() tea.Msg {
		view, err := port.Open(context.Background(), bookID, page)
		return OpenedMsg{View: view, Err: err}
	}, m.spinner.Tick)
}

// GoTo turns to page and records it.
func (m Model) GoTo(page int) tea.Cmd {
	if m.view.BookID == "" || page < 1 || (m.view.TotalPages > 0 && page > m.view.TotalPages) {
		return nil
	}
	port, bookID := m.port, m.view.BookID
	return func() tea.Msg {
		view, err := port.Turn(context.Background(), bookID, page)
		return OpenedMsg{View: view, Err: err}
	}
}

func (m Model) NextPage() tea.Cmd { return m.GoTo(m.view.Page + 1) }
func (m Model) PrevPage() tea.Cmd { return m.GoTo(m.view.Page - 1) }

func (m Model) BookID() string { return m.view.BookID }

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderContent())
}

func (m Model) renderHeader() string {
	if m.view.BookID == "" {
		return theme.Title.Render("Reader") + theme.Muted.Render("  pick a book in the Library tab and press enter") + "\n"
	}
	parts := []string{theme.Title.Render(m.view.Title)}
	if m.view.Author != "" {
		parts = append(parts, theme.Muted.Render(m.view.Author))
	}
	parts = append(parts,
		theme.Hot.Render(fmt.Sprintf("p.%d/%d", m.view.Page, m.view.TotalPages)),
		m.bar.ViewAs(float64(m.view.Percent)/100),
		theme.Muted.Render(fmt.Sprintf("%d%%", m.view.Percent)),
	)
	return strings.Join(parts, "  ") + "\n"
}

func (m Model) renderFooter() string {
	left := theme.Muted.Render("←/→ page  ↑/↓ scroll  o outline")
	if m.saved != "" {
		left += "  " + m.saved
	}
	return left
}

func (m Model) renderContent() string {
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	if m.view.BookID == "" {
		return ""
	}
	if m.outline {
		if m.view.OutlineMarkdown == "" {
			return theme.Muted.Render("This document has no outline.")
		}
		md := "# Contents\n\n" + m.view.OutlineMarkdown
		if m.renderer != nil {
			if out, err := m.renderer.Render(md); err == nil {
				return out
			}
		}
		return md
	}
	if strings.TrimSpace(m.view.Text) == "" {
		return theme.Muted.Render("(no extractable text on this page)")
	}
	return lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(m.view.Text)
}
