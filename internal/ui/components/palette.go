package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"readenvy/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command describes one palette entry for the suggestion list.
type Command struct {
	Usage string
	Help  string
}

// Name is the first word of Usage.
func (c Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

const maxSuggestions = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
)

type Palette struct {
	input    textinput.Model
	commands []Command
	visible  bool
	width    int
}

func NewPalette(commands []Command) Palette {
	ti := textinput.New()
	ti.Placeholder = "command…"
	ti.CharLimit = 256
	ti.Prompt = ": "
	return Palette{input: ti, commands: commands}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			val := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case tea.KeyTab:
			// Complete the command name from the first suggestion.
			if s := p.suggestions(); len(s) > 0 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(s[0].Name() + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) suggestions() []Command {
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	name, _, _ := strings.Cut(typed, " ")
	var out []Command
	for _, c := range p.commands {
		if name == "" || strings.HasPrefix(c.Name(), name) {
			out = append(out, c)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Commands") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if s := p.suggestions(); len(s) > 0 {
		sb.WriteString("\n")
		for _, c := range s {
			sb.WriteString("  " + usageStyle.Render(c.Usage) + theme.Muted.Render("  "+c.Help) + "\n")
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
