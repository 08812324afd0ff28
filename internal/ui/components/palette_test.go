package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCommands = []Command{
	{Usage: "goal <pages>", Help: "set daily goal"},
	{Usage: "go <page>", Help: "jump to page"},
	{Usage: "sort <key>", Help: "sort library"},
}

func TestPaletteSuggestsByPrefixAndCompletes(t *testing.T) {
	t.Parallel()
	p := NewPalette(testCommands)
	p.Open()

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("so")})
	require.Len(t, p.suggestions(), 1)
	assert.Equal(t, "sort", p.suggestions()[0].Name())

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "sort ", p.input.Value())

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.Visible())
	require.NotNil(t, cmd)
	assert.Equal(t, PaletteSubmitMsg{Input: "sort"}, cmd())
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := NewPalette(testCommands)
	p.Open()
	assert.Len(t, p.suggestions(), 3)

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, p.Visible())
	assert.Equal(t, PaletteCancelMsg{}, cmd())
	assert.Empty(t, p.View())
}
