package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/ui/theme"
)

// MultiChoice renders answer options with a cursor and a tentative
// selection. Moving the cursor does not select; space marks the option under
// the cursor and a letter or digit marks that option directly.
type MultiChoice struct {
	Options  []string
	Cursor   int
	Selected int // -1 when nothing is selected

	// Reveal shows correctness using CorrectIndex instead of the cursor.
	Reveal       bool
	CorrectIndex int
}

// NewMultiChoice creates a component with nothing selected.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:  options,
		Selected: -1,
	}
}

// OptionLabel returns the letter shown for option i.
func OptionLabel(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprint(i + 1)
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and shortcut keys. The second return is
// the option chosen by this key, or -1.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.Reveal {
		return m, -1
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	// j and k move the cursor only while they are not option labels.
	if (key == "j" || key == "k") && m.isLabel(key[0]) {
		return m.choose(int(key[0] - 'a'))
	}
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, -1
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, -1
	case "space", " ":
		return m.choose(m.Cursor)
	}

	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= '1' && c <= '9':
			return m.choose(int(c - '1'))
		case c >= 'a' && c <= 'z':
			return m.choose(int(c - 'a'))
		case c >= 'A' && c <= 'Z':
			return m.choose(int(c - 'A'))
		}
	}
	return m, -1
}

func (m MultiChoice) isLabel(c byte) bool {
	return int(c-'a') < len(m.Options)
}

func (m MultiChoice) choose(i int) (MultiChoice, int) {
	if i < 0 || i >= len(m.Options) {
		return m, -1
	}
	m.Cursor = i
	m.Selected = i
	return m, i
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if !m.Reveal && i == m.Cursor {
			prefix = "▸ "
		}
		mark := "( )"
		if i == m.Selected {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case m.Reveal && i == m.CorrectIndex:
			style = theme.Correct
		case m.Reveal && i == m.Selected:
			style = theme.Incorrect
		case m.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
