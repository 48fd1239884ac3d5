package components

import (
	"strings"

	"github.com/abhisek/studyhub/internal/ui/theme"
)

// Button is a styled button label.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	if b.Active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side with active index highlighted.
func ButtonRow(buttons []Button, active int) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		b.Active = i == active
		parts[i] = b.View()
	}
	return strings.Join(parts, "  ")
}
