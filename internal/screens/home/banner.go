package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/abhisek/studyhub/internal/ui/theme"
)

const titleFull = ` ___ _            _      _         _
/ __| |_ _  _ __| |_  _| |_ _  _| |__
\__ \  _| || / _' | || | ' \ || | '_ \
|___/\__|\_,_\__,_|\_, |_||_\_,_|_.__/
                   |__/`

const titleCompact = "S T U D Y H U B"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + theme.Hint.Render("Learn, practice, track your progress"))
}

// renderStatsBar renders the headline figures in a bordered box matching
// content width.
func renderStatsBar(d *analytics.Dashboard, cw int, compact bool) string {
	completedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	docStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	switch {
	case d == nil:
		stats = dimStyle.Render("No activity yet")
	case compact:
		stats = fmt.Sprintf("%s %s %s",
			completedStyle.Render(fmt.Sprintf("✓%d", d.Attempts)),
			scoreStyle.Render(fmt.Sprintf("⌀%d%%", d.AverageScore)),
			docStyle.Render(fmt.Sprintf("▤%d", d.DocumentsProcessed)),
		)
	default:
		stats = fmt.Sprintf("%s  %s  %s",
			completedStyle.Render(fmt.Sprintf("✓ %d COMPLETED", d.Attempts)),
			scoreStyle.Render(fmt.Sprintf("⌀ %d%% AVERAGE", d.AverageScore)),
			docStyle.Render(fmt.Sprintf("▤ %d DOCUMENTS", d.DocumentsProcessed)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, compact bool) string {
	if compact {
		return renderMenuCompact(items, selected, cw)
	}
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
