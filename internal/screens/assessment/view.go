package assessment

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/ui/components"
	"github.com/abhisek/studyhub/internal/ui/layout"
	"github.com/abhisek/studyhub/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(s.errMsg, width)
	case !s.started:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading assessment...")
	case s.confirmQuit:
		return s.renderQuitConfirm(width, height)
	}
	return s.renderQuestion(width)
}

func (s *Screen) renderQuestion(width int) string {
	snap := s.snap
	q := snap.Question
	if q == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", snap.Index+1, snap.Total))

	timer := formatClock(snap.Elapsed(s.now))
	if snap.TimeLimit > 0 {
		timer += " / " + formatClock(snap.TimeLimit)
	}
	timerStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if snap.OverTime(s.now) {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		timer += "  over time"
	}
	infoRight := timerStyle.Render(timer)

	infoLine := infoLeft
	if pad := cw - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(components.ProgressBar{Percent: snap.Progress, ShowPercent: true, Width: cw}.View())
	b.WriteString("\n\n")

	meta := q.Topic
	if q.Difficulty != "" {
		meta += "  ·  " + lipgloss.NewStyle().
			Foreground(theme.DifficultyColor(string(q.Difficulty))).
			Render(string(q.Difficulty))
	}
	if meta != "" {
		b.WriteString(theme.Hint.Render(meta))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choices.View())

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("  " + s.notice))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *Screen) renderQuitConfirm(width, height int) string {
	answered := len(s.snap.Answers)
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Exit this assessment?") +
		"\n\n" +
		theme.Hint.Render(fmt.Sprintf("%d of %d questions answered. Progress will be lost.", answered, s.snap.Total)) +
		"\n\n" +
		components.ButtonRow([]components.Button{
			{Label: "Exit", Key: "Y"},
			{Label: "Keep going", Key: "N"},
		}, 1)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderError(msg string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\nError: %s\n\n", msg)) +
		layout.Centered("Press any key to go back", width, theme.Hint)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
