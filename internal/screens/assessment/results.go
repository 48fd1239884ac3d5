package assessment

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/screens"
	"github.com/abhisek/studyhub/internal/session"
	"github.com/abhisek/studyhub/internal/ui/components"
	"github.com/abhisek/studyhub/internal/ui/layout"
	"github.com/abhisek/studyhub/internal/ui/theme"
)

// Results shows the score and the per-question review of a completed
// attempt.
type Results struct {
	deps   screens.Deps
	snap   session.Snapshot
	offset int
}

var (
	_ screen.Screen          = (*Results)(nil)
	_ screen.KeyHintProvider = (*Results)(nil)
	_ screen.EscapeHandler   = (*Results)(nil)
)

// NewResults creates the results screen for a completed snapshot.
func NewResults(deps screens.Deps, snap session.Snapshot) *Results {
	return &Results{deps: deps, snap: snap}
}

func (r *Results) Init() tea.Cmd {
	return nil
}

func (r *Results) Title() string {
	return "Results"
}

// HandlesEscape lets the screen clear the controller before leaving.
func (r *Results) HandlesEscape() bool {
	return true
}

func (r *Results) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll review"},
		{Key: "R", Description: "Retake"},
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *Results) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			r.deps.Controller.Reset()
			return r, router.Pop()
		case "r", "R":
			return r, router.Replace(New(r.deps, r.snap.AssessmentID))
		case "up", "k":
			if r.offset > 0 {
				r.offset--
			}
		case "down", "j":
			if r.offset < len(r.snap.Review)-1 {
				r.offset++
			}
		}
	}
	return r, nil
}

func (r *Results) View(width, height int) string {
	snap := r.snap
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(layout.Centered("Assessment complete!", width, theme.Title))
	b.WriteString("\n")
	b.WriteString(layout.Centered(snap.AssessmentTitle, width, theme.Subtitle))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Foreground(theme.ScoreColor(snap.Score)).Bold(true)
	b.WriteString(layout.Centered(fmt.Sprintf("%d%%", snap.Score), width, scoreStyle))
	b.WriteString("\n")
	b.WriteString(layout.Centered(
		fmt.Sprintf("%d of %d correct  ·  %s", snap.Correct, snap.Total, formatClock(snap.Elapsed(snap.FinishedAt))),
		width, theme.Hint))
	b.WriteString("\n")
	bar := components.ProgressBar{
		Percent: float64(snap.Score) / 100,
		Width:   cw,
		Color:   theme.ScoreColor(snap.Score),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n")

	// Review cards fill what is left, starting at offset.
	used := lipgloss.Height(b.String())
	var cards []string
	for _, e := range snap.Review[min(r.offset, len(snap.Review)):] {
		card := components.Card(renderReviewEntry(e, cw-6), cw)
		if used+lipgloss.Height(card) > height && len(cards) > 0 {
			break
		}
		used += lipgloss.Height(card)
		cards = append(cards, card)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(cards, "\n")))

	return b.String()
}

func renderReviewEntry(e session.ReviewEntry, width int) string {
	mark := theme.Correct.Render("✓ Correct")
	if !e.IsCorrect {
		mark = theme.Incorrect.Render("✗ Incorrect")
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Q%d", e.Position+1)))
	b.WriteString("  ")
	b.WriteString(mark)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(e.Question.Prompt))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Your answer: "))
	b.WriteString(fmt.Sprintf("%s) %s", components.OptionLabel(e.Selected), e.SelectedText()))
	if !e.IsCorrect {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Correct:     "))
		b.WriteString(theme.Correct.Render(fmt.Sprintf("%s) %s", components.OptionLabel(e.CorrectIndex), e.CorrectText())))
	}
	if e.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(e.Explanation))
	}
	return b.String()
}
