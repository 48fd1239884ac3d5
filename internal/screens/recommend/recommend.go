// Package recommend suggests what to study next.
package recommend

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/screens"
	assessmentscreen "github.com/abhisek/studyhub/internal/screens/assessment"
	"github.com/abhisek/studyhub/internal/store"
	"github.com/abhisek/studyhub/internal/ui/components"
	"github.com/abhisek/studyhub/internal/ui/layout"
	"github.com/abhisek/studyhub/internal/ui/theme"
)

type recommendationsLoadedMsg struct {
	Items []analytics.Recommendation
	Err   error
}

// Screen lists recommendations and starts the suggested assessment.
type Screen struct {
	deps     screens.Deps
	items    []analytics.Recommendation
	selected int
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Resumer         = (*Screen)(nil)
)

// New creates the recommendations screen.
func New(deps screens.Deps) *Screen {
	return &Screen{deps: deps}
}

func (s *Screen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx := context.Background()
		var stats []store.TopicStat
		if deps.Repo != nil {
			var err error
			if stats, err = deps.Repo.TopicAccuracy(ctx); err != nil {
				return recommendationsLoadedMsg{Err: err}
			}
		}
		items, err := deps.Catalog.List(ctx)
		if err != nil {
			return recommendationsLoadedMsg{Err: err}
		}
		return recommendationsLoadedMsg{Items: analytics.Recommend(stats, items)}
	}
}

// Resume recomputes after an attempt started from here.
func (s *Screen) Resume() tea.Cmd {
	return s.Init()
}

func (s *Screen) Title() string {
	return "Recommendations"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start assessment"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recommendationsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.deps.Log.Error().Err(msg.Err).Msg("load recommendations")
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.items = msg.Items
		if s.selected >= len(s.items) {
			s.selected = max(len(s.items)-1, 0)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.items) {
				if id := s.items[s.selected].AssessmentID; id != "" {
					return s, router.Push(assessmentscreen.New(s.deps, id))
				}
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Finding what to study next...")
	}

	cw := components.ContentWidth(width)
	var sections []string
	for i, r := range s.items {
		sections = append(sections, renderRecommendation(r, i == s.selected, cw))
	}
	if len(s.items) == 0 {
		sections = append(sections, theme.Hint.Render("Nothing to recommend yet. Take an assessment first."))
	}

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		var b strings.Builder
		b.WriteString(theme.Heading.Render("Study tips"))
		for _, tip := range analytics.StudyTips {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(tip.Category + ": "))
			b.WriteString(tip.Text)
		}
		sections = append(sections, components.Card(b.String(), cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func renderRecommendation(r analytics.Recommendation, selected bool, cw int) string {
	title := theme.Heading.Render(r.Title)
	if selected {
		title = theme.Selected.Render("▸ " + r.Title)
	}
	badge := lipgloss.NewStyle().
		Foreground(theme.PriorityColor(string(r.Priority))).
		Bold(true).
		Render(fmt.Sprintf("%s · %s", r.Priority, r.Kind))

	meta := fmt.Sprintf("%s  ·  ~%d min", r.Topic, int(r.EstimatedTime.Minutes()))
	if r.Attempted {
		meta += fmt.Sprintf("  ·  %d%% accuracy", r.Accuracy)
	}
	if r.AssessmentID == "" {
		meta += "  ·  no assessment available"
	}

	border := theme.Border
	if selected {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 2).
		Render(title + "  " + badge + "\n" + r.Description + "\n" + theme.Hint.Render(meta))
}
