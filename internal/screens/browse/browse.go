// Package browse lists the assessments in the catalog.
package browse

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/assessment"
	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/screens"
	assessmentscreen "github.com/abhisek/studyhub/internal/screens/assessment"
	"github.com/abhisek/studyhub/internal/ui/components"
	"github.com/abhisek/studyhub/internal/ui/layout"
	"github.com/abhisek/studyhub/internal/ui/theme"
)

type catalogLoadedMsg struct {
	Items []assessment.Assessment
	Err   error
}

// allTopics is the filter value that shows every assessment.
const allTopics = "All"

// Screen lists assessments with their status and last score.
type Screen struct {
	deps     screens.Deps
	items    []assessment.Assessment
	topics   []string
	topic    int
	selected int
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Resumer         = (*Screen)(nil)
)

// New creates the catalog screen.
func New(deps screens.Deps) *Screen {
	return &Screen{deps: deps}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

// Resume reloads so scores from a finished attempt show up.
func (s *Screen) Resume() tea.Cmd {
	return s.load()
}

func (s *Screen) load() tea.Cmd {
	provider := s.deps.Catalog
	return func() tea.Msg {
		items, err := provider.List(context.Background())
		return catalogLoadedMsg{Items: items, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Assessments"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Topic"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.deps.Log.Error().Err(msg.Err).Msg("load catalog")
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.items = msg.Items
		s.topics = append([]string{allTopics}, catalog.Topics(msg.Items)...)
		if s.topic >= len(s.topics) {
			s.topic = 0
		}
		s.clampSelection()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.visible())-1 {
				s.selected++
			}
		case "tab":
			if len(s.topics) > 0 {
				s.topic = (s.topic + 1) % len(s.topics)
				s.selected = 0
			}
		case "shift+tab":
			if len(s.topics) > 0 {
				s.topic = (s.topic + len(s.topics) - 1) % len(s.topics)
				s.selected = 0
			}
		case "enter":
			vis := s.visible()
			if s.selected < len(vis) {
				return s, router.Push(assessmentscreen.New(s.deps, vis[s.selected].ID))
			}
		}
	}
	return s, nil
}

// visible returns the assessments matching the topic filter.
func (s *Screen) visible() []assessment.Assessment {
	if len(s.topics) == 0 || s.topics[s.topic] == allTopics {
		return s.items
	}
	topic := s.topics[s.topic]
	var out []assessment.Assessment
	for _, a := range s.items {
		if a.Topic == topic {
			out = append(out, a)
		}
	}
	return out
}

func (s *Screen) clampSelection() {
	if n := len(s.visible()); s.selected >= n {
		s.selected = max(n-1, 0)
	}
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
			Render("\n\n  Loading assessments...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTopicTabs()))
	b.WriteString("\n\n")

	vis := s.visible()
	if len(vis) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No assessments for this topic"))
		return b.String()
	}

	var cards []string
	for i, a := range vis {
		cards = append(cards, renderCard(a, i == s.selected, cw))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(cards, "\n")))
	return b.String()
}

func (s *Screen) renderTopicTabs() string {
	parts := make([]string, len(s.topics))
	for i, t := range s.topics {
		if i == s.topic {
			parts[i] = theme.Selected.Render("[" + t + "]")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + t + " ")
		}
	}
	return strings.Join(parts, " ")
}

func renderCard(a assessment.Assessment, selected bool, cw int) string {
	title := theme.Heading.Render(a.Title)
	if selected {
		title = theme.Selected.Render("▸ " + a.Title)
	}

	status := lipgloss.NewStyle().Foreground(theme.Primary).Render("Available")
	if a.EffectiveStatus() == assessment.StatusCompleted {
		status = lipgloss.NewStyle().Foreground(theme.Success).Render("Completed")
		if a.LastScore != nil {
			status += "  " + lipgloss.NewStyle().
				Foreground(theme.ScoreColor(*a.LastScore)).Bold(true).
				Render(fmt.Sprintf("%d%%", *a.LastScore))
		}
	}

	meta := fmt.Sprintf("%s  ·  %s  ·  %d questions  ·  %d min",
		a.Topic,
		lipgloss.NewStyle().Foreground(theme.DifficultyColor(string(a.Difficulty))).Render(string(a.Difficulty)),
		a.QuestionCount(),
		a.TimeLimitMinutes,
	)

	border := theme.Border
	if selected {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 2).
		Render(title + "  " + status + "\n" + theme.Hint.Render(meta))
}
