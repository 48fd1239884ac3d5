// Package dashboard renders learning analytics.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/ui/components"
	"github.com/abhisek/studyhub/internal/ui/layout"
	"github.com/abhisek/studyhub/internal/ui/theme"
)

type dashboardLoadedMsg struct {
	Dashboard *analytics.Dashboard
	Err       error
}

// Screen shows totals, topic accuracy, the last week and recent activity.
type Screen struct {
	src    analytics.Source
	now    func() time.Time
	dash   *analytics.Dashboard
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the analytics screen.
func New(src analytics.Source, now func() time.Time) *Screen {
	if now == nil {
		now = time.Now
	}
	return &Screen{src: src, now: now}
}

func (s *Screen) Init() tea.Cmd {
	src, now := s.src, s.now()
	return func() tea.Msg {
		d, err := analytics.Build(context.Background(), src, now)
		return dashboardLoadedMsg{Dashboard: d, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Analytics"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.dash = msg.Dashboard
	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			return s, s.Init()
		case "esc":
			return s, router.Pop()
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
	if s.dash == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Crunching numbers...")
	}

	d := s.dash
	cw := components.ContentWidth(width)
	var sections []string

	tileW := cw/4 - 2
	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		components.StatTile("Assessments", fmt.Sprint(d.CompletedAssessments), tileW),
		components.StatTile("Avg score", fmt.Sprintf("%d%%", d.AverageScore), tileW),
		components.StatTile("Study time", formatStudyTime(d.TotalStudyTime), tileW),
		components.StatTile("Documents", fmt.Sprint(d.DocumentsProcessed), tileW),
	)
	sections = append(sections, tiles)

	if len(d.TopicProgress) > 0 {
		var b strings.Builder
		b.WriteString(theme.Heading.Render("Topic progress"))
		for _, tp := range d.TopicProgress {
			b.WriteString("\n")
			bar := components.ProgressBar{
				Label:       fmt.Sprintf("%-16s", truncate(tp.Topic, 16)),
				Percent:     float64(tp.Percent) / 100,
				ShowPercent: true,
				Width:       cw - 6,
				Color:       theme.ScoreColor(tp.Percent),
			}
			b.WriteString(bar.View())
		}
		sections = append(sections, components.Card(b.String(), cw))
	}

	sections = append(sections, components.Card(renderWeek(d.Week), cw))

	if !layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) && len(d.Recent) > 0 {
		var b strings.Builder
		b.WriteString(theme.Heading.Render("Recent activity"))
		for _, a := range d.Recent {
			b.WriteString("\n")
			b.WriteString(renderActivity(a, s.now()))
		}
		sections = append(sections, components.Card(b.String(), cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

// renderWeek draws one bar of study minutes per day.
func renderWeek(week []analytics.DayActivity) string {
	var peak time.Duration
	for _, d := range week {
		peak = max(peak, d.StudyTime)
	}
	const barHeight = 4

	var cols []string
	for _, d := range week {
		h := 0
		if peak > 0 {
			h = int((d.StudyTime*barHeight + peak - 1) / peak)
		}
		col := strings.Repeat(" \n", barHeight-h) + strings.Repeat("█\n", h)
		col += lipgloss.NewStyle().Foreground(theme.TextDim).Render(d.Label()[:2])
		cols = append(cols, lipgloss.NewStyle().
			Foreground(theme.Secondary).Width(4).Align(lipgloss.Center).Render(col))
	}
	return theme.Heading.Render("This week") + "\n" + lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
}

func renderActivity(a analytics.Activity, now time.Time) string {
	icon := map[analytics.ActivityKind]string{
		analytics.ActivityCompleted: "✓",
		analytics.ActivityExited:    "↩",
		analytics.ActivityUpload:    "↑",
	}[a.Kind]
	line := fmt.Sprintf("%s %s", icon, a.Description)
	if a.Score != nil {
		line += "  " + lipgloss.NewStyle().Foreground(theme.ScoreColor(*a.Score)).Render(fmt.Sprintf("%d%%", *a.Score))
	}
	return line + "  " + theme.Hint.Render(ago(now.Sub(a.Time)))
}

func formatStudyTime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
