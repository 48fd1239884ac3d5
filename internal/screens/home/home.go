package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/screens"
	"github.com/abhisek/studyhub/internal/screens/browse"
	"github.com/abhisek/studyhub/internal/screens/dashboard"
	"github.com/abhisek/studyhub/internal/screens/history"
	"github.com/abhisek/studyhub/internal/screens/recommend"
	"github.com/abhisek/studyhub/internal/screens/upload"
	"github.com/abhisek/studyhub/internal/ui/components"
)

type statsLoadedMsg struct {
	Dashboard *analytics.Dashboard
	Err       error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps       screens.Deps
	menu       components.Menu
	menuLabels []string
	stats      *analytics.Dashboard
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen. Screens backed by stored history are left
// out when deps.Repo is nil.
func New(deps screens.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(build()) }
	}

	items := []components.MenuItem{
		{Label: "ASSESSMENTS", Description: "Test your knowledge",
			Action: push(func() screen.Screen { return browse.New(deps) })},
		{Label: "UPLOAD MATERIAL", Description: "PDF, Word or text notes",
			Action: push(func() screen.Screen { return upload.New(deps) })},
		{Label: "RECOMMENDATIONS", Description: "What to study next",
			Action: push(func() screen.Screen { return recommend.New(deps) })},
	}
	if deps.Repo != nil {
		items = append(items,
			components.MenuItem{Label: "ANALYTICS", Description: "Scores and study time",
				Action: push(func() screen.Screen { return dashboard.New(deps.Repo, deps.Clock) })},
			components.MenuItem{Label: "HISTORY", Description: "Past attempts",
				Action: push(func() screen.Screen { return history.New(deps.Repo) })},
		)
	}
	items = append(items, components.MenuItem{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }})

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: labels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.deps.Repo
	if repo == nil {
		return nil
	}
	now := h.deps.Now()
	return func() tea.Msg {
		d, err := analytics.Build(context.Background(), repo, now)
		return statsLoadedMsg{Dashboard: d, Err: err}
	}
}

// Resume refreshes the stats bar.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err != nil {
			h.deps.Log.Warn().Err(msg.Err).Msg("load home stats")
			return h, nil
		}
		h.stats = msg.Dashboard
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	termHeight := height + 6
	compact := termHeight < 34 || width < 100

	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats, cw, compact),
		renderMenu(h.menuLabels, h.menu.Selected, cw, compact),
	}
	if d := h.menu.Items[h.menu.Selected].Description; d != "" {
		sections = append(sections, components.Card(d, cw))
	}

	return components.Panel(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
