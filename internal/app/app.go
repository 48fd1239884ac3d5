package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/notify"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/screens"
	"github.com/abhisek/studyhub/internal/screens/home"
	"github.com/abhisek/studyhub/internal/session"
	"github.com/abhisek/studyhub/internal/store"
	"github.com/abhisek/studyhub/internal/ui/layout"
)

// toastDuration is how long a notification stays in the header area.
const toastDuration = 4 * time.Second

// Options configures the application.
type Options struct {
	Catalog        catalog.Provider
	EventRepo      store.EventRepo // optional
	Sink           notify.Sink     // receives every notification, e.g. persistence
	Log            zerolog.Logger
	MaxUploadBytes int64
	UploadTick     time.Duration
	Clock          func() time.Time
}

type toastExpiredMsg struct{ id int }

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	ctrl     *session.Controller
	recorder *notify.Recorder
	width    int
	height   int

	toast   *notify.Notification
	toastID int
}

// NewAppModel creates the root model with the home screen.
func NewAppModel(opts Options) AppModel {
	rec := &notify.Recorder{}
	sink := notify.Multi(opts.Sink, rec)

	ctrlOpts := []session.Option{}
	if opts.Clock != nil {
		ctrlOpts = append(ctrlOpts, session.WithClock(opts.Clock))
	}
	ctrl := session.NewController(opts.Catalog, sink, ctrlOpts...)

	deps := screens.Deps{
		Catalog:        opts.Catalog,
		Controller:     ctrl,
		Repo:           opts.EventRepo,
		Sink:           sink,
		Log:            opts.Log,
		MaxUploadBytes: opts.MaxUploadBytes,
		UploadTick:     opts.UploadTick,
		Clock:          opts.Clock,
	}

	return AppModel{
		router:   router.New(home.New(deps)),
		ctrl:     ctrl,
		recorder: rec,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			// An unfinished attempt is recorded as exited.
			m.ctrl.Reset()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.showToasts())
}

// showToasts takes pending notifications and shows the latest one.
func (m *AppModel) showToasts() tea.Cmd {
	pending := m.recorder.Drain()
	if len(pending) == 0 {
		return nil
	}
	n := pending[len(pending)-1]
	m.toast = &n
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)
	if m.toast != nil {
		footer = layout.RenderToast(m.toast.Title(), m.toast.Message(), m.width) + "\n" + footer
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// status is shown at the right of the header.
func (m AppModel) status() string {
	snap := m.ctrl.Snapshot()
	if snap.Phase == session.PhaseInProgress {
		return fmt.Sprintf("%d/%d  ", snap.Index+1, snap.Total)
	}
	return ""
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
