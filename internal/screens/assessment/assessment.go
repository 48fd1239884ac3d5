// Package assessment contains the screens for taking an assessment and
// reviewing its results.
package assessment

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/screens"
	"github.com/abhisek/studyhub/internal/session"
	"github.com/abhisek/studyhub/internal/ui/components"
	"github.com/abhisek/studyhub/internal/ui/layout"
)

// Screen runs one attempt through the shared controller.
type Screen struct {
	deps         screens.Deps
	assessmentID string

	snap    session.Snapshot
	choices components.MultiChoice
	now     time.Time

	started     bool
	errMsg      string
	notice      string
	confirmQuit bool
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.EscapeHandler   = (*Screen)(nil)
)

// New creates a screen that starts assessmentID when pushed.
func New(deps screens.Deps, assessmentID string) *Screen {
	return &Screen{
		deps:         deps,
		assessmentID: assessmentID,
		now:          deps.Now(),
	}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

func (s *Screen) Title() string {
	if s.snap.AssessmentTitle != "" {
		return s.snap.AssessmentTitle
	}
	return "Assessment"
}

// HandlesEscape keeps Esc for the exit confirmation while answering.
func (s *Screen) HandlesEscape() bool {
	return s.started && s.errMsg == ""
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Exit assessment"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "Any key", Description: "Back"}}
	}
	next := "Next"
	if s.snap.IsLastQuestion() {
		next = "Submit"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "A-D/1-4/Space", Description: "Select"},
		{Key: "Enter", Description: next},
		{Key: "Esc", Description: "Exit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return s.start()

	case clockTickMsg:
		s.now = time.Time(msg)
		if s.snap.Phase != session.PhaseInProgress {
			return s, nil
		}
		return s, clockTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) start() (screen.Screen, tea.Cmd) {
	ctrl := s.deps.Controller
	if err := ctrl.Start(context.Background(), s.assessmentID); err != nil {
		s.deps.Log.Warn().Err(err).Str("assessment", s.assessmentID).Msg("start assessment")
		s.errMsg = err.Error()
		return s, nil
	}
	s.started = true
	s.refresh()
	s.deps.Log.Info().
		Str("assessment", s.assessmentID).
		Str("session", s.snap.SessionID).
		Msg("assessment started")
	return s, clockTick()
}

// refresh reloads the snapshot and rebuilds the options when the question
// changed.
func (s *Screen) refresh() {
	prev := s.snap.Index
	s.snap = s.deps.Controller.Snapshot()
	s.now = s.deps.Now()
	if s.snap.Question == nil {
		return
	}
	if s.choices.Options == nil || prev != s.snap.Index {
		s.choices = components.NewMultiChoice(s.snap.Question.Options)
	}
	s.choices.Selected = s.snap.Selected
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, router.Pop()
	}
	if !s.started {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.deps.Controller.Reset()
			s.deps.Log.Info().Str("assessment", s.assessmentID).Msg("assessment exited")
			return s, router.Pop()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.advance()
	}

	var chosen int
	s.choices, chosen = s.choices.Update(msg)
	if chosen >= 0 {
		if err := s.deps.Controller.SelectOption(chosen); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		s.notice = ""
		s.refresh()
	}
	return s, nil
}

func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	ctrl := s.deps.Controller
	if err := ctrl.Advance(context.Background()); err != nil {
		if errors.Is(err, session.ErrNoSelection) {
			s.notice = "Select an answer to continue"
		} else {
			s.notice = err.Error()
		}
		return s, nil
	}
	s.notice = ""
	s.refresh()

	if s.snap.Phase == session.PhaseCompleted {
		s.deps.Log.Info().
			Str("assessment", s.assessmentID).
			Int("score", s.snap.Score).
			Msg("assessment completed")
		return s, router.Replace(NewResults(s.deps, s.snap))
	}
	return s, nil
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
