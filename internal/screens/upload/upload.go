// Package upload lets the learner submit study material.
package upload

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyhub/internal/notify"
	"github.com/abhisek/studyhub/internal/screen"
	"github.com/abhisek/studyhub/internal/screens"
	"github.com/abhisek/studyhub/internal/store"
	"github.com/abhisek/studyhub/internal/ui/components"
	"github.com/abhisek/studyhub/internal/ui/layout"
	"github.com/abhisek/studyhub/internal/ui/theme"
	up "github.com/abhisek/studyhub/internal/upload"
)

type phase int

const (
	phaseInput phase = iota
	phaseRunning
	phaseDone
)

// progressMsg carries one streamed task update.
type progressMsg struct {
	update up.Update
	ch     <-chan up.Update
}

// recordedMsg reports the stored outcome of a finished task.
type recordedMsg struct {
	Err error
}

// Screen takes a file path, validates it and runs the processing task.
type Screen struct {
	deps   screens.Deps
	input  components.TextInput
	phase  phase
	file   up.File
	prog   up.Progress
	result up.Result
	err    error
	cancel context.CancelFunc
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.EscapeHandler   = (*Screen)(nil)
)

// New creates the upload screen.
func New(deps screens.Deps) *Screen {
	return &Screen{
		deps:  deps,
		input: components.NewTextInput("path/to/notes.pdf", 1024),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return "Upload Material"
}

// HandlesEscape keeps Esc for cancelling a running task.
func (s *Screen) HandlesEscape() bool {
	return s.phase == phaseRunning
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseRunning:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Upload another"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Upload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		return s.handleProgress(msg)

	case recordedMsg:
		if msg.Err != nil {
			s.deps.Log.Error().Err(msg.Err).Str("file", s.file.Name).Msg("record upload")
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseRunning:
		if msg.String() == "esc" && s.cancel != nil {
			s.cancel()
		}
		return s, nil

	case phaseDone:
		if msg.String() == "enter" {
			s.phase = phaseInput
			s.err = nil
			s.input.Reset()
			return s, s.input.Init()
		}
		return s, nil
	}

	if msg.String() == "enter" {
		return s.submit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	path := expandHome(s.input.Value())
	if path == "" {
		return s, nil
	}
	f, err := up.Inspect(path, s.maxBytes())
	if err != nil {
		s.input.Submit(false)
		s.err = err
		return s, nil
	}
	s.input.Submit(true)
	s.err = nil
	s.file = f
	s.phase = phaseRunning
	s.prog = up.Progress{Stage: up.StageUploading}

	task := up.NewTask(f)
	if s.deps.UploadTick > 0 {
		task.Tick = s.deps.UploadTick
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.deps.Log.Info().Str("file", f.Name).Str("mime", f.MIMEType).Int64("size", f.Size).Msg("upload started")
	return s, waitForUpdate(task.Stream(ctx))
}

func (s *Screen) handleProgress(msg progressMsg) (screen.Screen, tea.Cmd) {
	u := msg.update
	if !u.Done {
		s.prog = u.Progress
		return s, waitForUpdate(msg.ch)
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.phase = phaseDone
	s.result = u.Result
	s.err = u.Err
	if u.Err == nil {
		s.prog = u.Progress
		s.deps.Notify(notify.Notification{Kind: notify.KindUploadCompleted, FileName: s.file.Name})
	}
	return s, s.record(up.EventFor(s.file, u.Result, u.Err))
}

func (s *Screen) record(data store.UploadEventData) tea.Cmd {
	repo := s.deps.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		return recordedMsg{Err: repo.AppendUploadEvent(context.Background(), data)}
	}
}

func waitForUpdate(ch <-chan up.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg{update: u, ch: ch}
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Centered("Upload study material", width, theme.Title))
	b.WriteString("\n")
	b.WriteString(layout.Centered(
		fmt.Sprintf("%s up to %s", strings.Join(up.AllowedExtensions(), " "), up.FormatSize(s.maxBytes())),
		width, theme.Subtitle))
	b.WriteString("\n\n")

	var body string
	switch s.phase {
	case phaseInput:
		body = "File path\n" + s.input.View()
		if s.err != nil {
			body += "\n\n" + theme.ErrorText.Render(s.err.Error())
		}
	case phaseRunning:
		body = s.renderRunning(cw)
	case phaseDone:
		body = s.renderDone()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(body, cw)))
	return b.String()
}

func (s *Screen) renderRunning(cw int) string {
	label := "Uploading"
	if s.prog.Stage == up.StageProcessing {
		label = "Processing"
	}
	bar := components.ProgressBar{
		Label:       label,
		Percent:     float64(s.prog.Percent) / 100,
		ShowPercent: true,
		Width:       cw - 6,
	}
	return theme.Heading.Render(s.file.Name) + "  " + theme.Hint.Render(up.FormatSize(s.file.Size)) +
		"\n\n" + bar.View()
}

func (s *Screen) renderDone() string {
	if s.err != nil {
		return theme.Heading.Render(s.file.Name) + "\n\n" +
			theme.ErrorText.Render("Upload stopped: "+s.err.Error())
	}
	var b strings.Builder
	b.WriteString(theme.Correct.Render("✓ " + s.file.Name + " processed"))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Topics found"))
	for _, t := range s.result.Topics {
		b.WriteString("\n  • " + t)
	}
	return b.String()
}

func (s *Screen) maxBytes() int64 {
	if s.deps.MaxUploadBytes > 0 {
		return s.deps.MaxUploadBytes
	}
	return up.DefaultMaxBytes
}
