package browse

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyhub/internal/assessment"
	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screens"
	assessmentscreen "github.com/abhisek/studyhub/internal/screens/assessment"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func loadedScreen(t *testing.T) *Screen {
	t.Helper()
	s := New(screens.Deps{Catalog: catalog.Builtin()})
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("expected catalog loaded")
	}
	return s
}

func TestScreen_Load(t *testing.T) {
	s := loadedScreen(t)
	if len(s.items) != 3 {
		t.Fatalf("items = %d, want 3", len(s.items))
	}
	if s.topics[0] != allTopics {
		t.Errorf("first topic = %q, want %q", s.topics[0], allTopics)
	}
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
	if s.Title() != "Assessments" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestScreen_TopicFilter(t *testing.T) {
	s := loadedScreen(t)

	s.Update(specialKey(tea.KeyTab))
	topic := s.topics[s.topic]
	if topic == allTopics {
		t.Fatal("expected a specific topic after Tab")
	}
	for _, a := range s.visible() {
		if a.Topic != topic {
			t.Errorf("visible %q has topic %q, want %q", a.ID, a.Topic, topic)
		}
	}
}

func TestScreen_EnterPushesAssessment(t *testing.T) {
	s := loadedScreen(t)
	s.Update(specialKey(tea.KeyDown))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*assessmentscreen.Screen); !ok {
		t.Errorf("expected assessment screen, got %T", msg.Screen)
	}
}

type failingProvider struct{}

func (failingProvider) List(context.Context) ([]assessment.Assessment, error) {
	return nil, errors.New("catalog offline")
}
func (failingProvider) Get(context.Context, string) (assessment.Assessment, error) {
	return assessment.Assessment{}, catalog.ErrNotFound
}

func TestScreen_LoadError(t *testing.T) {
	s := New(screens.Deps{Catalog: failingProvider{}})
	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Fatal("expected error message")
	}
	if s.View(80, 24) == "" {
		t.Error("expected non-empty error view")
	}
}

func TestScreen_ResumeReloads(t *testing.T) {
	s := loadedScreen(t)
	cmd := s.Resume()
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	if _, ok := cmd().(catalogLoadedMsg); !ok {
		t.Error("expected catalogLoadedMsg")
	}
}
