package recommend

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screens"
	assessmentscreen "github.com/abhisek/studyhub/internal/screens/assessment"
	"github.com/abhisek/studyhub/internal/store"
)

type statsRepo struct {
	store.EventRepo
	stats []store.TopicStat
}

func (r statsRepo) TopicAccuracy(context.Context) ([]store.TopicStat, error) {
	return r.stats, nil
}

func TestScreen_Load(t *testing.T) {
	repo := statsRepo{stats: []store.TopicStat{{Topic: "Calculus", Attempted: 4, Correct: 1}}}
	s := New(screens.Deps{Catalog: catalog.Builtin(), Repo: repo})
	s.Update(s.Init()())

	if len(s.items) == 0 {
		t.Fatal("expected recommendations")
	}
	first := s.items[0]
	if first.Topic != "Calculus" || first.Priority != analytics.PriorityHigh {
		t.Errorf("first = %s/%s, want Calculus/High", first.Topic, first.Priority)
	}
	if s.View(100, 40) == "" {
		t.Error("expected non-empty view")
	}
}

func TestScreen_NoRepo(t *testing.T) {
	s := New(screens.Deps{Catalog: catalog.Builtin()})
	s.Update(s.Init()())
	for _, r := range s.items {
		if r.Kind != analytics.KindNew {
			t.Errorf("%s: kind = %s, want new topic", r.Topic, r.Kind)
		}
	}
}

func TestScreen_EnterStartsAssessment(t *testing.T) {
	s := New(screens.Deps{Catalog: catalog.Builtin()})
	s.Update(s.Init()())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
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
