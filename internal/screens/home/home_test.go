package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/screens"
	"github.com/abhisek/studyhub/internal/screens/browse"
	"github.com/abhisek/studyhub/internal/store"
)

type emptyRepo struct {
	store.EventRepo
}

func (emptyRepo) QuerySessionSummaries(context.Context, int) ([]store.SessionSummary, error) {
	return nil, nil
}
func (emptyRepo) TopicAccuracy(context.Context) ([]store.TopicStat, error) { return nil, nil }
func (emptyRepo) QueryUploads(context.Context, store.QueryOpts) ([]store.UploadEvent, error) {
	return nil, nil
}

func TestHomeScreen_MenuWithoutRepo(t *testing.T) {
	h := New(screens.Deps{Catalog: catalog.Builtin()})
	want := []string{"ASSESSMENTS", "UPLOAD MATERIAL", "RECOMMENDATIONS", "EXIT"}
	if len(h.menuLabels) != len(want) {
		t.Fatalf("labels = %v, want %v", h.menuLabels, want)
	}
	if h.Init() != nil {
		t.Error("expected no stats load without a repo")
	}
	if h.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
}

func TestHomeScreen_MenuWithRepo(t *testing.T) {
	h := New(screens.Deps{Catalog: catalog.Builtin(), Repo: emptyRepo{}})
	if len(h.menuLabels) != 6 {
		t.Fatalf("labels = %v, want 6 items", h.menuLabels)
	}

	h.Update(h.Init()())
	if h.stats == nil {
		t.Fatal("expected stats loaded")
	}
	if h.View(120, 40) == "" {
		t.Error("expected non-empty view")
	}
}

func TestHomeScreen_EnterOpensAssessments(t *testing.T) {
	h := New(screens.Deps{Catalog: catalog.Builtin()})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*browse.Screen); !ok {
		t.Errorf("expected browse screen, got %T", msg.Screen)
	}
}
