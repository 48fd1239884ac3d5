package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyhub/internal/router"
	"github.com/abhisek/studyhub/internal/store"
)

type fakeSource struct {
	sessions []store.SessionSummary
	stats    []store.TopicStat
	err      error
}

func (f fakeSource) QuerySessionSummaries(context.Context, int) ([]store.SessionSummary, error) {
	return f.sessions, f.err
}
func (f fakeSource) TopicAccuracy(context.Context) ([]store.TopicStat, error) {
	return f.stats, nil
}
func (f fakeSource) QueryUploads(context.Context, store.QueryOpts) ([]store.UploadEvent, error) {
	return nil, nil
}

var now = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func TestScreen_Load(t *testing.T) {
	score := 80
	src := fakeSource{
		sessions: []store.SessionSummary{{
			SessionID: "s1", AssessmentID: "calc", AssessmentTitle: "Calculus",
			Status: store.SessionCompleted, Score: &score,
			StartedAt: now.Add(-time.Hour), EndedAt: now.Add(-50 * time.Minute), Duration: 10 * time.Minute,
		}},
		stats: []store.TopicStat{{Topic: "Calculus", Attempted: 5, Correct: 4}},
	}
	s := New(src, clock)
	if s.View(80, 24) == "" {
		t.Error("expected loading view")
	}

	s.Update(s.Init()())
	if s.dash == nil {
		t.Fatal("expected dashboard")
	}
	if s.dash.AverageScore != 80 {
		t.Errorf("AverageScore = %d, want 80", s.dash.AverageScore)
	}
	if s.View(100, 40) == "" {
		t.Error("expected non-empty view")
	}
}

func TestScreen_Error(t *testing.T) {
	s := New(fakeSource{err: errors.New("boom")}, clock)
	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Error("expected error message")
	}
}

func TestScreen_Keys(t *testing.T) {
	s := New(fakeSource{}, clock)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd == nil {
		t.Error("expected refresh command")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestFormatting(t *testing.T) {
	if got := formatStudyTime(95 * time.Minute); got != "1h 35m" {
		t.Errorf("formatStudyTime = %q", got)
	}
	if got := formatStudyTime(5 * time.Minute); got != "5m" {
		t.Errorf("formatStudyTime = %q", got)
	}
	if got := ago(3 * time.Hour); got != "3h ago" {
		t.Errorf("ago = %q", got)
	}
}

func TestRenderWeek(t *testing.T) {
	if renderWeek(nil) == "" {
		t.Error("expected heading for empty week")
	}
}
