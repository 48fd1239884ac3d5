package session

import (
	"time"

	"github.com/abhisek/studyhub/internal/assessment"
)

// Snapshot is an immutable view of the controller handed to the rendering
// layer after each operation.
type Snapshot struct {
	Phase           Phase
	SessionID       string
	AssessmentID    string
	AssessmentTitle string
	Topic           string
	Difficulty      assessment.Difficulty
	TimeLimit       time.Duration

	// Question is nil unless Phase is PhaseInProgress.
	Question *assessment.Question
	Index    int
	Total    int
	Answers  []int

	// Selected is the tentative option index, or -1.
	Selected int
	Progress float64

	// Set once Phase is PhaseCompleted.
	Score   int
	Correct int
	Review  []ReviewEntry

	StartedAt  time.Time
	FinishedAt time.Time
}

// HasSelection reports whether a tentative option is selected.
func (s Snapshot) HasSelection() bool { return s.Selected >= 0 }

// IsLastQuestion reports whether the current question is the final one.
func (s Snapshot) IsLastQuestion() bool {
	return s.Phase == PhaseInProgress && s.Index == s.Total-1
}

// Elapsed returns the time spent so far, or the total once complete.
func (s Snapshot) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}

// OverTime reports whether the advisory time limit has passed. Nothing acts
// on it beyond display.
func (s Snapshot) OverTime(now time.Time) bool {
	return s.TimeLimit > 0 && s.Elapsed(now) > s.TimeLimit
}
