package assessment

import "strings"

// Difficulty is the coarse difficulty label shown next to assessments and questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty maps a case-insensitive label to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	}
	return "", false
}

// Status is the lifecycle status of an assessment as seen by the learner.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Question is a single multiple-choice question. Questions are immutable
// once they are part of a catalog.
type Question struct {
	ID           int        `json:"id" yaml:"id" validate:"gt=0"`
	Prompt       string     `json:"prompt" yaml:"prompt" validate:"required"`
	Options      []string   `json:"options" yaml:"options" validate:"min=2,dive,required"`
	CorrectIndex int        `json:"correct_index" yaml:"correct_index" validate:"gte=0"`
	Explanation  string     `json:"explanation" yaml:"explanation"`
	Topic        string     `json:"topic" yaml:"topic" validate:"required"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty" validate:"oneof=Easy Medium Hard"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Option returns the text of option i, or "" if i is out of range.
func (q Question) Option(i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	return q.Options[i]
}

// IsCorrect reports whether option index i is the correct answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// Assessment is a named, ordered quiz.
type Assessment struct {
	ID         string     `json:"id" yaml:"id" validate:"required"`
	Title      string     `json:"title" yaml:"title" validate:"required"`
	Topic      string     `json:"topic" yaml:"topic" validate:"required"`
	Questions  []Question `json:"questions" yaml:"questions" validate:"min=1,dive"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" validate:"oneof=Easy Medium Hard"`

	// TimeLimitMinutes is advisory and displayed only. Nothing enforces it.
	TimeLimitMinutes int `json:"time_limit_minutes" yaml:"time_limit_minutes" validate:"gte=0"`

	Status    Status `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=available in-progress completed"`
	LastScore *int   `json:"last_score,omitempty" yaml:"last_score,omitempty" validate:"omitempty,min=0,max=100"`
}

// QuestionCount returns the number of questions.
func (a Assessment) QuestionCount() int {
	return len(a.Questions)
}

// Clone returns a deep copy so callers cannot mutate catalog data.
func (a Assessment) Clone() Assessment {
	out := a
	out.Questions = make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	if a.LastScore != nil {
		s := *a.LastScore
		out.LastScore = &s
	}
	return out
}

// WithResult returns a copy marked completed with the given score.
func (a Assessment) WithResult(score int) Assessment {
	out := a.Clone()
	out.Status = StatusCompleted
	out.LastScore = &score
	return out
}

// EffectiveStatus returns Status, defaulting to available.
func (a Assessment) EffectiveStatus() Status {
	if a.Status == "" {
		return StatusAvailable
	}
	return a.Status
}
