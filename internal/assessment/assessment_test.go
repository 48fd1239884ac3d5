package assessment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAssessment() Assessment {
	return Assessment{
		ID:               "calc-basics",
		Title:            "Calculus Fundamentals",
		Topic:            "Calculus",
		Difficulty:       DifficultyMedium,
		TimeLimitMinutes: 30,
		Questions: []Question{
			{
				ID:           1,
				Prompt:       "What is the limit of (sin x)/x as x approaches 0?",
				Options:      []string{"0", "1", "inf", "Does not exist"},
				CorrectIndex: 1,
				Explanation:  "A fundamental limit.",
				Topic:        "Calculus",
				Difficulty:   DifficultyHard,
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validAssessment().Validate())
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Assessment)
		want   string
	}{
		{"missing id", func(a *Assessment) { a.ID = "" }, "ID is required"},
		{"no questions", func(a *Assessment) { a.Questions = nil }, "Questions must have at least 1"},
		{"one option", func(a *Assessment) { a.Questions[0].Options = []string{"only"}; a.Questions[0].CorrectIndex = 0 }, "Options must have at least 2"},
		{"bad difficulty", func(a *Assessment) { a.Difficulty = "Insane" }, "Difficulty must be one of"},
		{"correct out of range", func(a *Assessment) { a.Questions[0].CorrectIndex = 4 }, "correct_index 4 out of range"},
		{"duplicate question id", func(a *Assessment) { a.Questions = append(a.Questions, a.Questions[0]) }, "duplicate id 1"},
		{"score above 100", func(a *Assessment) { s := 101; a.LastScore = &s }, "LastScore must be at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssessment()
			tt.mutate(&a)
			err := a.Validate()
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, a.ID, ve.AssessmentID)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	a := validAssessment()
	c := a.Clone()
	c.Questions[0].Options[0] = "changed"
	c.Questions[0].Prompt = "changed"

	assert.Equal(t, "0", a.Questions[0].Options[0])
	assert.NotEqual(t, "changed", a.Questions[0].Prompt)
}

func TestWithResult(t *testing.T) {
	a := validAssessment()
	done := a.WithResult(67)

	assert.Equal(t, StatusAvailable, a.EffectiveStatus())
	assert.Nil(t, a.LastScore)
	assert.Equal(t, StatusCompleted, done.Status)
	require.NotNil(t, done.LastScore)
	assert.Equal(t, 67, *done.LastScore)
}

func TestParseDifficulty(t *testing.T) {
	d, ok := ParseDifficulty(" hard ")
	assert.True(t, ok)
	assert.Equal(t, DifficultyHard, d)

	_, ok = ParseDifficulty("extreme")
	assert.False(t, ok)
}

func TestQuestion_Options(t *testing.T) {
	q := validAssessment().Questions[0]
	assert.Equal(t, "1", q.CorrectOption())
	assert.True(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))
	assert.Equal(t, "", q.Option(9))
}
