package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyhub/internal/assessment"
	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/notify"
)

func question(id, correct int) assessment.Question {
	return assessment.Question{
		ID:           id,
		Prompt:       "prompt",
		Options:      []string{"a", "b", "c"},
		CorrectIndex: correct,
		Explanation:  "because",
		Topic:        "Topic",
		Difficulty:   assessment.DifficultyEasy,
	}
}

func testCatalog(t *testing.T) *catalog.Static {
	t.Helper()
	c, err := catalog.NewStatic([]assessment.Assessment{
		{
			ID:               "three",
			Title:            "Three",
			Topic:            "Topic",
			Difficulty:       assessment.DifficultyMedium,
			TimeLimitMinutes: 10,
			Questions:        []assessment.Question{question(1, 0), question(2, 1), question(3, 1)},
		},
		{
			ID:         "one",
			Title:      "One",
			Topic:      "Topic",
			Difficulty: assessment.DifficultyEasy,
			Questions:  []assessment.Question{question(1, 1)},
		},
	})
	require.NoError(t, err)
	return c
}

type fixture struct {
	ctrl *Controller
	rec  *notify.Recorder
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{rec: &notify.Recorder{}, now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	ids := 0
	f.ctrl = NewController(testCatalog(t), f.rec,
		WithClock(func() time.Time { return f.now }),
		WithIDGenerator(func() string {
			ids++
			return []string{"s-1", "s-2", "s-3"}[ids-1]
		}),
	)
	return f
}

func answerAll(t *testing.T, c *Controller, answers ...int) {
	t.Helper()
	for _, a := range answers {
		require.NoError(t, c.SelectOption(a))
		require.NoError(t, c.Advance(context.Background()))
	}
}

func TestStart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Start(context.Background(), "three"))

	assert.Equal(t, PhaseInProgress, f.ctrl.Phase())
	q, ok := f.ctrl.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
	assert.InDelta(t, 1.0/3.0, f.ctrl.Progress(), 1e-9)

	snap := f.ctrl.Snapshot()
	assert.Equal(t, "s-1", snap.SessionID)
	assert.Equal(t, 0, snap.Index)
	assert.Empty(t, snap.Answers)
	assert.False(t, snap.HasSelection())
	assert.Equal(t, 10*time.Minute, snap.TimeLimit)

	n, ok := f.rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.KindStarted, n.Kind)
	assert.Equal(t, "three", n.AssessmentID)
	assert.Equal(t, 3, n.Total)
}

func TestScenario_TwoOfThree(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Start(context.Background(), "three"))
	answerAll(t, f.ctrl, 0, 1, 0)

	assert.True(t, f.ctrl.IsComplete())
	score, ok := f.ctrl.FinalScore()
	require.True(t, ok)
	assert.Equal(t, 67, score)

	review := f.ctrl.Review()
	require.Len(t, review, 3)
	assert.True(t, review[0].IsCorrect)
	assert.True(t, review[1].IsCorrect)
	assert.False(t, review[2].IsCorrect)
	assert.Equal(t, 0, review[2].Selected)
	assert.Equal(t, 1, review[2].CorrectIndex)
	assert.Equal(t, "because", review[2].Explanation)

	n, ok := f.rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.KindCompleted, n.Kind)
	assert.Equal(t, 67, n.Score)
	assert.Equal(t, 2, n.Correct)
	assert.Equal(t, 3, n.Total)
	assert.Len(t, n.Review, 3)
	assert.Equal(t, "You scored 67% (2/3)", n.Message())
}

func TestScenario_SingleCorrect(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.Start(context.Background(), "one"))
	answerAll(t, f.ctrl, 1)

	score, ok := f.ctrl.FinalScore()
	require.True(t, ok)
	assert.Equal(t, 100, score)
	review := f.ctrl.Review()
	require.Len(t, review, 1)
	assert.True(t, review[0].IsCorrect)
	assert.Equal(t, "b", review[0].SelectedText())
	assert.Equal(t, 1.0, f.ctrl.Progress())
}

func TestStart_UnknownIDKeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "three"))
	answerAll(t, f.ctrl, 0)
	before := f.ctrl.Snapshot()

	err := f.ctrl.Start(ctx, "missing")
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing", nf.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	assert.Equal(t, before, f.ctrl.Snapshot())
	assert.Len(t, f.rec.All(), 1)
}

func TestStart_DiscardsPreviousSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "three"))
	answerAll(t, f.ctrl, 0, 1)

	require.NoError(t, f.ctrl.Start(ctx, "one"))
	snap := f.ctrl.Snapshot()
	assert.Equal(t, "one", snap.AssessmentID)
	assert.Equal(t, "s-2", snap.SessionID)
	assert.Equal(t, 0, snap.Index)
	assert.Empty(t, snap.Answers)

	got := f.rec.All()
	require.Len(t, got, 3)
	assert.Equal(t, notify.KindExited, got[1].Kind)
	assert.Equal(t, "s-1", got[1].SessionID)
	assert.Equal(t, 2, got[1].Answered)
	assert.Equal(t, notify.KindStarted, got[2].Kind)
}

func TestStart_AfterCompletionIsSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "one"))
	answerAll(t, f.ctrl, 1)
	require.NoError(t, f.ctrl.Start(ctx, "one"))

	var kinds []notify.Kind
	for _, n := range f.rec.All() {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []notify.Kind{notify.KindStarted, notify.KindCompleted, notify.KindStarted}, kinds)
}

func TestAdvance_WithoutSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "three"))
	answerAll(t, f.ctrl, 0)

	err := f.ctrl.Advance(ctx)
	assert.ErrorIs(t, err, ErrNoSelection)

	snap := f.ctrl.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.Equal(t, []int{0}, snap.Answers)
}

func TestSelectOption_Overwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "one"))

	require.NoError(t, f.ctrl.SelectOption(0))
	require.NoError(t, f.ctrl.SelectOption(1))
	assert.Equal(t, 1, f.ctrl.Snapshot().Selected)
	assert.Empty(t, f.ctrl.Snapshot().Answers)

	require.NoError(t, f.ctrl.Advance(ctx))
	assert.Equal(t, []int{1}, f.ctrl.Snapshot().Answers)
}

func TestSelectOption_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.ctrl.SelectOption(0), ErrNoSession)
	assert.ErrorIs(t, f.ctrl.Advance(ctx), ErrNoSession)

	require.NoError(t, f.ctrl.Start(ctx, "one"))
	for _, i := range []int{-1, 3} {
		err := f.ctrl.SelectOption(i)
		var re *OptionRangeError
		require.True(t, errors.As(err, &re), "index %d", i)
		assert.Equal(t, 3, re.Options)
	}

	answerAll(t, f.ctrl, 1)
	assert.ErrorIs(t, f.ctrl.SelectOption(0), ErrSessionComplete)
	assert.ErrorIs(t, f.ctrl.Advance(ctx), ErrSessionComplete)
}

func TestReset(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, c *Controller)
		wantExited bool
	}{
		{"no session", func(*testing.T, *Controller) {}, false},
		{"in progress", func(t *testing.T, c *Controller) {
			require.NoError(t, c.Start(context.Background(), "three"))
			answerAll(t, c, 0)
		}, true},
		{"completed", func(t *testing.T, c *Controller) {
			require.NoError(t, c.Start(context.Background(), "one"))
			answerAll(t, c, 1)
		}, false},
	}

	fresh := newFixture(t).ctrl.Snapshot()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f.ctrl)
			f.rec.Drain()

			f.ctrl.Reset()
			assert.Equal(t, fresh, f.ctrl.Snapshot())
			assert.Equal(t, PhaseNone, f.ctrl.Phase())
			_, ok := f.ctrl.FinalScore()
			assert.False(t, ok)
			assert.Nil(t, f.ctrl.Review())

			f.ctrl.Reset()
			assert.Equal(t, fresh, f.ctrl.Snapshot())

			got := f.rec.All()
			if tt.wantExited {
				require.Len(t, got, 1)
				assert.Equal(t, notify.KindExited, got[0].Kind)
				assert.Equal(t, 1, got[0].Answered)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestCompletedDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "one"))
	f.now = f.now.Add(90 * time.Second)
	answerAll(t, f.ctrl, 0)

	n, _ := f.rec.Last()
	assert.Equal(t, 90*time.Second, n.Duration)
	assert.Equal(t, 0, n.Score)
	assert.Equal(t, 90*time.Second, f.ctrl.Snapshot().Elapsed(f.now.Add(time.Hour)))
}

type brokenProvider struct{}

func (brokenProvider) List(context.Context) ([]assessment.Assessment, error) { return nil, nil }
func (brokenProvider) Get(context.Context, string) (assessment.Assessment, error) {
	return assessment.Assessment{}, errors.New("disk gone")
}

func TestStart_ProviderError(t *testing.T) {
	c := NewController(brokenProvider{}, nil)
	err := c.Start(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, catalog.ErrNotFound)
	assert.Contains(t, err.Error(), "disk gone")
}
