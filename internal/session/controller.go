package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studyhub/internal/assessment"
	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/notify"
)

// Phase is the controller's position in the assessment lifecycle.
type Phase int

const (
	PhaseNone       Phase = iota // No session
	PhaseInProgress              // Answering questions
	PhaseCompleted               // Scored, showing review
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	}
	return "none"
}

// noSelection marks the absence of a tentative selection.
const noSelection = -1

// state is one attempt at an assessment. A fresh state is created on every
// Start and never shared.
type state struct {
	id         string
	assessment assessment.Assessment
	index      int
	answers    []int
	selected   int
	completed  bool
	score      int
	correct    int
	review     []ReviewEntry
	startedAt  time.Time
	finishedAt time.Time
}

// Controller drives a single assessment attempt. It is not safe for
// concurrent use.
type Controller struct {
	catalog catalog.Provider
	sink    notify.Sink
	now     func() time.Time
	newID   func() string

	cur *state
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides the session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// NewController creates a controller reading from provider and reporting to
// sink. A nil sink discards notifications.
func NewController(provider catalog.Provider, sink notify.Sink, opts ...Option) *Controller {
	if sink == nil {
		sink = notify.Discard
	}
	c := &Controller{
		catalog: provider,
		sink:    sink,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a new attempt at the assessment with the given id. The id is
// resolved before anything else changes, so an unknown id leaves the current
// session intact. An unfinished attempt that gets replaced is reported as
// exited.
func (c *Controller) Start(ctx context.Context, id string) error {
	a, err := c.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return &NotFoundError{ID: id}
		}
		return fmt.Errorf("load assessment %q: %w", id, err)
	}
	if len(a.Questions) == 0 {
		return fmt.Errorf("assessment %q has no questions", id)
	}

	c.exit(ctx, c.cur)
	c.cur = &state{
		id:         c.newID(),
		assessment: a,
		answers:    make([]int, 0, len(a.Questions)),
		selected:   noSelection,
		startedAt:  c.now(),
	}

	c.sink.Notify(ctx, notify.Notification{
		Kind:            notify.KindStarted,
		SessionID:       c.cur.id,
		AssessmentID:    a.ID,
		AssessmentTitle: a.Title,
		Total:           len(a.Questions),
		Time:            c.cur.startedAt,
	})
	return nil
}

// SelectOption records a tentative choice for the current question,
// replacing any earlier one.
func (c *Controller) SelectOption(i int) error {
	s, err := c.inProgress()
	if err != nil {
		return err
	}
	q := s.assessment.Questions[s.index]
	if i < 0 || i >= len(q.Options) {
		return &OptionRangeError{Index: i, Options: len(q.Options)}
	}
	s.selected = i
	return nil
}

// Advance commits the tentative selection. On the last question the session
// is scored and a completed notification is emitted.
func (c *Controller) Advance(ctx context.Context) error {
	s, err := c.inProgress()
	if err != nil {
		return err
	}
	if s.selected == noSelection {
		return ErrNoSelection
	}

	s.answers = append(s.answers, s.selected)
	s.selected = noSelection

	if s.index < len(s.assessment.Questions)-1 {
		s.index++
		return nil
	}

	s.index = len(s.assessment.Questions)
	s.completed = true
	s.finishedAt = c.now()
	s.review, s.correct = buildReview(s.assessment.Questions, s.answers)
	s.score = Score(s.correct, len(s.assessment.Questions))

	c.sink.Notify(ctx, notify.Notification{
		Kind:            notify.KindCompleted,
		SessionID:       s.id,
		AssessmentID:    s.assessment.ID,
		AssessmentTitle: s.assessment.Title,
		Score:           s.score,
		Correct:         s.correct,
		Total:           len(s.assessment.Questions),
		Answered:        len(s.answers),
		Review:          reviewItems(s.review),
		Duration:        s.finishedAt.Sub(s.startedAt),
		Time:            s.finishedAt,
	})
	return nil
}

// Reset discards the session. Leaving an unfinished attempt emits an exited
// notification. Reset on an empty controller does nothing.
func (c *Controller) Reset() {
	s := c.cur
	c.cur = nil
	c.exit(context.Background(), s)
}

// exit reports an abandoned attempt. Completed or absent sessions are ignored.
func (c *Controller) exit(ctx context.Context, s *state) {
	if s == nil || s.completed {
		return
	}
	now := c.now()
	c.sink.Notify(ctx, notify.Notification{
		Kind:            notify.KindExited,
		SessionID:       s.id,
		AssessmentID:    s.assessment.ID,
		AssessmentTitle: s.assessment.Title,
		Total:           len(s.assessment.Questions),
		Answered:        len(s.answers),
		Duration:        now.Sub(s.startedAt),
		Time:            now,
	})
}

func (c *Controller) inProgress() (*state, error) {
	switch {
	case c.cur == nil:
		return nil, ErrNoSession
	case c.cur.completed:
		return nil, ErrSessionComplete
	}
	return c.cur, nil
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	switch {
	case c.cur == nil:
		return PhaseNone
	case c.cur.completed:
		return PhaseCompleted
	}
	return PhaseInProgress
}

// CurrentQuestion returns the question being answered.
func (c *Controller) CurrentQuestion() (assessment.Question, bool) {
	if c.Phase() != PhaseInProgress {
		return assessment.Question{}, false
	}
	return c.cur.assessment.Questions[c.cur.index], true
}

// Progress returns (index+1)/total, or 1 once complete and 0 with no session.
func (c *Controller) Progress() float64 {
	switch c.Phase() {
	case PhaseNone:
		return 0
	case PhaseCompleted:
		return 1
	}
	return float64(c.cur.index+1) / float64(len(c.cur.assessment.Questions))
}

// IsComplete reports whether the current session has been scored.
func (c *Controller) IsComplete() bool {
	return c.Phase() == PhaseCompleted
}

// FinalScore returns the score of a completed session.
func (c *Controller) FinalScore() (int, bool) {
	if !c.IsComplete() {
		return 0, false
	}
	return c.cur.score, true
}

// Review returns the per-question review of a completed session.
func (c *Controller) Review() []ReviewEntry {
	if !c.IsComplete() {
		return nil
	}
	return append([]ReviewEntry(nil), c.cur.review...)
}

// Snapshot returns a read-only copy of the session for rendering.
func (c *Controller) Snapshot() Snapshot {
	s := c.cur
	if s == nil {
		return Snapshot{Phase: PhaseNone, Selected: noSelection}
	}
	snap := Snapshot{
		Phase:           c.Phase(),
		SessionID:       s.id,
		AssessmentID:    s.assessment.ID,
		AssessmentTitle: s.assessment.Title,
		Topic:           s.assessment.Topic,
		Difficulty:      s.assessment.Difficulty,
		TimeLimit:       time.Duration(s.assessment.TimeLimitMinutes) * time.Minute,
		Index:           s.index,
		Total:           len(s.assessment.Questions),
		Answers:         append([]int(nil), s.answers...),
		Selected:        s.selected,
		Progress:        c.Progress(),
		StartedAt:       s.startedAt,
	}
	if q, ok := c.CurrentQuestion(); ok {
		q.Options = append([]string(nil), q.Options...)
		snap.Question = &q
	}
	if s.completed {
		snap.Score = s.score
		snap.Correct = s.correct
		snap.Review = c.Review()
		snap.FinishedAt = s.finishedAt
	}
	return snap
}

func reviewItems(entries []ReviewEntry) []notify.ReviewItem {
	items := make([]notify.ReviewItem, len(entries))
	for i, e := range entries {
		items[i] = notify.ReviewItem{
			Position:      e.Position,
			QuestionID:    e.Question.ID,
			Topic:         e.Question.Topic,
			Prompt:        e.Question.Prompt,
			Selected:      e.Selected,
			CorrectIndex:  e.CorrectIndex,
			Correct:       e.IsCorrect,
			SelectedText:  e.SelectedText(),
			CorrectAnswer: e.CorrectText(),
		}
	}
	return items
}
