package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Kind identifies what happened.
type Kind string

const (
	KindStarted         Kind = "started"
	KindCompleted       Kind = "completed"
	KindExited          Kind = "exited"
	KindUploadCompleted Kind = "upload-completed"
)

// ReviewItem is the per-question outcome carried by a completed notification.
type ReviewItem struct {
	Position      int
	QuestionID    int
	Topic         string
	Prompt        string
	Selected      int
	CorrectIndex  int
	Correct       bool
	SelectedText  string
	CorrectAnswer string
}

// Notification is a transient status message for the learner. Fields not
// relevant to a Kind are left zero.
type Notification struct {
	Kind            Kind
	SessionID       string
	AssessmentID    string
	AssessmentTitle string
	Score           int
	Correct         int
	Total           int
	Answered        int
	Review          []ReviewItem
	Duration        time.Duration
	FileName        string
	Time            time.Time
}

// Title returns a short headline suitable for a toast.
func (n Notification) Title() string {
	switch n.Kind {
	case KindStarted:
		return "Assessment Started"
	case KindCompleted:
		return "Assessment Completed!"
	case KindExited:
		return "Assessment Exited"
	case KindUploadCompleted:
		return "File processed"
	}
	return string(n.Kind)
}

// Message returns the toast body.
func (n Notification) Message() string {
	switch n.Kind {
	case KindStarted:
		return "Good luck! Take your time and read each question carefully."
	case KindCompleted:
		return fmt.Sprintf("You scored %d%% (%d/%d)", n.Score, n.Correct, n.Total)
	case KindExited:
		return fmt.Sprintf("Left %s after %d of %d questions", n.AssessmentTitle, n.Answered, n.Total)
	case KindUploadCompleted:
		return fmt.Sprintf("%s is ready", n.FileName)
	}
	return ""
}

// Sink receives notifications. Delivery is fire-and-forget: a sink must not
// block the caller for long and has no way to report failure back.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, n Notification)

func (f SinkFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Discard drops every notification.
var Discard Sink = SinkFunc(func(context.Context, Notification) {})

// Multi fans a notification out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return SinkFunc(func(ctx context.Context, n Notification) {
		for _, s := range live {
			s.Notify(ctx, n)
		}
	})
}

// NewLogSink logs each notification at info level.
func NewLogSink(log zerolog.Logger) Sink {
	return SinkFunc(func(_ context.Context, n Notification) {
		ev := log.Info().
			Str("kind", string(n.Kind)).
			Str("session_id", n.SessionID).
			Str("assessment_id", n.AssessmentID)
		switch n.Kind {
		case KindCompleted:
			ev = ev.Int("score", n.Score).Int("correct", n.Correct).Int("total", n.Total).
				Dur("duration", n.Duration)
		case KindExited:
			ev = ev.Int("answered", n.Answered).Int("total", n.Total)
		case KindUploadCompleted:
			ev = ev.Str("file", n.FileName)
		}
		ev.Msg(n.Title())
	})
}

// Recorder keeps every notification in memory. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Drain returns and clears the recorded notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}
