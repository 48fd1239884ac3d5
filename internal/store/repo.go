package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Descending returns the newest events first.
	Descending bool
}

// Session actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionExit     = "exit"
)

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID         string
	AssessmentID      string
	AssessmentTitle   string
	Action            string
	QuestionsTotal    int
	QuestionsAnswered int
	CorrectAnswers    int
	Score             *int // complete only
	DurationSecs      int
	Timestamp         time.Time // zero means now
}

// SessionEvent is a stored SessionEventData.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AnswerEventData captures one recorded answer of a completed session.
type AnswerEventData struct {
	SessionID    string
	AssessmentID string
	QuestionID   int
	Topic        string
	Prompt       string
	Selected     int
	CorrectIndex int
	SelectedText string
	CorrectText  string
	Correct      bool
	Timestamp    time.Time
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// Upload statuses.
const (
	UploadCompleted = "completed"
	UploadFailed    = "failed"
	UploadCancelled = "cancelled"
)

// UploadEventData captures the outcome of a study material upload.
type UploadEventData struct {
	FileName     string
	SizeBytes    int64
	MIMEType     string
	Status       string
	Topics       []string
	ErrorMessage string
	Timestamp    time.Time
}

// UploadEvent is a stored UploadEventData.
type UploadEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	UploadEventData
}

// SessionStatus is the derived outcome of a session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
	SessionExited     SessionStatus = "exited"
)

// SessionSummary folds the lifecycle events of one session.
type SessionSummary struct {
	SessionID       string
	AssessmentID    string
	AssessmentTitle string
	Status          SessionStatus
	StartedAt       time.Time
	EndedAt         time.Time
	Total           int
	Answered        int
	Correct         int
	Score           *int
	Duration        time.Duration
}

// TopicStat aggregates answers for one topic.
type TopicStat struct {
	Topic     string
	Attempted int
	Correct   int
}

// Accuracy returns Correct/Attempted in [0,1].
func (t TopicStat) Accuracy() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempted)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answer of a finished session.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendCompletion atomically records the answers of a finished session
	// together with its complete event.
	AppendCompletion(ctx context.Context, session SessionEventData, answers []AnswerEventData) error

	// AppendUploadEvent records an upload outcome.
	AppendUploadEvent(ctx context.Context, data UploadEventData) error

	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)
	QueryUploads(ctx context.Context, opts QueryOpts) ([]UploadEvent, error)

	// QuerySessionSummaries returns one summary per session, newest first.
	// limit <= 0 returns all.
	QuerySessionSummaries(ctx context.Context, limit int) ([]SessionSummary, error)

	// LatestScores returns the most recent completed score per assessment id.
	LatestScores(ctx context.Context) (map[string]int, error)

	// TopicAccuracy returns per-topic answer counts sorted by topic.
	TopicAccuracy(ctx context.Context) ([]TopicStat, error)
}
