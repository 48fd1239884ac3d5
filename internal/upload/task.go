package upload

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/studyhub/internal/store"
)

// Stage is the phase of an upload task.
type Stage string

const (
	StageUploading  Stage = "uploading"
	StageProcessing Stage = "processing"
	StageCompleted  Stage = "completed"
)

// Step is the percentage added on every tick.
const Step = 10

// Progress is emitted on every tick.
type Progress struct {
	Stage   Stage
	Percent int
}

// PlaceholderTopics stand in for topics extracted from a document. No
// document content is analysed.
var PlaceholderTopics = []string{"Mathematics", "Algebra", "Equations", "Problem Solving"}

// Result is the outcome of a finished task.
type Result struct {
	File   File
	Topics []string
}

// Task simulates transferring and processing a file. It reports progress
// from 0 to 100 in Step increments, one per Tick, then waits Processing
// before completing.
type Task struct {
	File       File
	Tick       time.Duration
	Processing time.Duration
}

// NewTask returns a task with the default pacing.
func NewTask(f File) *Task {
	return &Task{File: f, Tick: 200 * time.Millisecond, Processing: 2 * time.Second}
}

// Run blocks until the task completes or ctx is done. emit may be nil.
func (t *Task) Run(ctx context.Context, emit func(Progress)) (Result, error) {
	if emit == nil {
		emit = func(Progress) {}
	}

	ticker := time.NewTicker(t.tick())
	defer ticker.Stop()

	for pct := 0; pct <= 100; pct += Step {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-ticker.C:
		}
		stage := StageUploading
		if pct == 100 {
			stage = StageProcessing
		}
		emit(Progress{Stage: stage, Percent: pct})
	}

	if t.Processing > 0 {
		timer := time.NewTimer(t.Processing)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}

	emit(Progress{Stage: StageCompleted, Percent: 100})
	return Result{File: t.File, Topics: append([]string(nil), PlaceholderTopics...)}, nil
}

// Update is one message of a streamed task. The final update carries Done
// and either Result or Err.
type Update struct {
	Progress Progress
	Done     bool
	Result   Result
	Err      error
}

// Stream runs the task in a goroutine and delivers updates on the returned
// channel, which is closed after the final update.
func (t *Task) Stream(ctx context.Context) <-chan Update {
	ch := make(chan Update, 1)
	go func() {
		defer close(ch)
		res, err := t.Run(ctx, func(p Progress) {
			select {
			case ch <- Update{Progress: p}:
			case <-ctx.Done():
			}
		})
		final := Update{Done: true, Result: res, Err: err}
		if err == nil {
			final.Progress = Progress{Stage: StageCompleted, Percent: 100}
		}
		// Callers drain the channel until it closes.
		ch <- final
	}()
	return ch
}

func (t *Task) tick() time.Duration {
	if t.Tick <= 0 {
		return time.Millisecond
	}
	return t.Tick
}

// EventFor maps a task outcome to a stored upload event.
func EventFor(f File, res Result, err error) store.UploadEventData {
	data := store.UploadEventData{
		FileName:  f.Name,
		SizeBytes: f.Size,
		MIMEType:  f.MIMEType,
		Status:    store.UploadCompleted,
		Topics:    res.Topics,
	}
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		data.Status = store.UploadCancelled
		data.ErrorMessage = err.Error()
	default:
		data.Status = store.UploadFailed
		data.ErrorMessage = err.Error()
	}
	return data
}
