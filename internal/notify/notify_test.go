package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		n     Notification
		title string
		msg   string
	}{
		{Notification{Kind: KindStarted}, "Assessment Started", "Good luck! Take your time and read each question carefully."},
		{Notification{Kind: KindCompleted, Score: 67, Correct: 2, Total: 3}, "Assessment Completed!", "You scored 67% (2/3)"},
		{Notification{Kind: KindExited, AssessmentTitle: "Quiz", Answered: 1, Total: 3}, "Assessment Exited", "Left Quiz after 1 of 3 questions"},
		{Notification{Kind: KindUploadCompleted, FileName: "notes.pdf"}, "File processed", "notes.pdf is ready"},
	}
	for _, tt := range tests {
		t.Run(string(tt.n.Kind), func(t *testing.T) {
			assert.Equal(t, tt.title, tt.n.Title())
			assert.Equal(t, tt.msg, tt.n.Message())
		})
	}
}

func TestMulti_SkipsNilAndPreservesOrder(t *testing.T) {
	var order []string
	a := SinkFunc(func(context.Context, Notification) { order = append(order, "a") })
	b := SinkFunc(func(context.Context, Notification) { order = append(order, "b") })

	Multi(a, nil, b).Notify(context.Background(), Notification{Kind: KindStarted})
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_, ok := r.Last()
	assert.False(t, ok)

	ctx := context.Background()
	r.Notify(ctx, Notification{Kind: KindStarted})
	r.Notify(ctx, Notification{Kind: KindCompleted, Score: 100})

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, 100, last.Score)
	assert.Len(t, r.All(), 2)

	drained := r.Drain()
	assert.Len(t, drained, 2)
	assert.Empty(t, r.All())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	sink.Notify(context.Background(), Notification{
		Kind:         KindCompleted,
		SessionID:    "s-1",
		AssessmentID: "calc-basics",
		Score:        67,
		Correct:      2,
		Total:        3,
	})

	out := buf.String()
	assert.Contains(t, out, `"kind":"completed"`)
	assert.Contains(t, out, `"score":67`)
	assert.Contains(t, out, `"message":"Assessment Completed!"`)
}
