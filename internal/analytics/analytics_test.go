package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/store"
)

type fakeSource struct {
	sessions []store.SessionSummary
	stats    []store.TopicStat
	uploads  []store.UploadEvent
	err      error
}

func (f fakeSource) QuerySessionSummaries(context.Context, int) ([]store.SessionSummary, error) {
	return f.sessions, f.err
}

func (f fakeSource) TopicAccuracy(context.Context) ([]store.TopicStat, error) {
	return f.stats, nil
}

func (f fakeSource) QueryUploads(context.Context, store.QueryOpts) ([]store.UploadEvent, error) {
	return f.uploads, nil
}

func intp(v int) *int { return &v }

func TestBuild(t *testing.T) {
	now := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	src := fakeSource{
		sessions: []store.SessionSummary{
			{SessionID: "3", AssessmentID: "calc", AssessmentTitle: "Calc", Status: store.SessionCompleted,
				Score: intp(100), EndedAt: now.Add(-1 * time.Hour), Duration: 10 * time.Minute},
			{SessionID: "2", AssessmentID: "la", AssessmentTitle: "LA", Status: store.SessionExited,
				Answered: 1, Total: 3, EndedAt: now.Add(-26 * time.Hour), Duration: 5 * time.Minute},
			{SessionID: "1", AssessmentID: "calc", Status: store.SessionCompleted,
				Score: intp(67), EndedAt: now.Add(-30 * 24 * time.Hour), Duration: 20 * time.Minute},
		},
		stats: []store.TopicStat{
			{Topic: "Algebra", Attempted: 4, Correct: 1},
			{Topic: "Calculus", Attempted: 3, Correct: 3},
		},
		uploads: []store.UploadEvent{
			{Timestamp: now.Add(-2 * time.Hour), UploadEventData: store.UploadEventData{FileName: "notes.pdf", Status: store.UploadCompleted}},
			{Timestamp: now.Add(-3 * time.Hour), UploadEventData: store.UploadEventData{FileName: "bad.txt", Status: store.UploadFailed}},
		},
	}

	d, err := Build(context.Background(), src, now)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Attempts)
	assert.Equal(t, 1, d.Exited)
	assert.Equal(t, 84, d.AverageScore) // (100+67)/2 = 83.5
	assert.Equal(t, 100, d.BestScore)
	assert.Equal(t, 1, d.CompletedAssessments)
	assert.Equal(t, 35*time.Minute, d.TotalStudyTime)
	assert.Equal(t, 1, d.DocumentsProcessed)

	require.Len(t, d.TopicProgress, 2)
	assert.Equal(t, TopicProgress{Topic: "Calculus", Percent: 100, Attempted: 3, Correct: 3}, d.TopicProgress[0])
	assert.Equal(t, 25, d.TopicProgress[1].Percent)

	require.Len(t, d.Week, 7)
	assert.Equal(t, "Sun", d.Week[6].Label())
	assert.Equal(t, 10*time.Minute, d.Week[6].StudyTime)
	assert.Equal(t, 1, d.Week[6].Completed)
	assert.Equal(t, 5*time.Minute, d.Week[5].StudyTime)
	assert.Equal(t, 0, d.Week[5].Completed)

	require.Len(t, d.Recent, 4)
	assert.Equal(t, "Completed Calc", d.Recent[0].Description)
	assert.Equal(t, "Uploaded notes.pdf", d.Recent[1].Description)
	assert.Equal(t, "Left LA after 1 of 3", d.Recent[2].Description)
	assert.Equal(t, "Completed calc", d.Recent[3].Description)
}

func TestBuild_Empty(t *testing.T) {
	d, err := Build(context.Background(), fakeSource{}, time.Now())
	require.NoError(t, err)
	assert.Zero(t, d.Attempts)
	assert.Zero(t, d.AverageScore)
	assert.Empty(t, d.Recent)
	assert.Len(t, d.Week, 7)
}

func TestBuild_Error(t *testing.T) {
	_, err := Build(context.Background(), fakeSource{err: errors.New("boom")}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load sessions")
}

func TestRecommend(t *testing.T) {
	items, err := catalog.Builtin().List(context.Background())
	require.NoError(t, err)

	stats := []store.TopicStat{
		{Topic: "Calculus", Attempted: 10, Correct: 5},
		{Topic: "Geometry", Attempted: 4, Correct: 3},
		{Topic: "Statistics", Attempted: 2, Correct: 2},
		{Topic: "Unused", Attempted: 0},
	}
	recs := Recommend(stats, items)
	require.Len(t, recs, 4)

	assert.Equal(t, KindFocus, recs[0].Kind)
	assert.Equal(t, "Calculus", recs[0].Topic)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "calc-basics", recs[0].AssessmentID)
	assert.Equal(t, 30*time.Minute, recs[0].EstimatedTime)
	assert.Equal(t, 50, recs[0].Accuracy)

	assert.Equal(t, KindPractice, recs[1].Kind)
	assert.Equal(t, "Geometry", recs[1].Topic)
	assert.Empty(t, recs[1].AssessmentID)
	assert.Equal(t, defaultStudyTime, recs[1].EstimatedTime)

	assert.Equal(t, KindMaintain, recs[2].Kind)
	assert.Equal(t, "Statistics", recs[2].Topic)

	assert.Equal(t, KindNew, recs[3].Kind)
	assert.Equal(t, "Linear Algebra", recs[3].Topic)
	assert.Equal(t, "linear-algebra", recs[3].AssessmentID)
	assert.Equal(t, 20*time.Minute, recs[3].EstimatedTime)
}

func TestRecommend_Thresholds(t *testing.T) {
	tests := []struct {
		correct, attempted int
		want               Kind
	}{
		{59, 100, KindFocus},
		{60, 100, KindPractice},
		{84, 100, KindPractice},
		{85, 100, KindMaintain},
		{100, 100, KindMaintain},
	}
	for _, tt := range tests {
		recs := Recommend([]store.TopicStat{{Topic: "T", Attempted: tt.attempted, Correct: tt.correct}}, nil)
		require.Len(t, recs, 1)
		assert.Equal(t, tt.want, recs[0].Kind, "%d/%d", tt.correct, tt.attempted)
	}
}

func TestStudyTips(t *testing.T) {
	assert.Len(t, StudyTips, 4)
	assert.Equal(t, "Memory", StudyTips[1].Category)
}
