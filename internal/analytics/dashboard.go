package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/studyhub/internal/session"
	"github.com/abhisek/studyhub/internal/store"
)

// Source is the subset of the event store the dashboard reads.
type Source interface {
	QuerySessionSummaries(ctx context.Context, limit int) ([]store.SessionSummary, error)
	TopicAccuracy(ctx context.Context) ([]store.TopicStat, error)
	QueryUploads(ctx context.Context, opts store.QueryOpts) ([]store.UploadEvent, error)
}

// TopicProgress is the answer accuracy for one topic.
type TopicProgress struct {
	Topic     string
	Percent   int
	Attempted int
	Correct   int
}

// DayActivity aggregates one calendar day.
type DayActivity struct {
	Day       time.Time
	StudyTime time.Duration
	Completed int
}

// Label returns the short weekday name.
func (d DayActivity) Label() string { return d.Day.Format("Mon") }

// ActivityKind classifies a recent activity row.
type ActivityKind string

const (
	ActivityCompleted ActivityKind = "completed"
	ActivityExited    ActivityKind = "exited"
	ActivityUpload    ActivityKind = "upload"
)

// Activity is one row of the recent activity feed.
type Activity struct {
	Time        time.Time
	Kind        ActivityKind
	Description string
	Score       *int
}

// Dashboard is the computed analytics view.
type Dashboard struct {
	Attempts             int // completed sessions
	Exited               int
	AverageScore         int
	BestScore            int
	CompletedAssessments int // distinct assessments with a completed attempt
	TotalStudyTime       time.Duration
	DocumentsProcessed   int
	TopicProgress        []TopicProgress
	Week                 []DayActivity // oldest first, ending today
	Recent               []Activity    // newest first
}

// RecentLimit caps the recent activity feed.
const RecentLimit = 5

// Build computes the dashboard as of now.
func Build(ctx context.Context, src Source, now time.Time) (*Dashboard, error) {
	sessions, err := src.QuerySessionSummaries(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	stats, err := src.TopicAccuracy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load topic accuracy: %w", err)
	}
	uploads, err := src.QueryUploads(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("load uploads: %w", err)
	}

	d := &Dashboard{Week: lastSevenDays(now)}

	sum := 0
	distinct := make(map[string]bool)
	var recent []Activity
	for _, s := range sessions {
		d.TotalStudyTime += s.Duration
		addToWeek(d.Week, s)

		switch s.Status {
		case store.SessionCompleted:
			d.Attempts++
			distinct[s.AssessmentID] = true
			score := 0
			if s.Score != nil {
				score = *s.Score
			}
			sum += score
			d.BestScore = max(d.BestScore, score)
			recent = append(recent, Activity{
				Time:        s.EndedAt,
				Kind:        ActivityCompleted,
				Description: "Completed " + titleOf(s),
				Score:       s.Score,
			})
		case store.SessionExited:
			d.Exited++
			recent = append(recent, Activity{
				Time:        s.EndedAt,
				Kind:        ActivityExited,
				Description: fmt.Sprintf("Left %s after %d of %d", titleOf(s), s.Answered, s.Total),
			})
		}
	}
	if d.Attempts > 0 {
		d.AverageScore = session.Score(sum, 100*d.Attempts)
	}
	d.CompletedAssessments = len(distinct)

	for _, u := range uploads {
		if u.Status != store.UploadCompleted {
			continue
		}
		d.DocumentsProcessed++
		recent = append(recent, Activity{
			Time:        u.Timestamp,
			Kind:        ActivityUpload,
			Description: "Uploaded " + u.FileName,
		})
	}

	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Time.After(recent[j].Time) })
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	d.Recent = recent

	d.TopicProgress = topicProgress(stats)
	return d, nil
}

// topicProgress converts stats to percentages, strongest first.
func topicProgress(stats []store.TopicStat) []TopicProgress {
	out := make([]TopicProgress, 0, len(stats))
	for _, st := range stats {
		out = append(out, TopicProgress{
			Topic:     st.Topic,
			Percent:   session.Score(st.Correct, st.Attempted),
			Attempted: st.Attempted,
			Correct:   st.Correct,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent > out[j].Percent
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

func lastSevenDays(now time.Time) []DayActivity {
	today := startOfDay(now)
	week := make([]DayActivity, 7)
	for i := range week {
		week[i].Day = today.AddDate(0, 0, i-6)
	}
	return week
}

func addToWeek(week []DayActivity, s store.SessionSummary) {
	at := s.EndedAt
	if at.IsZero() {
		at = s.StartedAt
	}
	day := startOfDay(at.In(week[0].Day.Location()))
	for i := range week {
		if week[i].Day.Equal(day) {
			week[i].StudyTime += s.Duration
			if s.Status == store.SessionCompleted {
				week[i].Completed++
			}
			return
		}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func titleOf(s store.SessionSummary) string {
	if s.AssessmentTitle != "" {
		return s.AssessmentTitle
	}
	return s.AssessmentID
}
