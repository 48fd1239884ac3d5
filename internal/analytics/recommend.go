package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/studyhub/internal/assessment"
	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/session"
	"github.com/abhisek/studyhub/internal/store"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	}
	return 2
}

// Kind labels a recommendation.
type Kind string

const (
	KindFocus    Kind = "Focus Area"
	KindPractice Kind = "Practice"
	KindMaintain Kind = "Maintain"
	KindNew      Kind = "New Topic"
)

// Accuracy thresholds in percent.
const (
	FocusBelow    = 60
	MaintainAbove = 85
)

// defaultStudyTime is used when no assessment covers a topic.
const defaultStudyTime = 30 * time.Minute

// Recommendation suggests what to study next.
type Recommendation struct {
	Kind          Kind
	Priority      Priority
	Topic         string
	Title         string
	Description   string
	Accuracy      int  // percent; 0 for new topics
	Attempted     bool // false for new topics
	AssessmentID  string
	EstimatedTime time.Duration
}

// Tip is a general study tip.
type Tip struct {
	Category string
	Text     string
}

// StudyTips are shown alongside recommendations.
var StudyTips = []Tip{
	{"Productivity", "Take a 10-minute break between study sessions"},
	{"Memory", "Review material within 24 hours for better retention"},
	{"Learning", "Use active recall instead of passive reading"},
	{"Organization", "Create visual mind maps for complex topics"},
}

// Recommend ranks topics by need. Attempted topics are classified by
// accuracy; catalog topics never attempted become new-topic suggestions.
func Recommend(stats []store.TopicStat, items []assessment.Assessment) []Recommendation {
	seen := make(map[string]bool, len(stats))
	var out []Recommendation

	for _, st := range stats {
		if st.Attempted == 0 {
			continue
		}
		seen[st.Topic] = true
		pct := session.Score(st.Correct, st.Attempted)
		r := Recommendation{
			Topic:     st.Topic,
			Accuracy:  pct,
			Attempted: true,
		}
		switch {
		case pct < FocusBelow:
			r.Kind, r.Priority = KindFocus, PriorityHigh
			r.Title = "Review " + st.Topic
			r.Description = fmt.Sprintf("Your answers show %d%% accuracy here. Revisit the fundamentals before moving on", pct)
		case pct < MaintainAbove:
			r.Kind, r.Priority = KindPractice, PriorityMedium
			r.Title = st.Topic + " Problem Sets"
			r.Description = fmt.Sprintf("You're at %d%%. Keep practicing to push past %d%%", pct, MaintainAbove)
		default:
			r.Kind, r.Priority = KindMaintain, PriorityLow
			r.Title = "Keep " + st.Topic + " Fresh"
			r.Description = fmt.Sprintf("Strong accuracy (%d%%). A short review keeps it there", pct)
		}
		out = append(out, withAssessment(r, items))
	}

	for _, topic := range catalog.Topics(items) {
		if seen[topic] {
			continue
		}
		out = append(out, withAssessment(Recommendation{
			Kind:        KindNew,
			Priority:    PriorityLow,
			Topic:       topic,
			Title:       "Introduction to " + topic,
			Description: "You haven't tried this topic yet. Start with a short assessment",
		}, items))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() < b.Priority.rank()
		}
		if a.Attempted != b.Attempted {
			return a.Attempted
		}
		return a.Accuracy < b.Accuracy
	})
	return out
}

// withAssessment attaches the best matching assessment for r.Topic: one
// whose topic matches, otherwise the smallest one containing a question on it.
func withAssessment(r Recommendation, items []assessment.Assessment) Recommendation {
	var best *assessment.Assessment
	for i := range items {
		a := &items[i]
		if a.Topic == r.Topic {
			best = a
			break
		}
		if covers(*a, r.Topic) && (best == nil || a.QuestionCount() < best.QuestionCount()) {
			best = a
		}
	}

	r.EstimatedTime = defaultStudyTime
	if best != nil {
		r.AssessmentID = best.ID
		if best.TimeLimitMinutes > 0 {
			r.EstimatedTime = time.Duration(best.TimeLimitMinutes) * time.Minute
		}
	}
	return r
}

func covers(a assessment.Assessment, topic string) bool {
	for _, q := range a.Questions {
		if q.Topic == topic {
			return true
		}
	}
	return false
}
