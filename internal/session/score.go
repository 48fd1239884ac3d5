package session

import "github.com/abhisek/studyhub/internal/assessment"

// Score returns round(100*correct/total) with halves rounded up.
// It returns 0 when total is not positive.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// ReviewEntry pairs a recorded answer with the question's correct answer.
type ReviewEntry struct {
	Position     int // 0-based
	Question     assessment.Question
	Selected     int
	CorrectIndex int
	IsCorrect    bool
	Explanation  string
}

// SelectedText returns the text of the recorded answer.
func (r ReviewEntry) SelectedText() string { return r.Question.Option(r.Selected) }

// CorrectText returns the text of the correct answer.
func (r ReviewEntry) CorrectText() string { return r.Question.CorrectOption() }

// buildReview pairs answers with questions. Answers beyond the question
// list are ignored and missing answers produce no entry.
func buildReview(questions []assessment.Question, answers []int) ([]ReviewEntry, int) {
	n := min(len(questions), len(answers))
	entries := make([]ReviewEntry, 0, n)
	correct := 0
	for i := 0; i < n; i++ {
		q := questions[i]
		ok := q.IsCorrect(answers[i])
		if ok {
			correct++
		}
		entries = append(entries, ReviewEntry{
			Position:     i,
			Question:     q,
			Selected:     answers[i],
			CorrectIndex: q.CorrectIndex,
			IsCorrect:    ok,
			Explanation:  q.Explanation,
		})
	}
	return entries, correct
}
