package store

import (
	"context"
	"fmt"
	"sort"
)

var answerEventColumns = []string{
	"session_id", "assessment_id", "question_id", "topic", "prompt",
	"selected", "correct_index", "selected_text", "correct_text", "correct",
}

func answerEventValues(data AnswerEventData) []any {
	return []any{
		data.SessionID, data.AssessmentID, data.QuestionID, data.Topic, data.Prompt,
		data.Selected, data.CorrectIndex, data.SelectedText, data.CorrectText, data.Correct,
	}
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable, data.Timestamp, answerEventColumns, answerEventValues(data))
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	query, args := selectEvents(answerEventsTable, answerEventColumns, opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.AssessmentID, &e.QuestionID, &e.Topic, &e.Prompt,
			&e.Selected, &e.CorrectIndex, &e.SelectedText, &e.CorrectText, &e.Correct,
		); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.AnswerEventData.Timestamp = e.Timestamp
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) TopicAccuracy(ctx context.Context) ([]TopicStat, error) {
	events, err := r.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("query topic accuracy: %w", err)
	}

	byTopic := make(map[string]*TopicStat)
	for _, e := range events {
		st, ok := byTopic[e.Topic]
		if !ok {
			st = &TopicStat{Topic: e.Topic}
			byTopic[e.Topic] = st
		}
		st.Attempted++
		if e.Correct {
			st.Correct++
		}
	}

	out := make([]TopicStat, 0, len(byTopic))
	for _, st := range byTopic {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out, nil
}
