package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abhisek/studyhub/internal/notify"
)

// NewEventSink returns a notify.Sink that persists session lifecycle
// notifications. Write failures are logged and never reach the caller.
func NewEventSink(repo EventRepo, log zerolog.Logger) notify.Sink {
	return notify.SinkFunc(func(ctx context.Context, n notify.Notification) {
		if err := record(ctx, repo, n); err != nil {
			log.Error().Err(err).
				Str("kind", string(n.Kind)).
				Str("session_id", n.SessionID).
				Msg("persist notification")
		}
	})
}

func record(ctx context.Context, repo EventRepo, n notify.Notification) error {
	base := SessionEventData{
		SessionID:       n.SessionID,
		AssessmentID:    n.AssessmentID,
		AssessmentTitle: n.AssessmentTitle,
		QuestionsTotal:  n.Total,
		Timestamp:       n.Time,
	}

	switch n.Kind {
	case notify.KindStarted:
		base.Action = ActionStart
		return repo.AppendSessionEvent(ctx, base)

	case notify.KindCompleted:
		answers := make([]AnswerEventData, 0, len(n.Review))
		for _, item := range n.Review {
			answers = append(answers, AnswerEventData{
				SessionID:    n.SessionID,
				AssessmentID: n.AssessmentID,
				QuestionID:   item.QuestionID,
				Topic:        item.Topic,
				Prompt:       item.Prompt,
				Selected:     item.Selected,
				CorrectIndex: item.CorrectIndex,
				SelectedText: item.SelectedText,
				CorrectText:  item.CorrectAnswer,
				Correct:      item.Correct,
				Timestamp:    n.Time,
			})
		}
		score := n.Score
		base.Action = ActionComplete
		base.QuestionsAnswered = n.Answered
		base.CorrectAnswers = n.Correct
		base.Score = &score
		base.DurationSecs = int(n.Duration.Seconds())
		return repo.AppendCompletion(ctx, base, answers)

	case notify.KindExited:
		base.Action = ActionExit
		base.QuestionsAnswered = n.Answered
		base.DurationSecs = int(n.Duration.Seconds())
		return repo.AppendSessionEvent(ctx, base)
	}
	return nil
}
