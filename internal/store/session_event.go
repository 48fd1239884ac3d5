package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the ent SQL builder.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

var _ EventRepo = (*eventRepo)(nil)

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// stamp returns ts in UTC, or the current time when ts is zero.
func (r *eventRepo) stamp(ts time.Time) time.Time {
	if ts.IsZero() {
		ts = r.now()
	}
	return ts.UTC()
}

// insert appends a row to table with a fresh sequence number.
func (r *eventRepo) insert(ctx context.Context, table string, ts time.Time, cols []string, vals []any) error {
	r.seq.mu.Lock()
	defer r.seq.mu.Unlock()
	return r.insertWith(ctx, r.db, table, ts, cols, vals)
}

// insertWith is insert through q. Callers hold r.seq.mu.
func (r *eventRepo) insertWith(ctx context.Context, q execer, table string, ts time.Time, cols []string, vals []any) error {
	seqNum, err := r.seq.next(ctx, q)
	if err != nil {
		return err
	}
	query, args := sqlite().Insert(table).
		Columns(append([]string{colSequence, colTimestamp}, cols...)...).
		Values(append([]any{seqNum, r.stamp(ts)}, vals...)...).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a filtered select over an event table.
func selectEvents(table string, cols []string, opts QueryOpts) (string, []any) {
	b := sqlite()
	sel := b.Select(append([]string{colID, colSequence, colTimestamp}, cols...)...).
		From(b.Table(table))
	if opts.After > 0 {
		sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(colTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(colTimestamp, opts.To.UTC()))
	}
	if opts.Descending {
		sel.OrderBy(entsql.Desc(colSequence))
	} else {
		sel.OrderBy(entsql.Asc(colSequence))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel.Query()
}

var sessionEventColumns = []string{
	"session_id", "assessment_id", "assessment_title", "action",
	"questions_total", "questions_answered", "correct_answers", "score", "duration_secs",
}

func sessionEventValues(data SessionEventData) []any {
	var score any
	if data.Score != nil {
		score = *data.Score
	}
	return []any{
		data.SessionID, data.AssessmentID, data.AssessmentTitle, data.Action,
		data.QuestionsTotal, data.QuestionsAnswered, data.CorrectAnswers, score, data.DurationSecs,
	}
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable, data.Timestamp, sessionEventColumns, sessionEventValues(data))
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// AppendCompletion writes the answers of a finished session and its
// complete event in one transaction. On error nothing is stored.
func (r *eventRepo) AppendCompletion(ctx context.Context, session SessionEventData, answers []AnswerEventData) (err error) {
	r.seq.mu.Lock()
	defer r.seq.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin completion: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, a := range answers {
		if err = r.insertWith(ctx, tx, answerEventsTable, a.Timestamp, answerEventColumns, answerEventValues(a)); err != nil {
			return fmt.Errorf("save answer event: %w", err)
		}
	}
	if err = r.insertWith(ctx, tx, sessionEventsTable, session.Timestamp, sessionEventColumns, sessionEventValues(session)); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit completion: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	query, args := selectEvents(sessionEventsTable, sessionEventColumns, opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			e     SessionEvent
			score sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.AssessmentID, &e.AssessmentTitle, &e.Action,
			&e.QuestionsTotal, &e.QuestionsAnswered, &e.CorrectAnswers, &score, &e.DurationSecs,
		); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if score.Valid {
			s := int(score.Int64)
			e.Score = &s
		}
		e.SessionEventData.Timestamp = e.Timestamp
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, limit int) ([]SessionSummary, error) {
	events, err := r.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*SessionSummary)
	var order []string
	for _, e := range events {
		s, ok := byID[e.SessionID]
		if !ok {
			s = &SessionSummary{
				SessionID:    e.SessionID,
				AssessmentID: e.AssessmentID,
				Status:       SessionInProgress,
			}
			byID[e.SessionID] = s
			order = append(order, e.SessionID)
		}
		if e.AssessmentTitle != "" {
			s.AssessmentTitle = e.AssessmentTitle
		}
		if e.QuestionsTotal > 0 {
			s.Total = e.QuestionsTotal
		}
		switch e.Action {
		case ActionStart:
			s.StartedAt = e.Timestamp
		case ActionComplete:
			s.Status = SessionCompleted
			s.EndedAt = e.Timestamp
			s.Answered = e.QuestionsAnswered
			s.Correct = e.CorrectAnswers
			s.Score = e.Score
			s.Duration = time.Duration(e.DurationSecs) * time.Second
		case ActionExit:
			s.Status = SessionExited
			s.EndedAt = e.Timestamp
			s.Answered = e.QuestionsAnswered
			s.Duration = time.Duration(e.DurationSecs) * time.Second
		}
	}

	out := make([]SessionSummary, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		out = append(out, *byID[order[i]])
	}
	// Back-dated events can break sequence order; ties keep newest-first.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *eventRepo) LatestScores(ctx context.Context) (map[string]int, error) {
	b := sqlite()
	query, args := b.Select("assessment_id", "score").
		From(b.Table(sessionEventsTable)).
		Where(entsql.And(
			entsql.EQ("action", ActionComplete),
			entsql.NotNull("score"),
		)).
		OrderBy(entsql.Asc(colSequence)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query latest scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var (
			id    string
			score int
		)
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores[id] = score
	}
	return scores, rows.Err()
}
