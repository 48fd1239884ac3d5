package catalog

import (
	"context"
	"fmt"

	"github.com/abhisek/studyhub/internal/assessment"
)

// ScoreSource reports the latest recorded score per assessment id.
type ScoreSource interface {
	LatestScores(ctx context.Context) (map[string]int, error)
}

// Tracked decorates a Provider with the learner's attempt history: an
// assessment with a recorded attempt is reported as completed with its
// latest score.
type Tracked struct {
	base   Provider
	scores ScoreSource
}

var _ Provider = (*Tracked)(nil)

// NewTracked wraps base. A nil scores source makes Tracked a pass-through.
func NewTracked(base Provider, scores ScoreSource) *Tracked {
	return &Tracked{base: base, scores: scores}
}

func (t *Tracked) List(ctx context.Context) ([]assessment.Assessment, error) {
	items, err := t.base.List(ctx)
	if err != nil {
		return nil, err
	}
	scores, err := t.latest(ctx)
	if err != nil {
		return nil, err
	}
	for i, a := range items {
		if s, ok := scores[a.ID]; ok {
			items[i] = a.WithResult(s)
		}
	}
	return items, nil
}

func (t *Tracked) Get(ctx context.Context, id string) (assessment.Assessment, error) {
	a, err := t.base.Get(ctx, id)
	if err != nil {
		return a, err
	}
	scores, err := t.latest(ctx)
	if err != nil {
		return assessment.Assessment{}, err
	}
	if s, ok := scores[a.ID]; ok {
		return a.WithResult(s), nil
	}
	return a, nil
}

func (t *Tracked) latest(ctx context.Context) (map[string]int, error) {
	if t.scores == nil {
		return nil, nil
	}
	scores, err := t.scores.LatestScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest scores: %w", err)
	}
	return scores, nil
}
