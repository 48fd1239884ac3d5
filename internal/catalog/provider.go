package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studyhub/internal/assessment"
)

// ErrNotFound is returned when an assessment id is not in the catalog.
var ErrNotFound = errors.New("assessment not found")

// Provider supplies assessments.
type Provider interface {
	// List returns every assessment in display order.
	List(ctx context.Context) ([]assessment.Assessment, error)

	// Get returns the assessment with the given id, or an error wrapping
	// ErrNotFound.
	Get(ctx context.Context, id string) (assessment.Assessment, error)
}

// Static is an in-memory Provider over a fixed, validated list.
type Static struct {
	items []assessment.Assessment
	byID  map[string]int
}

var _ Provider = (*Static)(nil)

// NewStatic validates the assessments and builds a Static provider.
func NewStatic(items []assessment.Assessment) (*Static, error) {
	s := &Static{
		items: make([]assessment.Assessment, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, a := range items {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate assessment id %q", a.ID)
		}
		s.byID[a.ID] = len(s.items)
		s.items = append(s.items, a.Clone())
	}
	return s, nil
}

func (s *Static) List(_ context.Context) ([]assessment.Assessment, error) {
	out := make([]assessment.Assessment, len(s.items))
	for i, a := range s.items {
		out[i] = a.Clone()
	}
	return out, nil
}

func (s *Static) Get(_ context.Context, id string) (assessment.Assessment, error) {
	i, ok := s.byID[id]
	if !ok {
		return assessment.Assessment{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.items[i].Clone(), nil
}

// Len returns the number of assessments.
func (s *Static) Len() int {
	return len(s.items)
}

// Topics returns the distinct assessment topics in catalog order.
func Topics(items []assessment.Assessment) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, a := range items {
		for _, q := range a.Questions {
			if !seen[q.Topic] {
				seen[q.Topic] = true
				topics = append(topics, q.Topic)
			}
		}
	}
	return topics
}
