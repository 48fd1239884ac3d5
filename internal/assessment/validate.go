package assessment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists every problem found in an assessment definition.
type ValidationError struct {
	AssessmentID string
	Problems     []string
}

func (e *ValidationError) Error() string {
	id := e.AssessmentID
	if id == "" {
		id = "(no id)"
	}
	return fmt.Sprintf("invalid assessment %s: %s", id, strings.Join(e.Problems, "; "))
}

// Validate checks an assessment's structure: tag rules first, then the
// cross-field rules that tags cannot express.
func (a Assessment) Validate() error {
	var problems []string

	if err := validate.Struct(a); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return fmt.Errorf("validate assessment %s: %w", a.ID, err)
		}
		for _, fe := range ve {
			problems = append(problems, describe(fe))
		}
	}

	seen := make(map[int]bool, len(a.Questions))
	for i, q := range a.Questions {
		if seen[q.ID] {
			problems = append(problems, fmt.Sprintf("question %d: duplicate id %d", i+1, q.ID))
		}
		seen[q.ID] = true
		if len(q.Options) > 0 && q.CorrectIndex >= len(q.Options) {
			problems = append(problems, fmt.Sprintf(
				"question %d: correct_index %d out of range for %d options",
				i+1, q.CorrectIndex, len(q.Options)))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{AssessmentID: a.ID, Problems: problems}
	}
	return nil
}

// describe renders a validator field error as a short message.
func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
