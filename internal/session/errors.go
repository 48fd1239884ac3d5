package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/studyhub/internal/catalog"
)

var (
	// ErrNoSelection is returned by Advance when no option has been selected
	// for the current question.
	ErrNoSelection = errors.New("no option selected")

	// ErrNoSession is returned when an operation needs an active session.
	ErrNoSession = errors.New("no assessment in progress")

	// ErrSessionComplete is returned when answering a finished assessment.
	ErrSessionComplete = errors.New("assessment already completed")
)

// NotFoundError reports an unknown assessment id passed to Start.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("assessment %q not found", e.ID)
}

// Is lets callers test against catalog.ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == catalog.ErrNotFound
}

// OptionRangeError reports a selection outside the current question's options.
type OptionRangeError struct {
	Index   int
	Options int
}

func (e *OptionRangeError) Error() string {
	return fmt.Sprintf("option %d out of range [0, %d)", e.Index, e.Options)
}
