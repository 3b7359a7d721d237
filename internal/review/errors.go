package review

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("review: document not found")
	ErrConflict = errors.New("review: document id already exists")
)

// InvalidTransitionError reports a lifecycle operation that is not legal from
// the document's current status. The registry guarantees no state changed.
type InvalidTransitionError struct {
	Status Status
	Op     Operation
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("review: cannot %s a document in status %q", e.Op, e.Status)
}

// InvalidInputError reports malformed operation arguments such as an empty
// comment body or a blank reviewer identifier.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("review: invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
