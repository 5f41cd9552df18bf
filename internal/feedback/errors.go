package feedback

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEditable is returned when an edit, save or submit is attempted
	// on an item that is no longer pending
	ErrNotEditable = errors.New("feedback: item is not editable")

	// ErrSessionClosed is returned after Close; the session's state must
	// not be touched again
	ErrSessionClosed = errors.New("feedback: session closed")
)

// ValidationError blocks a submit locally; no network call was made.
// Missing lists the required question ids still unanswered, for display.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("feedback: %d required answers missing", len(e.Missing))
}

// PersistenceError wraps an exhausted save or submit endpoint chain. The
// draft is retained; the operation can be retried.
type PersistenceError struct {
	Op  string // "save" or "submit"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("feedback: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
