package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyContent is returned by AddTodo when the draft is empty.
	ErrEmptyContent = &ValidationError{Field: "content", Msg: "Todo cannot be empty!"}
	// ErrNotFound is returned when no item carries the requested id.
	ErrNotFound = errors.New("todo not found")
	// ErrAmbiguousID is returned by Lookup when a prefix matches several items.
	ErrAmbiguousID = errors.New("ambiguous todo id")
)

// ValidationError rejects user input without touching any state.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError reports a failed call to the backing store. It is never
// fatal: the in-memory list stays authoritative and the next mutation
// rewrites the whole value.
type PersistenceError struct {
	Op  string // "get" or "set"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reports whether err carries a *PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
