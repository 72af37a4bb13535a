package lambda

import (
	"errors"
	"fmt"
)

// Error kinds reported by the adapter
var (
	ErrTransport   = errors.New("body transport error")
	ErrTranslation = errors.New("translation error")
)

// Error represents an adapter failure with the operation that produced it
type Error struct {
	Op   string // Operation that failed (e.g. "build request", "read body")
	Kind error  // ErrTransport or ErrTranslation
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lambda adapter: %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(op string, kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// IsTransport returns true if the error was raised while buffering a body
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsTranslation returns true if the error was raised while converting between
// event and HTTP representations
func IsTranslation(err error) bool {
	return errors.Is(err, ErrTranslation)
}
