// Package errs defines the error taxonomy shared across the engine: a small
// set of sentinel kinds wrapped with context, checked with errs.Is rather
// than type assertions, the way the teacher's pkg/setup wraps lower-level
// errors with fmt.Errorf("...: %w", err).
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies which class of failure occurred.
type Kind int

const (
	_ Kind = iota
	InvalidGraph
	InvalidChallenge
	StoreError
	TreeError
	EncodingError
	InternalAssertion
)

func (k Kind) String() string {
	switch k {
	case InvalidGraph:
		return "invalid graph"
	case InvalidChallenge:
		return "invalid challenge"
	case StoreError:
		return "store error"
	case TreeError:
		return "tree error"
	case EncodingError:
		return "encoding error"
	case InternalAssertion:
		return "internal assertion"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so callers can branch with
// errs.Is(err, errs.InvalidChallenge), which uses errors.As below.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error for the given op/kind, optionally wrapping err.
func New(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
