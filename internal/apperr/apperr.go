// Package apperr classifies failures into the kinds the user-facing boundary
// distinguishes: missing entities, rejected input, denied access, and
// everything else.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind int

const (
	// KindInternal is a persistence or infrastructure failure. Details are logged, not shown.
	KindInternal Kind = iota
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindInvalid means input failed validation or a guard rejected the operation.
	KindInvalid
	// KindConflict means the operation is blocked by dependent data (restrict delete).
	KindConflict
	// KindDenied means the actor is not allowed to perform the operation.
	KindDenied
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	case KindDenied:
		return "denied"
	default:
		return "internal"
	}
}

// Error is a classified error with a human readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a KindNotFound error.
func NotFound(format string, args ...any) error {
	return New(KindNotFound, format, args...)
}

// Invalid creates a KindInvalid error.
func Invalid(format string, args ...any) error {
	return New(KindInvalid, format, args...)
}

// Conflict creates a KindConflict error.
func Conflict(format string, args ...any) error {
	return New(KindConflict, format, args...)
}

// Denied creates a KindDenied error.
func Denied(format string, args ...any) error {
	return New(KindDenied, format, args...)
}

// Internal wraps err as a KindInternal error.
func Internal(err error, format string, args ...any) error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of the first classified error in err's chain.
// Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindInternal && e.Err != nil {
			// a wrapped classified error keeps its own kind
			var inner *Error
			if errors.As(e.Err, &inner) {
				return inner.Kind
			}
		}
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the message of the first classified error in err's chain,
// or the raw error text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
