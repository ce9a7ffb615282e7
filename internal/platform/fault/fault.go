// Package fault defines the closed set of error kinds surfaced by core
// operations. Handlers translate kinds to HTTP statuses; the human-readable
// message is what callers display.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation marks missing or malformed required input.
	KindValidation Kind = iota
	// KindNotFound marks a referenced patient or clinic that does not exist.
	KindNotFound
	// KindStore marks a failed key-value operation. Never retried.
	KindStore
	// KindInvalidCredentials marks a failed login. The message must not
	// distinguish a wrong username from a wrong password.
	KindInvalidCredentials
	// KindClinicNotFound marks a login against an unknown clinic.
	KindClinicNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindClinicNotFound:
		return "clinic_not_found"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the display text without the wrapped cause.
func (e *Error) Message() string { return e.Msg }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a kinded error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, or KindStore when err carries no kind,
// since an unclassified failure is by definition an infrastructure one.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindStore
}

func Is(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}

func IsValidation(err error) bool { return Is(err, KindValidation) }
func IsNotFound(err error) bool   { return Is(err, KindNotFound) }
func IsStore(err error) bool      { return Is(err, KindStore) }
