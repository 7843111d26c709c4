// Package apperr defines the error taxonomy shared by every workflow
// operation. Each error carries a Kind that the HTTP adapter maps to a
// status class; business code only ever decides the kind, never the code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown     Kind = iota
	KindValidation       // missing/malformed input, user-fixable
	KindRateLimited      // duplicate-submission guard
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict // state-machine precondition violated
	KindDependency
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match on kind, so sentinel errors built here compare
// against wrapped instances of the same kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Wrap(kind Kind, msg string, err error) *Error { return &Error{Kind: kind, Msg: msg, Err: err} }

func Validation(msg string) *Error  { return New(KindValidation, msg) }
func RateLimited(msg string) *Error { return New(KindRateLimited, msg) }
func Unauthorized(msg string) *Error {
	return New(KindUnauthorized, msg)
}
func Forbidden(msg string) *Error { return New(KindForbidden, msg) }
func NotFound(msg string) *Error  { return New(KindNotFound, msg) }
func Conflict(msg string) *Error  { return New(KindConflict, msg) }
func Dependency(msg string, err error) *Error {
	return Wrap(KindDependency, msg, err)
}

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// KindOf extracts the taxonomy kind from any error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
