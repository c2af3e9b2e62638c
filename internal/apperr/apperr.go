// Package apperr defines the domain error kinds surfaced to callers.
//
// Every failure the core reports on purpose carries a Kind, which the
// transport layer turns into a status code and a machine-readable tag.
// Errors without a Kind are unexpected and surface as KindInternal.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindNotAuthorized   Kind = "not_authorized"
	KindForbidden       Kind = "forbidden"
	KindBadRequest      Kind = "bad_request"
	KindUnauthenticated Kind = "unauthenticated"
	KindConflict        Kind = "conflict"
	KindInternal        Kind = "internal"
)

// Error is a domain failure with a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, apperr.ErrForbidden)
// works for any forbidden error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks. They carry no message.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrForbidden  = &Error{Kind: KindForbidden}
)

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error { return newf(KindValidation, format, args...) }
func NotFound(format string, args ...any) *Error   { return newf(KindNotFound, format, args...) }
func NotAuthorized(format string, args ...any) *Error {
	return newf(KindNotAuthorized, format, args...)
}
func Forbidden(format string, args ...any) *Error  { return newf(KindForbidden, format, args...) }
func BadRequest(format string, args ...any) *Error { return newf(KindBadRequest, format, args...) }
func Unauthenticated(format string, args ...any) *Error {
	return newf(KindUnauthenticated, format, args...)
}
func Conflict(format string, args ...any) *Error { return newf(KindConflict, format, args...) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
