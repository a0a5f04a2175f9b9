// Package apperr defines the error kinds surfaced by stores and services.
//
// Every failure that reaches the HTTP boundary is either an *Error carrying one
// of the kinds below or an unclassified error, which is treated as internal.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindInternal     Kind = "internal"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindDuplicate    Kind = "duplicate"
	KindInUse        Kind = "in_use"
	KindUnauthorized Kind = "unauthorized"
)

// Error is a classified application error.
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

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or missing input.
func Validation(format string, args ...any) *Error {
	return newf(KindValidation, format, args...)
}

// NotFound reports an entity, slug or id set that does not resolve.
func NotFound(format string, args ...any) *Error {
	return newf(KindNotFound, format, args...)
}

// Duplicate reports a unique field collision.
func Duplicate(format string, args ...any) *Error {
	return newf(KindDuplicate, format, args...)
}

// InUse reports a delete blocked by a live reference.
func InUse(format string, args ...any) *Error {
	return newf(KindInUse, format, args...)
}

// Unauthorized reports missing or bad credentials.
func Unauthorized(format string, args ...any) *Error {
	return newf(KindUnauthorized, format, args...)
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
