// Package apperr defines the error kinds surfaced to API clients.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Error carries a kind and one or more client-facing messages.
type Error struct {
	Kind     Kind
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	msg := "internal error"
	if len(e.Messages) > 0 {
		msg = e.Messages[0]
		if len(e.Messages) > 1 {
			msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Messages)-1)
		}
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrUnauthorized is the single error every failed authorization check returns.
var ErrUnauthorized = &Error{Kind: KindUnauthorized, Messages: []string{"Unauthorized"}}

func BadRequest(msgs ...string) error {
	return &Error{Kind: KindBadRequest, Messages: msgs}
}

func BadRequestf(format string, a ...any) error {
	return &Error{Kind: KindBadRequest, Messages: []string{fmt.Sprintf(format, a...)}}
}

func NotFoundf(format string, a ...any) error {
	return &Error{Kind: KindNotFound, Messages: []string{fmt.Sprintf(format, a...)}}
}

func Unauthorizedf(format string, a ...any) error {
	return &Error{Kind: KindUnauthorized, Messages: []string{fmt.Sprintf(format, a...)}}
}

// Conflict wraps a duplicate-key failure.
func Conflict(err error, format string, a ...any) error {
	return &Error{Kind: KindConflict, Messages: []string{fmt.Sprintf(format, a...)}, Err: err}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, msg string) error {
	return &Error{Kind: kind, Messages: []string{msg}, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsBadRequest(err error) bool   { return KindOf(err) == KindBadRequest }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
