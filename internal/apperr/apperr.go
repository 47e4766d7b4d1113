// Package apperr holds the error kinds the API reports to clients.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindInput
	KindAuth
	KindForbidden
	KindNotFound
	KindUpstream
	KindVerification
)

// GenericMessage is what clients see for upstream and unknown failures.
const GenericMessage = "Server error"

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

func (e *Error) Unwrap() error {
	return e.Err
}

// Status is the HTTP status a kind maps to. Verification failures are not an
// HTTP-level failure.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInput:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindVerification:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Input(format string, args ...any) error {
	return &Error{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

func Auth(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Verification(message string) error {
	return &Error{Kind: KindVerification, Message: message}
}

// Upstream wraps a failure of an external service. The message is for logs only.
func Upstream(message string, err error) error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PublicMessage is the message safe to return to a client.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return GenericMessage
	}
	switch e.Kind {
	case KindUpstream, KindUnknown:
		return GenericMessage
	}
	return e.Message
}
