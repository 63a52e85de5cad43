// Package apperr is the error taxonomy shared by the service and transport
// layers. Services return *Error values; the HTTP layer turns the Kind into a
// status code in exactly one place.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateUser
	KindInvalidCredentials
	KindMissingToken
	KindInvalidToken
	KindExpiredToken
	KindNotFound
)

var kindNames = map[Kind]string{
	KindInternal:           "internal",
	KindValidation:         "validation",
	KindDuplicateUser:      "duplicate_user",
	KindInvalidCredentials: "invalid_credentials",
	KindMissingToken:       "missing_token",
	KindInvalidToken:       "invalid_token",
	KindExpiredToken:       "expired_token",
	KindNotFound:           "not_found",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Error is a classified error with a client-safe message. Err holds the
// underlying cause for logs and is never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

// Wrap returns a copy of e that records cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// Validation reports bad input. details is usually the list of field messages.
func Validation(details any) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Details: details}
}

// Internal hides cause behind a generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// From returns the *Error in err's chain, wrapping anything else as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
