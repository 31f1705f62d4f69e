// Package apperr defines the error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindNotFound
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "internal"
	}
}

// Error is an application error carrying a client-safe message.
// Err holds the underlying cause, which is never shown to clients outside debug mode.
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

var (
	ErrUsernameTaken         = &Error{Kind: KindValidation, Message: "Username already exists"}
	ErrEmailTaken            = &Error{Kind: KindValidation, Message: "Email already exists"}
	ErrInvalidCredentials    = &Error{Kind: KindAuthentication, Message: "Invalid credentials"}
	ErrNotAuthenticated      = &Error{Kind: KindAuthentication, Message: "Not authenticated"}
	ErrNotFoundOrForbidden   = &Error{Kind: KindNotFound, Message: "Progression not found or access denied"}
	ErrInvalidOrExpiredToken = &Error{Kind: KindValidation, Message: "Invalid or expired token"}
	ErrEmailNotFound         = &Error{Kind: KindNotFound, Message: "Email not found"}
)

// Validation builds a validation error with the given message.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Persistence wraps a storage failure. op names the failed operation, e.g. "save progression".
func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Message: "Failed to " + op, Err: err}
}

// Internal wraps an unexpected failure behind a client-safe message.
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the Kind of err, or KindInternal for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
