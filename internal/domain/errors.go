package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP layer can map them to statuses
// without inspecting message text.
type ErrorKind int

const (
	KindValidation ErrorKind = iota // missing or malformed input
	KindNotFound                    // no matching record
	KindConflict                    // duplicate identity
	KindCredential                  // authentication failure
	KindDependency                  // store or signer failure, possibly transient
)

type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches two domain errors by code so sentinel comparisons with
// errors.Is work across wrapped instances.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrMissingCoordinates   = newError(KindValidation, "MISSING_COORDINATES", "latitude and longitude are required")
	ErrInvalidRadius        = newError(KindValidation, "INVALID_RADIUS", "search radius must be greater than zero")
	ErrMissingRequiredField = newError(KindValidation, "MISSING_REQUIRED_FIELD", "a required field is missing")
	ErrDuplicateIdentity    = newError(KindConflict, "EMAIL_EXISTS", "an account with this email already exists")
	ErrMissingCredentials   = newError(KindValidation, "MISSING_CREDENTIALS", "email and password are required")
	ErrIdentityNotFound     = newError(KindNotFound, "USER_NOT_FOUND", "no account matches this email")
	ErrInvalidCredentials   = newError(KindCredential, "INVALID_CREDENTIALS", "invalid credentials")
	ErrMagicLinkInvalid     = newError(KindCredential, "MAGIC_LINK_INVALID", "invalid or expired access code")
)

// ValidationError returns a field-specific variant of
// ErrMissingRequiredField that still matches it under errors.Is.
func ValidationError(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    ErrMissingRequiredField.Code,
		Message: message,
	}
}

// DependencyError wraps a store or signer failure. The underlying cause is
// kept for logging and never rendered to API clients.
func DependencyError(message string, cause error) *Error {
	return &Error{
		Kind:    KindDependency,
		Code:    "DEPENDENCY_FAILURE",
		Message: message,
		cause:   cause,
	}
}

// KindOf extracts the classification from err, defaulting to KindDependency
// for errors that did not originate in this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// CodeOf returns the machine-readable code for err, or INTERNAL_ERROR for
// foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL_ERROR"
}

// MessageOf returns the client-safe message for err. Foreign errors get a
// generic message so internal details never leak to callers.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
