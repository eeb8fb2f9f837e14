package apperrors

import (
	"errors"
	"fmt"
)

// Kind sentinels. Every application error unwraps to exactly one of these,
// which is what the HTTP error handler maps to a status code.
var (
	ErrValidation    = errors.New("validation")
	ErrAuthorization = errors.New("authorization")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUpstream      = errors.New("upstream")
)

// Error is an application error: a caller-safe message tied to a kind
// sentinel via Unwrap.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) *Error { return &Error{kind: kind, msg: msg} }

func NewValidation(msg string) *Error    { return newError(ErrValidation, msg) }
func NewAuthorization(msg string) *Error { return newError(ErrAuthorization, msg) }
func NewNotFound(msg string) *Error      { return newError(ErrNotFound, msg) }
func NewConflict(msg string) *Error      { return newError(ErrConflict, msg) }

// NewUpstream wraps a dependency failure (database, object storage, broker)
// not caused by caller input. The underlying detail is kept for server-side
// logging but the message shown to callers stays generic.
func NewUpstream(op string, err error) *Error {
	return newError(ErrUpstream, fmt.Sprintf("%s: %v", op, err))
}

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsAuthorization(err error) bool { return errors.Is(err, ErrAuthorization) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool      { return errors.Is(err, ErrConflict) }
func IsUpstream(err error) bool      { return errors.Is(err, ErrUpstream) }

// Domain errors raised by the services.
var (
	ErrUserAlreadyExists = NewConflict("user already exists")
	ErrUserNotFound      = NewNotFound("user not found")
	ErrPasswordNotSet    = NewConflict("password not set")
	ErrWrongCredentials  = NewConflict("wrong credentials")
	ErrEmailAlreadyYours = NewConflict("email already yours")
	ErrEmailNotAvailable = NewConflict("email not available")
	ErrWrongPassword     = NewConflict("wrong password")
	ErrPasswordIdentical = NewConflict("new password is identical to the old one")
	ErrCountryNotFound   = NewNotFound("country not found")
	ErrSurfboardNotFound = NewNotFound("surfboard not found")
	ErrSurfboardExists   = NewConflict("surfboard already exists")
	ErrBookingNotFound   = NewNotFound("booking not found")
	ErrFileKeyTaken      = NewConflict("national id photo already attached to another booking")
	ErrUnauthorized      = NewAuthorization("invalid or missing credentials")
)
