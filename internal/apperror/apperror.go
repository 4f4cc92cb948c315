// Package apperror defines the domain error taxonomy shared by every layer.
//
// Services and repositories return these errors; the HTTP layer maps them to
// status codes in one place (handler.writeError). errors.Is/errors.As walk
// the wrap chain, so fmt.Errorf("...: %w", err) is always safe on top.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnavailable        = errors.New("store unavailable")
)

type AppError struct {
	Err     error  // sentinel, for errors.Is
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateKey reports a uniqueness-constraint violation, e.g. registering a
// username or email that already exists.
func DuplicateKey(resource, field string) *AppError {
	return &AppError{
		Err:     ErrDuplicateKey,
		Message: fmt.Sprintf("%s already exists with this %s", resource, field),
		Field:   field,
	}
}

// InvalidCredentials is deliberately uniform: the message must not reveal
// whether the username was unknown or the password wrong.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid credentials",
	}
}

// Unauthorized is returned when a guarded route is called without a valid
// bearer token.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Unavailable wraps a transient persistence failure. Nothing retries
// automatically; each request fails independently.
func Unavailable(err error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrUnavailable, err),
		Message: "storage is temporarily unavailable",
	}
}
