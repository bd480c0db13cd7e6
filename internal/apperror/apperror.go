package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstreamAuth marks failures that originate at an OAuth provider
	// (unusable profile, denied authorization). Handlers never turn these
	// into JSON errors — the user is redirected back to the login page.
	ErrUpstreamAuth = errors.New("upstream auth failed")
)

type AppError struct {
	Err     error  // sentinel the error wraps, for errors.Is checks
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
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
		Message: fmt.Sprintf("%s no encontrado: %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a unique-constraint violation. In this app the only
// unique natural key is users.email, so the message names the address.
func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("Ya existe un %s con ese valor: %s", resource, key),
	}
}

// Unauthorized returns an AppError for requests without a valid session.
// HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// MissingEmail reports that an OAuth provider returned a profile with no
// usable email address. GitHub does this when the account hides all
// addresses. The adapter raises it before any database access happens.
func MissingEmail(provider string) *AppError {
	return &AppError{
		Err:     ErrUpstreamAuth,
		Message: fmt.Sprintf("No se pudo obtener el email de %s.", provider),
	}
}
