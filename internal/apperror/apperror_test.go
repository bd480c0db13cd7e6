package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("usuario", "42"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "Nombre y email son obligatorios."),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("usuario", "ana@example.com"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "MissingEmail wraps ErrUpstreamAuth",
			err:       MissingEmail("GitHub"),
			target:    ErrUpstreamAuth,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("Debes iniciar sesión."),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("usuario", "42"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "MissingEmail does NOT match ErrNotFound",
			err:       MissingEmail("GitHub"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message names the resource and key",
			err:         NotFound("usuario", "42"),
			wantMessage: "usuario no encontrado: 42",
		},
		{
			name:        "ValidationFailed uses the custom message",
			err:         ValidationFailed("email", "El email es obligatorio."),
			wantMessage: "El email es obligatorio.",
		},
		{
			name:        "MissingEmail names the provider",
			err:         MissingEmail("GitHub"),
			wantMessage: "No se pudo obtener el email de GitHub.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("usuario", "42")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("email", "El email es obligatorio.")
	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
