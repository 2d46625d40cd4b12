package apperror

import (
	"errors"
	"fmt"
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
			err:       NotFound("user", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("email", "email is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Duplicate wraps ErrDuplicate",
			err:       Duplicate("Already saved"),
			target:    ErrDuplicate,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("valid authentication required"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden("token expired"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "Unavailable wraps ErrUnavailable",
			err:       Unavailable("model is overloaded, try again shortly"),
			target:    ErrUnavailable,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("favorite", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Duplicate does NOT match ErrForbidden",
			err:       Duplicate("Already saved"),
			target:    ErrForbidden,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	// errors.Is must still match after fmt.Errorf %w wrapping, which is how
	// the repository and service layers propagate these errors.
	inner := Duplicate("Already saved")
	wrapped := fmt.Errorf("saving favorite: %w", inner)

	if !errors.Is(wrapped, ErrDuplicate) {
		t.Error("wrapped error does not match ErrDuplicate")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As failed to extract *AppError")
	}
	if appErr.Message != "Already saved" {
		t.Errorf("Message = %q, want %q", appErr.Message, "Already saved")
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("user", "u42")
	want := "user not found with id u42"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
