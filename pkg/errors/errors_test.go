package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("connection refused")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "appointment not found",
			},
			expected: "NOT_FOUND: appointment not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeUpstream,
				Message: "workshop api error",
				Err:     errors.New("connection refused"),
			},
			expected: "UPSTREAM_ERROR: workshop api error (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestUpstream_FallbackMessage(t *testing.T) {
	err := Upstream("", errors.New("status=502 body="))

	if err.Message != FallbackUpstreamMessage {
		t.Errorf("expected fallback message, got %q", err.Message)
	}
	if err.Code != CodeUpstream {
		t.Errorf("expected code %s, got %s", CodeUpstream, err.Code)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, err.HTTPStatus)
	}
}

func TestUpstream_KeepsAPIMessage(t *testing.T) {
	err := Upstream("appointment already confirmed", nil)
	if err.Message != "appointment already confirmed" {
		t.Errorf("expected upstream message to survive, got %q", err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("vehicle")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError should return the same *AppError")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected plain errors to map to %s, got %s", CodeInternal, got.Code)
	}
	if errors.Unwrap(got) != plain {
		t.Errorf("expected original error to be preserved")
	}
}
