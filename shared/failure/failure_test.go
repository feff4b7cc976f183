package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"trattoria/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("quantity must be greater than 0"),
			code:    http.StatusBadRequest,
			message: "quantity must be greater than 0",
		},
		{
			name:    "BadRequest wraps error",
			err:     failure.BadRequest(errors.New("bad payload")),
			code:    http.StatusBadRequest,
			message: "bad payload",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("Reservation not found"),
			code:    http.StatusNotFound,
			message: "Reservation not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("username already taken"),
			code:    http.StatusConflict,
			message: "username already taken",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("invalid credentials"),
			code:    http.StatusUnauthorized,
			message: "invalid credentials",
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("boom")),
			code:    http.StatusInternalServerError,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.err.Error())
			}
		})
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if got := failure.GetCode(errors.New("anything")); got != http.StatusInternalServerError {
		t.Errorf("expected plain errors to map to 500, got %d", got)
	}
}

func TestGetCode_WrappedFailure(t *testing.T) {
	wrapped := fmt.Errorf("failed to update order: %w", failure.NotFound("Order not found"))
	if got := failure.GetCode(wrapped); got != http.StatusNotFound {
		t.Errorf("expected wrapped failure to keep its code, got %d", got)
	}
}

func TestNilErrors(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("BadRequest(nil) should be nil")
	}
	if failure.InternalError(nil) != nil {
		t.Error("InternalError(nil) should be nil")
	}
}
