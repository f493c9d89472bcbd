package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetAppErrorSanitizesUnknownErrors(t *testing.T) {
	appErr := GetAppError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))
	if appErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", appErr.Code)
	}
	if appErr.Message != "Internal server error" {
		t.Fatalf("expected sanitized message, got %q", appErr.Message)
	}
}

func TestGetAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("settlement: %w", NewNotFoundError("Settlement"))
	appErr := GetAppError(wrapped)
	if appErr.Code != http.StatusNotFound || appErr.Message != "Settlement not found" {
		t.Fatalf("unexpected app error: %+v", appErr)
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	if c.Err() != nil {
		t.Fatalf("expected nil error for empty collector")
	}

	c.Check(true, "amount", "must be positive")
	c.Check(false, "quantity", "must be positive")
	err := c.Err()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	appErr := GetAppError(err)
	if appErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", appErr.Code)
	}
	if len(appErr.Errors) != 1 || appErr.Errors[0].Field != "quantity" {
		t.Fatalf("unexpected field errors: %+v", appErr.Errors)
	}
	if appErr.Message != "quantity: must be positive" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}
