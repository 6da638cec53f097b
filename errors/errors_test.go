/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("stream", "orders")

	// Test error message
	expected := `stream with key "orders" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	// Test helper function
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("provider", "azure")

	expected := `provider with key "azure" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "operation.RecordFilter.Tags",
			message:  "must be null: no support for Tags",
			expected: `validation failed for field "operation.RecordFilter.Tags": must be null: no support for Tags`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Error("ValidationError should match ErrInvalidInput")
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("allLocators", "exactly one locator is supported, 2 were provided")

	expected := `invalid configuration for "allLocators": exactly one locator is supported, 2 were provided`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !IsConfigurationError(err) {
		t.Error("IsConfigurationError should return true for ConfigurationError")
	}
	if IsValidationError(err) {
		t.Error("ConfigurationError should not match ErrInvalidInput")
	}
}

func TestNotSupportedError(t *testing.T) {
	err := NewNotSupportedError("PruneStreamOp")

	expected := "operation PruneStreamOp is not supported by this binding"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !IsNotSupported(err) {
		t.Error("IsNotSupported should return true for NotSupportedError")
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("download", "c1", "abc", "503 Server Busy", cause)

	if !IsStoreFailure(err) {
		t.Error("IsStoreFailure should return true for StoreError")
	}
	if !errors.Is(err, cause) {
		t.Error("StoreError should unwrap to its cause")
	}
	for _, part := range []string{`blob "abc"`, `container "c1"`, "503 Server Busy", "connection reset"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("Expected %q in error message %q", part, err.Error())
		}
	}

	listErr := NewStoreError("list", "c1", "", "", nil)
	if listErr.Error() != `list failed for container "c1"` {
		t.Errorf("Unexpected message %q", listErr.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("download", 2*time.Second, context.DeadlineExceeded)

	if !IsTimeout(err) {
		t.Error("IsTimeout should return true for TimeoutError")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should unwrap to the context error")
	}
	if !strings.Contains(err.Error(), "2s") {
		t.Errorf("Expected timeout in message, got %q", err.Error())
	}
}

func TestErrorWrapping(t *testing.T) {
	// Test that wrapped errors still match
	original := NewValidationError("operation.Payload", "only binary payloads supported")
	wrapped := fmt.Errorf("put failed: %w", original)

	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Error("Wrapped ValidationError should still match ErrInvalidInput")
	}

	var verr *ValidationError
	if !errors.As(wrapped, &verr) || verr.Field != "operation.Payload" {
		t.Errorf("errors.As should expose the field, got %+v", verr)
	}
}

func TestSentinelErrors(t *testing.T) {
	// Ensure sentinel errors are distinct
	sentinels := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrConfiguration,
		ErrNotSupported,
		ErrStoreFailure,
		ErrTimeout,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
