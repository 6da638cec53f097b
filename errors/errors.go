/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"time"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a named stream or provider is not registered
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when registering a name twice
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when an operation uses a field outside the supported subset
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is returned when a stream cannot be built from its configuration
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotSupported is returned for operations with no blob mapping
	ErrNotSupported = errors.New("operation not supported")

	// ErrStoreFailure is returned when the blob store answers with an error
	ErrStoreFailure = errors.New("store failure")

	// ErrTimeout is returned when a store round trip exceeds the locator timeout
	ErrTimeout = errors.New("timeout")
)

// NotFoundError represents an error when a named item is not registered
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when a name is already registered
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an argument that violates a constraint.
// Field is the dotted path of the offending field, e.g. "operation.RecordFilter.Tags".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigurationError represents a stream configuration the binding cannot use
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NotSupportedError represents an operation kind with no blob mapping
type NotSupportedError struct {
	Operation string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("operation %s is not supported by this binding", e.Operation)
}

func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported
}

// StoreError represents a non-success response from the blob store
type StoreError struct {
	Operation string
	Container string
	Blob      string
	Reason    string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s failed for container %q", e.Operation, e.Container)
	if e.Blob != "" {
		msg = fmt.Sprintf("%s failed for blob %q in container %q", e.Operation, e.Blob, e.Container)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// TimeoutError represents a store round trip that ran past the locator timeout
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s: %v", e.Operation, e.Timeout, e.Err)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(field, message string) error {
	return &ConfigurationError{Field: field, Message: message}
}

// NewNotSupportedError creates a new NotSupportedError
func NewNotSupportedError(operation string) error {
	return &NotSupportedError{Operation: operation}
}

// NewStoreError creates a new StoreError
func NewStoreError(operation, container, blob, reason string, err error) error {
	return &StoreError{Operation: operation, Container: container, Blob: blob, Reason: reason, Err: err}
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(operation string, timeout time.Duration, err error) error {
	return &TimeoutError{Operation: operation, Timeout: timeout, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsNotSupported checks if an error is a not supported error
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}

// IsStoreFailure checks if an error is a store error
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
