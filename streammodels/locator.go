/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

import (
	"fmt"
	"strings"
	"time"

	"github.com/suparena/blobstream/errors"
)

const (
	// RedactedValue replaces secrets when a locator is rendered.
	RedactedValue = "***"
	// NullValue is rendered for a secret that was never set.
	NullValue = "<null>"
)

// ResourceLocator addresses one physical storage container.
type ResourceLocator interface {
	fmt.Stringer
	// LocatorKind names the concrete locator type.
	LocatorKind() string
}

// ConnectionStringBlobContainerLocator identifies a blob container reached with a connection string.
// The zero value is only useful as a placeholder; use NewConnectionStringBlobContainerLocator.
type ConnectionStringBlobContainerLocator struct {
	containerName    string
	connectionString string
	timeout          time.Duration
}

// NewConnectionStringBlobContainerLocator validates and builds a locator.
// A zero timeout means the store's default applies.
func NewConnectionStringBlobContainerLocator(containerName, connectionString string, timeout time.Duration) (*ConnectionStringBlobContainerLocator, error) {
	if strings.TrimSpace(containerName) == "" {
		return nil, errors.NewValidationError("containerName", "cannot be null nor white space")
	}
	if strings.TrimSpace(connectionString) == "" {
		return nil, errors.NewValidationError("connectionString", "cannot be null nor white space")
	}
	if timeout < 0 {
		return nil, errors.NewValidationError("timeout", "cannot be negative")
	}

	return &ConnectionStringBlobContainerLocator{
		containerName:    containerName,
		connectionString: connectionString,
		timeout:          timeout,
	}, nil
}

// ContainerName returns the container name.
func (l ConnectionStringBlobContainerLocator) ContainerName() string { return l.containerName }

// ConnectionString returns the raw connection string. Never log it.
func (l ConnectionStringBlobContainerLocator) ConnectionString() string { return l.connectionString }

// Timeout returns the per-operation timeout, zero meaning the store default.
func (l ConnectionStringBlobContainerLocator) Timeout() time.Duration { return l.timeout }

// LocatorKind implements ResourceLocator.
func (l ConnectionStringBlobContainerLocator) LocatorKind() string {
	return "ConnectionStringBlobContainerLocator"
}

// String renders the locator with the connection string redacted.
func (l ConnectionStringBlobContainerLocator) String() string {
	secret := RedactedValue
	if l.connectionString == "" {
		secret = NullValue
	}

	return fmt.Sprintf("streammodels.ConnectionStringBlobContainerLocator: ContainerName = %s, ConnectionString = %s, Timeout = %s.",
		l.containerName, secret, l.timeout)
}

// GoString keeps %#v from printing the secret.
func (l ConnectionStringBlobContainerLocator) GoString() string {
	return l.String()
}
