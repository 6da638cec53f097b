/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blobstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/suparena/blobstream/streammodels"
)

// NoSequenceNumber is reported by stores that do not number writes.
const NoSequenceNumber = streammodels.NoInternalRecordID

// Capability opens scoped connections to blob containers.
type Capability interface {
	Open(ctx context.Context, locator *streammodels.ConnectionStringBlobContainerLocator) (Container, error)
}

// Container is a connection to one container. It is used for a single operation and then closed.
type Container interface {
	// Upload writes data under name, replacing any existing blob, and returns the store's sequence number.
	Upload(ctx context.Context, name string, data []byte, metadata map[string]string) (int64, error)

	// Download reads a whole blob. A missing blob is reported through the status, not the error;
	// the error is reserved for failures that produced no response at all.
	Download(ctx context.Context, name string) (*DownloadResult, error)

	// ListBlobs returns the names of all blobs in the container.
	ListBlobs(ctx context.Context) ([]string, error)

	Close() error
}

// DownloadStatus classifies a download response.
type DownloadStatus int

const (
	StatusOK DownloadStatus = iota
	// StatusPartialContent is returned by range downloads that fit in one range.
	StatusPartialContent
	StatusNotFound
	StatusError
)

func (s DownloadStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusPartialContent:
		return "PartialContent"
	case StatusNotFound:
		return "NotFound"
	case StatusError:
		return "Error"
	}
	return fmt.Sprintf("DownloadStatus(%d)", int(s))
}

// DownloadResult is the outcome of a download.
type DownloadResult struct {
	Status DownloadStatus
	// Reason is the store's diagnostic text when Status is StatusError.
	Reason string
	Data   []byte
	// ContentLength is the length the store reported, or -1 when unknown.
	ContentLength  int64
	SequenceNumber int64
	Metadata       map[string]string
}

// ParseConnectionString splits a "Key=Value;Key=Value" string. Keys are matched case-insensitively
// and stored lower-cased; values may contain '='.
func ParseConnectionString(connectionString string) (map[string]string, error) {
	settings := make(map[string]string)
	for _, part := range strings.Split(connectionString, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(key) == "" {
			// the raw segment may contain a secret, so it is not echoed
			return nil, fmt.Errorf("malformed connection string segment at position %d", strings.Index(connectionString, part))
		}
		settings[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return settings, nil
}
