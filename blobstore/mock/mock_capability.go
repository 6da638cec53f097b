/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory blob capability for testing
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/registry"
	"github.com/suparena/blobstream/streammodels"
)

func init() {
	registry.RegisterCapability("memory", func() (blobstore.Capability, error) {
		return New(), nil
	})
}

// Blob is one stored blob.
type Blob struct {
	Data           []byte
	Metadata       map[string]string
	SequenceNumber int64
}

// Calls counts the invocations a Capability has seen.
type Calls struct {
	Open     int
	Upload   int
	Download int
	List     int
	Close    int
}

// Total returns the number of recorded calls of any kind.
func (c Calls) Total() int {
	return c.Open + c.Upload + c.Download + c.List + c.Close
}

// Capability is an in-memory implementation of blobstore.Capability for testing.
// Each container keeps its own write counter used as the sequence number.
type Capability struct {
	mu         sync.RWMutex
	containers map[string]map[string]Blob
	sequences  map[string]int64
	calls      Calls
	opened     []*streammodels.ConnectionStringBlobContainerLocator

	openError     error
	uploadError   error
	downloadError error
	listError     error
	closeError    error
	downloadFunc  func(name string) *blobstore.DownloadResult
}

// New creates a new mock Capability
func New() *Capability {
	return &Capability{
		containers: make(map[string]map[string]Blob),
		sequences:  make(map[string]int64),
	}
}

// WithOpenError makes Open return an error
func (m *Capability) WithOpenError(err error) *Capability {
	m.openError = err
	return m
}

// WithUploadError makes Upload return an error
func (m *Capability) WithUploadError(err error) *Capability {
	m.uploadError = err
	return m
}

// WithDownloadError makes Download fail without a response
func (m *Capability) WithDownloadError(err error) *Capability {
	m.downloadError = err
	return m
}

// WithDownloadFunc overrides Download responses, e.g. to simulate a store error status
func (m *Capability) WithDownloadFunc(f func(name string) *blobstore.DownloadResult) *Capability {
	m.downloadFunc = f
	return m
}

// WithListError makes ListBlobs return an error
func (m *Capability) WithListError(err error) *Capability {
	m.listError = err
	return m
}

// WithCloseError makes Close return an error
func (m *Capability) WithCloseError(err error) *Capability {
	m.closeError = err
	return m
}

// Open implements blobstore.Capability.
func (m *Capability) Open(ctx context.Context, locator *streammodels.ConnectionStringBlobContainerLocator) (blobstore.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls.Open++
	m.opened = append(m.opened, locator)
	if m.openError != nil {
		return nil, m.openError
	}
	return &container{parent: m, name: locator.ContainerName()}, nil
}

// Helper methods for testing

// Calls returns the invocations recorded so far
func (m *Capability) Calls() Calls {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// OpenedLocators returns the locators passed to Open, in order
func (m *Capability) OpenedLocators() []*streammodels.ConnectionStringBlobContainerLocator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*streammodels.ConnectionStringBlobContainerLocator, len(m.opened))
	copy(result, m.opened)
	return result
}

// SetBlob directly stores a blob (for testing)
func (m *Capability) SetBlob(containerName, name string, blob Blob) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.containers[containerName] == nil {
		m.containers[containerName] = make(map[string]Blob)
	}
	m.containers[containerName][name] = cloneBlob(blob)
}

// GetBlob returns a copy of a stored blob (for testing)
func (m *Capability) GetBlob(containerName, name string) (Blob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.containers[containerName][name]
	if !ok {
		return Blob{}, false
	}
	return cloneBlob(blob), true
}

// Count returns the number of blobs in a container
func (m *Capability) Count(containerName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.containers[containerName])
}

// Clear removes all data and recorded calls
func (m *Capability) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers = make(map[string]map[string]Blob)
	m.sequences = make(map[string]int64)
	m.calls = Calls{}
	m.opened = nil
}

type container struct {
	parent *Capability
	name   string
}

func (c *container) Upload(ctx context.Context, name string, data []byte, metadata map[string]string) (int64, error) {
	m := c.parent
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls.Upload++
	if m.uploadError != nil {
		return 0, m.uploadError
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if m.containers[c.name] == nil {
		m.containers[c.name] = make(map[string]Blob)
	}
	m.sequences[c.name]++
	seq := m.sequences[c.name]
	m.containers[c.name][name] = cloneBlob(Blob{Data: data, Metadata: metadata, SequenceNumber: seq})
	return seq, nil
}

func (c *container) Download(ctx context.Context, name string) (*blobstore.DownloadResult, error) {
	m := c.parent
	m.mu.Lock()
	m.calls.Download++
	downloadErr, downloadFunc := m.downloadError, m.downloadFunc
	blob, ok := m.containers[c.name][name]
	if ok {
		blob = cloneBlob(blob)
	}
	m.mu.Unlock()

	if downloadErr != nil {
		return nil, downloadErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if downloadFunc != nil {
		return downloadFunc(name), nil
	}
	if !ok {
		return &blobstore.DownloadResult{Status: blobstore.StatusNotFound, Reason: "The specified blob does not exist.", ContentLength: -1}, nil
	}

	return &blobstore.DownloadResult{
		Status:         blobstore.StatusOK,
		Data:           blob.Data,
		ContentLength:  int64(len(blob.Data)),
		SequenceNumber: blob.SequenceNumber,
		Metadata:       blob.Metadata,
	}, nil
}

func (c *container) ListBlobs(ctx context.Context) ([]string, error) {
	m := c.parent
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls.List++
	if m.listError != nil {
		return nil, m.listError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(m.containers[c.name]))
	for name := range m.containers[c.name] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (c *container) Close() error {
	m := c.parent
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls.Close++
	return m.closeError
}

func cloneBlob(b Blob) Blob {
	out := Blob{SequenceNumber: b.SequenceNumber}
	if b.Data != nil {
		out.Data = make([]byte, len(b.Data))
		copy(out.Data, b.Data)
	}
	if b.Metadata != nil {
		out.Metadata = make(map[string]string, len(b.Metadata))
		for k, v := range b.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
