/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blobstream

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/blobstream/config"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/registry"
	"github.com/suparena/blobstream/serialization"
	"github.com/suparena/blobstream/stream"
)

// Streams is a thread-safe set of streams addressed by name.
type Streams struct {
	mu      sync.RWMutex
	streams map[string]*stream.Stream
}

// NewStreams creates an empty set.
func NewStreams() *Streams {
	return &Streams{
		streams: make(map[string]*stream.Stream),
	}
}

// Register adds s under its name.
func (ss *Streams) Register(s *stream.Stream) error {
	if s == nil {
		return errors.NewValidationError("stream", "cannot be null")
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, exists := ss.streams[s.Name()]; exists {
		return errors.NewAlreadyExistsError("stream", s.Name())
	}
	ss.streams[s.Name()] = s
	return nil
}

// Get retrieves the stream registered under name.
func (ss *Streams) Get(name string) (*stream.Stream, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	s, exists := ss.streams[name]
	if !exists {
		return nil, errors.NewNotFoundError("stream", name)
	}
	return s, nil
}

// Remove deletes the stream registered under name.
func (ss *Streams) Remove(name string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, exists := ss.streams[name]; !exists {
		return errors.NewNotFoundError("stream", name)
	}
	delete(ss.streams, name)
	return nil
}

// Names returns the registered stream names in sorted order.
func (ss *Streams) Names() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	names := make([]string, 0, len(ss.streams))
	for name := range ss.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenStream builds a stream from its definition, using the capability registered for the
// definition's provider.
func OpenStream(def config.StreamDefinition, factory serialization.Factory, opts ...stream.Option) (*stream.Stream, error) {
	cfg, err := def.StreamConfig()
	if err != nil {
		return nil, err
	}

	capability, err := registry.NewCapability(def.Provider)
	if err != nil {
		return nil, fmt.Errorf("stream %s: %w", def.Name, err)
	}

	return stream.FromConfig(cfg, factory, capability, opts...)
}

// OpenStreams builds and registers every stream in file.
func OpenStreams(file *config.File, factory serialization.Factory, opts ...stream.Option) (*Streams, error) {
	streams := NewStreams()
	for _, def := range file.Streams {
		s, err := OpenStream(def, factory, opts...)
		if err != nil {
			return nil, err
		}
		if err := streams.Register(s); err != nil {
			return nil, err
		}
	}
	return streams, nil
}

// GetTypedStream returns a TypedStream over the stream registered under name.
func GetTypedStream[T any](streams *Streams, name string) (*TypedStream[T], error) {
	s, err := streams.Get(name)
	if err != nil {
		return nil, err
	}
	return NewTypedStream[T](s)
}
