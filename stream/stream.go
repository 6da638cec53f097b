/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stream

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/serialization"
	"github.com/suparena/blobstream/streammodels"
)

const tracerName = "github.com/suparena/blobstream/stream"

// Stream maps stream operations onto a single blob container. It holds no mutable state after
// construction, so one Stream can serve concurrent callers.
type Stream struct {
	name                       string
	serializerFactory          serialization.Factory
	defaultSerializer          streammodels.SerializerRepresentation
	defaultSerializationFormat streammodels.SerializationFormat
	locatorProtocols           ResourceLocatorProtocols
	capability                 blobstore.Capability

	logger zerolog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// Option configures a Stream.
type Option func(*Stream)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Stream) {
		s.logger = logger
	}
}

// WithTracerProvider sets where operation spans go. The default is the global provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Stream) {
		s.tracer = provider.Tracer(tracerName)
	}
}

// WithClock replaces the clock used to stamp retrieved records.
func WithClock(now func() time.Time) Option {
	return func(s *Stream) {
		s.now = now
	}
}

// New constructs a Stream.
func New(
	name string,
	serializerFactory serialization.Factory,
	defaultSerializer *streammodels.SerializerRepresentation,
	defaultSerializationFormat streammodels.SerializationFormat,
	locatorProtocols ResourceLocatorProtocols,
	capability blobstore.Capability,
	opts ...Option,
) (*Stream, error) {
	switch {
	case strings.TrimSpace(name) == "":
		return nil, errors.NewConfigurationError("name", "cannot be null nor white space")
	case serializerFactory == nil:
		return nil, errors.NewConfigurationError("serializerFactory", "cannot be null")
	case defaultSerializer == nil:
		return nil, errors.NewConfigurationError("defaultSerializerRepresentation", "cannot be null")
	case defaultSerializationFormat == streammodels.SerializationFormatInvalid:
		return nil, errors.NewConfigurationError("defaultSerializationFormat", "cannot be Invalid")
	case locatorProtocols == nil:
		return nil, errors.NewConfigurationError("resourceLocatorProtocols", "cannot be null")
	case capability == nil:
		return nil, errors.NewConfigurationError("capability", "cannot be null")
	}

	s := &Stream{
		name:                       name,
		serializerFactory:          serializerFactory,
		defaultSerializer:          *defaultSerializer,
		defaultSerializationFormat: defaultSerializationFormat,
		locatorProtocols:           locatorProtocols,
		capability:                 capability,
		logger:                     zerolog.Nop(),
		tracer:                     otel.Tracer(tracerName),
		now:                        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("stream", name).Logger()
	return s, nil
}

// FromConfig builds a Stream from a validated config. The config must name exactly one locator,
// and it must be a *streammodels.ConnectionStringBlobContainerLocator.
func FromConfig(
	cfg *streammodels.StreamConfig,
	serializerFactory serialization.Factory,
	capability blobstore.Capability,
	opts ...Option,
) (*Stream, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("streamConfig", "cannot be null")
	}
	if len(cfg.AllLocators) != 1 {
		return nil, errors.NewConfigurationError("streamConfig.AllLocators",
			"must contain exactly one locator; multiple locators are not supported")
	}
	locator, ok := cfg.AllLocators[0].(*streammodels.ConnectionStringBlobContainerLocator)
	if !ok || locator == nil {
		return nil, errors.NewConfigurationError("streamConfig.AllLocators[0]",
			"must be a ConnectionStringBlobContainerLocator")
	}

	return New(
		cfg.Name,
		serializerFactory,
		cfg.DefaultSerializerRepresentation,
		cfg.DefaultSerializationFormat,
		NewSingleResourceLocatorProtocols(locator),
		capability,
		opts...,
	)
}

// Name returns the stream name.
func (s *Stream) Name() string { return s.name }

// DefaultSerializerRepresentation is stamped on every record this stream returns.
func (s *Stream) DefaultSerializerRepresentation() streammodels.SerializerRepresentation {
	return s.defaultSerializer
}

func (s *Stream) DefaultSerializationFormat() streammodels.SerializationFormat {
	return s.defaultSerializationFormat
}

// SerializerFactory is not used by the stream itself; typed helpers above it build codecs from it.
func (s *Stream) SerializerFactory() serialization.Factory { return s.serializerFactory }
