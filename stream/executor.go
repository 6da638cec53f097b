/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stream

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

// containerAction is one store round trip against an open container.
type containerAction func(ctx context.Context, c blobstore.Container, containerName string) error

// execute resolves the locator, opens the container under the locator timeout, runs action and
// closes the container on every exit path.
func (s *Stream) execute(ctx context.Context, op streammodels.Operation, blob string, action containerAction) error {
	locator, err := s.resolveLocator(ctx, op)
	if err != nil {
		return err
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("blobstream.container", locator.ContainerName()))

	logger := s.logger.With().
		Str("operation", op.Kind()).
		Stringer("locator", locator).
		Logger()

	if timeout := locator.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	container, err := s.capability.Open(ctx, locator)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open container")
		return s.classify(ctx, op, locator, "open", "", err)
	}
	defer func() {
		if closeErr := container.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("failed to close container")
		}
	}()

	logger.Debug().Str("blob", blob).Msg("executing")
	if err := action(ctx, container, locator.ContainerName()); err != nil {
		logger.Error().Err(err).Str("blob", blob).Msg("store action failed")
		return s.classify(ctx, op, locator, op.Kind(), blob, err)
	}
	return nil
}

// classify turns an action failure into the error taxonomy. Typed errors pass through, a passed
// deadline becomes a TimeoutError and everything else is a StoreError.
func (s *Stream) classify(ctx context.Context, op streammodels.Operation, locator *streammodels.ConnectionStringBlobContainerLocator, stage, blob string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewTimeoutError(op.Kind(), locator.Timeout(), err)
	}

	switch {
	case errors.IsStoreFailure(err),
		errors.IsTimeout(err),
		errors.IsValidationError(err),
		errors.IsConfigurationError(err):
		return err
	}
	return errors.NewStoreError(stage, locator.ContainerName(), blob, "", err)
}

func (s *Stream) startSpan(ctx context.Context, op streammodels.Operation) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, op.Kind(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("blobstream.stream", s.name),
			attribute.String("blobstream.operation", op.Kind()),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
