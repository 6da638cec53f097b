/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blobstream

import (
	"context"
	"fmt"

	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/serialization"
	"github.com/suparena/blobstream/stream"
	"github.com/suparena/blobstream/streammodels"
)

// TypedStream stores objects of type T under string ids. Objects are serialized with the stream's
// default serializer; a []byte object is stored as is.
type TypedStream[T any] struct {
	stream     *stream.Stream
	serializer serialization.Serializer
	objectType streammodels.TypeRepresentation
}

// NewTypedStream wraps s for objects of type T.
func NewTypedStream[T any](s *stream.Stream) (*TypedStream[T], error) {
	if s == nil {
		return nil, errors.NewConfigurationError("stream", "cannot be null")
	}

	serializer, err := s.SerializerFactory().BuildSerializer(s.DefaultSerializerRepresentation())
	if err != nil {
		return nil, err
	}

	return &TypedStream[T]{
		stream:     s,
		serializer: serializer,
		objectType: streammodels.TypeRepresentationFor[T](),
	}, nil
}

// Stream returns the underlying stream.
func (ts *TypedStream[T]) Stream() *stream.Stream {
	return ts.stream
}

// PutWithID stores object under id, replacing any previous object.
func (ts *TypedStream[T]) PutWithID(ctx context.Context, id string, object T, tags ...streammodels.NamedValue) (*streammodels.PutRecordResult, error) {
	payload, err := ts.encode(object)
	if err != nil {
		return nil, err
	}

	rep := ts.serializer.Representation()
	return ts.stream.PutRecord(ctx, &streammodels.PutRecordOp{
		Metadata: streammodels.StreamRecordMetadata{
			StringSerializedID:         id,
			SerializerRepresentation:   rep,
			TypeRepresentationOfID:     streammodels.StringType.WithAndWithoutVersion(),
			TypeRepresentationOfObject: ts.objectType.WithAndWithoutVersion(),
			Tags:                       tags,
		},
		Payload: streammodels.BinaryDescribedSerialization{
			PayloadType:       ts.objectType,
			Serializer:        rep,
			SerializedPayload: payload,
		},
	})
}

// GetDistinctIDs lists the ids of every stored object.
func (ts *TypedStream[T]) GetDistinctIDs(ctx context.Context) ([]string, error) {
	identifiers, err := ts.stream.GetDistinctStringSerializedIDs(ctx, &streammodels.GetDistinctStringSerializedIDsOp{
		RecordFilter: streammodels.RecordFilter{
			IDTypes: []streammodels.TypeRepresentation{streammodels.StringType},
		},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(identifiers))
	for _, identifier := range identifiers {
		ids = append(ids, identifier.StringSerializedID)
	}
	return ids, nil
}

// GetLatestObjectByID returns the object stored under id. The boolean is false when nothing is stored.
func (ts *TypedStream[T]) GetLatestObjectByID(ctx context.Context, id string) (T, bool, error) {
	var zero T

	record, err := ts.stream.GetLatestRecord(ctx, &streammodels.GetLatestRecordOp{
		RecordFilter: streammodels.RecordFilter{
			IDs:                  []streammodels.StringSerializedIdentifier{{StringSerializedID: id, IdentifierType: streammodels.StringType}},
			ObjectTypes:          []streammodels.TypeRepresentation{streammodels.BytesType},
			VersionMatchStrategy: streammodels.VersionMatchAny,
		},
		RecordNotFoundStrategy: streammodels.RecordNotFoundReturnDefault,
	})
	if err != nil {
		return zero, false, err
	}
	if record == nil {
		return zero, false, nil
	}

	payload, ok := record.Payload.(streammodels.BinaryDescribedSerialization)
	if !ok {
		return zero, false, fmt.Errorf("unexpected payload %T for id %q", record.Payload, id)
	}

	object, err := ts.decode(payload.SerializedPayload)
	if err != nil {
		return zero, false, fmt.Errorf("failed to decode %s for id %q: %w", ts.objectType, id, err)
	}
	return object, true, nil
}

func (ts *TypedStream[T]) encode(object T) ([]byte, error) {
	if raw, ok := any(object).([]byte); ok {
		return raw, nil
	}
	return ts.serializer.SerializeToBytes(object)
}

func (ts *TypedStream[T]) decode(data []byte) (T, error) {
	var object T
	if raw, ok := any(&object).(*[]byte); ok {
		*raw = data
		return object, nil
	}
	err := ts.serializer.Deserialize(data, &object)
	return object, err
}
