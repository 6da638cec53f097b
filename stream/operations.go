/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stream

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

// GetLatestRecord downloads the blob named by the filter's single id. A missing blob yields
// (nil, nil).
func (s *Stream) GetLatestRecord(ctx context.Context, op *streammodels.GetLatestRecordOp) (record *streammodels.StreamRecord, err error) {
	if op == nil {
		return nil, errors.NewValidationError("operation", "cannot be null")
	}
	ctx, span := s.startSpan(ctx, op)
	defer func() { endSpan(span, err) }()

	id, err := validateGetLatestRecord(op)
	if err != nil {
		return nil, err
	}

	err = s.execute(ctx, op, id, func(ctx context.Context, c blobstore.Container, containerName string) error {
		result, err := c.Download(ctx, id)
		if err != nil {
			return err
		}

		switch result.Status {
		case blobstore.StatusNotFound:
			return nil
		case blobstore.StatusOK, blobstore.StatusPartialContent:
		default:
			return errors.NewStoreError("download", containerName, id, result.Reason, nil)
		}

		if result.ContentLength >= 0 && int64(len(result.Data)) != result.ContentLength {
			return errors.NewStoreError("download", containerName, id,
				fmt.Sprintf("received %d of %d bytes", len(result.Data), result.ContentLength), nil)
		}

		tags, objectTimestamp := fromBlobMetadata(result.Metadata)
		record = &streammodels.StreamRecord{
			InternalRecordID: result.SequenceNumber,
			Metadata: streammodels.StreamRecordMetadata{
				StringSerializedID:         id,
				SerializerRepresentation:   s.defaultSerializer,
				TypeRepresentationOfID:     streammodels.StringType.WithAndWithoutVersion(),
				TypeRepresentationOfObject: streammodels.BytesType.WithAndWithoutVersion(),
				Tags:                       tags,
				TimestampUTC:               strfmt.DateTime(s.now().UTC()),
				ObjectTimestampUTC:         objectTimestamp,
			},
			Payload: streammodels.BinaryDescribedSerialization{
				PayloadType:       streammodels.BytesType,
				Serializer:        s.defaultSerializer,
				SerializedPayload: result.Data,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if record == nil {
		s.logger.Debug().Str("id", id).Msg("record not found, returning default")
	}
	return record, nil
}

// PutRecord uploads the payload under the record's id, replacing any existing blob. Tags and the
// object timestamp are stored as blob metadata.
func (s *Stream) PutRecord(ctx context.Context, op *streammodels.PutRecordOp) (result *streammodels.PutRecordResult, err error) {
	if op == nil {
		return nil, errors.NewValidationError("operation", "cannot be null")
	}
	ctx, span := s.startSpan(ctx, op)
	defer func() { endSpan(span, err) }()

	payload, err := validatePutRecord(op)
	if err != nil {
		return nil, err
	}

	id := op.Metadata.StringSerializedID
	metadata := toBlobMetadata(op.Metadata)

	err = s.execute(ctx, op, id, func(ctx context.Context, c blobstore.Container, containerName string) error {
		sequenceNumber, err := c.Upload(ctx, id, payload.SerializedPayload, metadata)
		if err != nil {
			return err
		}
		result = &streammodels.PutRecordResult{InternalRecordIDOfPutRecord: sequenceNumber}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetDistinctStringSerializedIDs lists every blob in the container as an identifier of the
// filter's declared id type.
func (s *Stream) GetDistinctStringSerializedIDs(ctx context.Context, op *streammodels.GetDistinctStringSerializedIDsOp) (ids []streammodels.StringSerializedIdentifier, err error) {
	if op == nil {
		return nil, errors.NewValidationError("operation", "cannot be null")
	}
	ctx, span := s.startSpan(ctx, op)
	defer func() { endSpan(span, err) }()

	idType, err := validateGetDistinctStringSerializedIDs(op)
	if err != nil {
		return nil, err
	}

	err = s.execute(ctx, op, "", func(ctx context.Context, c blobstore.Container, containerName string) error {
		names, err := c.ListBlobs(ctx)
		if err != nil {
			return err
		}
		ids = make([]streammodels.StringSerializedIdentifier, 0, len(names))
		for _, name := range names {
			ids = append(ids, streammodels.StringSerializedIdentifier{
				StringSerializedID: name,
				IdentifierType:     idType,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Execute dispatches any operation. Supported operations return the same values as the typed
// methods (*StreamRecord, *PutRecordResult, []StringSerializedIdentifier), with an absent record
// returned as an untyped nil. Every other operation kind fails with a NotSupportedError and never
// reaches the store.
func (s *Stream) Execute(ctx context.Context, op streammodels.Operation) (any, error) {
	switch o := op.(type) {
	case nil:
		return nil, errors.NewValidationError("operation", "cannot be null")
	case *streammodels.GetLatestRecordOp:
		return recordOrNil(s.GetLatestRecord(ctx, o))
	case streammodels.GetLatestRecordOp:
		return recordOrNil(s.GetLatestRecord(ctx, &o))
	case *streammodels.PutRecordOp:
		return s.PutRecord(ctx, o)
	case streammodels.PutRecordOp:
		return s.PutRecord(ctx, &o)
	case *streammodels.GetDistinctStringSerializedIDsOp:
		return s.GetDistinctStringSerializedIDs(ctx, o)
	case streammodels.GetDistinctStringSerializedIDsOp:
		return s.GetDistinctStringSerializedIDs(ctx, &o)
	}

	_, span := s.startSpan(ctx, op)
	err := errors.NewNotSupportedError(op.Kind())
	endSpan(span, err)
	return nil, err
}

func recordOrNil(record *streammodels.StreamRecord, err error) (any, error) {
	if record == nil {
		return nil, err
	}
	return record, err
}
