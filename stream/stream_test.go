/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stream_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/blobstore/mock"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/serialization"
	"github.com/suparena/blobstream/stream"
	"github.com/suparena/blobstream/streammodels"
)

var jsonRep = &streammodels.SerializerRepresentation{Kind: streammodels.SerializationKindJSON}

func newLocator(t *testing.T, container string, timeout time.Duration) *streammodels.ConnectionStringBlobContainerLocator {
	t.Helper()
	locator, err := streammodels.NewConnectionStringBlobContainerLocator(container, "UseDevelopmentStorage=true", timeout)
	require.NoError(t, err)
	return locator
}

func newStream(t *testing.T, capability blobstore.Capability, opts ...stream.Option) *stream.Stream {
	t.Helper()
	cfg, err := streammodels.NewStreamConfig("test-stream", streammodels.AccessAll, jsonRep,
		streammodels.SerializationFormatBinary,
		[]streammodels.ResourceLocator{newLocator(t, "c1", time.Second)})
	require.NoError(t, err)

	s, err := stream.FromConfig(cfg, serialization.NewFactory(), capability, opts...)
	require.NoError(t, err)
	return s
}

func putOp(id string, data []byte) *streammodels.PutRecordOp {
	return &streammodels.PutRecordOp{
		Metadata: streammodels.StreamRecordMetadata{
			StringSerializedID:         id,
			SerializerRepresentation:   *jsonRep,
			TypeRepresentationOfID:     streammodels.StringType.WithAndWithoutVersion(),
			TypeRepresentationOfObject: streammodels.BytesType.WithAndWithoutVersion(),
		},
		Payload: streammodels.BinaryDescribedSerialization{
			PayloadType:       streammodels.BytesType,
			Serializer:        *jsonRep,
			SerializedPayload: data,
		},
	}
}

func getLatestOp(id string) *streammodels.GetLatestRecordOp {
	return &streammodels.GetLatestRecordOp{
		RecordFilter: streammodels.RecordFilter{
			IDs:                  []streammodels.StringSerializedIdentifier{{StringSerializedID: id, IdentifierType: streammodels.StringType}},
			ObjectTypes:          []streammodels.TypeRepresentation{streammodels.BytesType},
			VersionMatchStrategy: streammodels.VersionMatchAny,
		},
		RecordNotFoundStrategy: streammodels.RecordNotFoundReturnDefault,
	}
}

func distinctIDsOp() *streammodels.GetDistinctStringSerializedIDsOp {
	return &streammodels.GetDistinctStringSerializedIDsOp{
		RecordFilter: streammodels.RecordFilter{
			IDTypes: []streammodels.TypeRepresentation{streammodels.StringType},
		},
	}
}

func idsOf(ids []streammodels.StringSerializedIdentifier) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.StringSerializedID)
	}
	return out
}

func TestContainerScenario(t *testing.T) {
	ctx := context.Background()
	capability := mock.New()
	s := newStream(t, capability)

	before, err := s.GetDistinctStringSerializedIDs(ctx, distinctIDsOp())
	require.NoError(t, err)
	assert.NotContains(t, idsOf(before), "abc")

	result, err := s.PutRecord(ctx, putOp("abc", []byte{1, 2, 3}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.InternalRecordIDOfPutRecord)

	after, err := s.GetDistinctStringSerializedIDs(ctx, distinctIDsOp())
	require.NoError(t, err)
	assert.Contains(t, idsOf(after), "abc")
	for _, id := range after {
		assert.Equal(t, streammodels.StringType, id.IdentifierType)
	}

	record, err := s.GetLatestRecord(ctx, getLatestOp("abc"))
	require.NoError(t, err)
	require.NotNil(t, record)
	payload, ok := record.Payload.(streammodels.BinaryDescribedSerialization)
	require.True(t, ok, "expected a binary payload, got %T", record.Payload)
	assert.Equal(t, []byte{1, 2, 3}, payload.SerializedPayload)
	assert.Equal(t, "abc", record.Metadata.StringSerializedID)
	assert.EqualValues(t, 1, record.InternalRecordID)
	assert.Equal(t, streammodels.StringType.WithAndWithoutVersion(), record.Metadata.TypeRepresentationOfID)
	assert.Equal(t, streammodels.BytesType.WithAndWithoutVersion(), record.Metadata.TypeRepresentationOfObject)
	assert.Equal(t, *jsonRep, record.Metadata.SerializerRepresentation)

	missing, err := s.GetLatestRecord(ctx, getLatestOp("zzz"))
	require.NoError(t, err)
	assert.Nil(t, missing)

	// every call opened and closed exactly one container
	calls := capability.Calls()
	assert.Equal(t, 5, calls.Open)
	assert.Equal(t, calls.Open, calls.Close)
	for _, locator := range capability.OpenedLocators() {
		assert.Equal(t, "c1", locator.ContainerName())
	}
}

func TestPutRecordForwardsTagsAndTimestamp(t *testing.T) {
	ctx := context.Background()
	capability := mock.New()
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	s := newStream(t, capability, stream.WithClock(func() time.Time { return fixed }))

	objectTimestamp := strfmt.DateTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	op := putOp("abc", []byte("x"))
	op.Metadata.Tags = []streammodels.NamedValue{{Name: "region", Value: "eu"}, {Name: "kind", Value: "order"}}
	op.Metadata.ObjectTimestampUTC = &objectTimestamp

	_, err := s.PutRecord(ctx, op)
	require.NoError(t, err)

	blob, ok := capability.GetBlob("c1", "abc")
	require.True(t, ok)
	assert.Equal(t, "eu", blob.Metadata["region"])
	assert.Equal(t, objectTimestamp.String(), blob.Metadata[stream.ObjectTimestampMetadataKey])

	record, err := s.GetLatestRecord(ctx, getLatestOp("abc"))
	require.NoError(t, err)
	assert.Equal(t, []streammodels.NamedValue{{Name: "kind", Value: "order"}, {Name: "region", Value: "eu"}}, record.Metadata.Tags)
	require.NotNil(t, record.Metadata.ObjectTimestampUTC)
	assert.True(t, time.Time(*record.Metadata.ObjectTimestampUTC).Equal(time.Time(objectTimestamp)))
	assert.True(t, time.Time(record.Metadata.TimestampUTC).Equal(fixed))
}

func TestEmptyPayloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStream(t, mock.New())

	_, err := s.PutRecord(ctx, putOp("empty", []byte{}))
	require.NoError(t, err)

	record, err := s.GetLatestRecord(ctx, getLatestOp("empty"))
	require.NoError(t, err)
	require.NotNil(t, record)
	payload := record.Payload.(streammodels.BinaryDescribedSerialization)
	assert.NotNil(t, payload.SerializedPayload)
	assert.Empty(t, payload.SerializedPayload)
}

func TestGetLatestRecordStoreResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("ErrorStatusCarriesReason", func(t *testing.T) {
		capability := mock.New().WithDownloadFunc(func(name string) *blobstore.DownloadResult {
			return &blobstore.DownloadResult{Status: blobstore.StatusError, Reason: "503 Server Busy", ContentLength: -1}
		})
		s := newStream(t, capability)

		_, err := s.GetLatestRecord(ctx, getLatestOp("abc"))
		require.Error(t, err)
		assert.True(t, errors.IsStoreFailure(err))
		assert.Contains(t, err.Error(), "503 Server Busy")
		assert.Equal(t, 1, capability.Calls().Close)
	})

	t.Run("CompletePartialContentIsAccepted", func(t *testing.T) {
		capability := mock.New().WithDownloadFunc(func(name string) *blobstore.DownloadResult {
			return &blobstore.DownloadResult{Status: blobstore.StatusPartialContent, Data: []byte{1, 2}, ContentLength: 2}
		})
		s := newStream(t, capability)

		record, err := s.GetLatestRecord(ctx, getLatestOp("abc"))
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2}, record.Payload.(streammodels.BinaryDescribedSerialization).SerializedPayload)
	})

	t.Run("ShortReadIsRejected", func(t *testing.T) {
		capability := mock.New().WithDownloadFunc(func(name string) *blobstore.DownloadResult {
			return &blobstore.DownloadResult{Status: blobstore.StatusPartialContent, Data: []byte{1}, ContentLength: 3}
		})
		s := newStream(t, capability)

		_, err := s.GetLatestRecord(ctx, getLatestOp("abc"))
		assert.True(t, errors.IsStoreFailure(err), "expected store failure, got %v", err)
	})

	t.Run("TransportErrorIsStoreFailure", func(t *testing.T) {
		cause := stderrors.New("connection reset")
		capability := mock.New().WithDownloadError(cause)
		s := newStream(t, capability)

		_, err := s.GetLatestRecord(ctx, getLatestOp("abc"))
		assert.True(t, errors.IsStoreFailure(err))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 1, capability.Calls().Close)
	})

	t.Run("OpenFailureIsStoreFailure", func(t *testing.T) {
		capability := mock.New().WithOpenError(stderrors.New("dns failure"))
		s := newStream(t, capability)

		_, err := s.PutRecord(ctx, putOp("abc", []byte{1}))
		assert.True(t, errors.IsStoreFailure(err))
		assert.Equal(t, 0, capability.Calls().Close)
	})

	t.Run("CloseFailureDoesNotFailTheCall", func(t *testing.T) {
		capability := mock.New().WithCloseError(stderrors.New("close failed"))
		s := newStream(t, capability)

		_, err := s.PutRecord(ctx, putOp("abc", []byte{1}))
		assert.NoError(t, err)
	})
}

// blockingCapability never answers, so only the locator timeout ends a call.
type blockingCapability struct{}

type blockingContainer struct{ closed chan struct{} }

func (blockingCapability) Open(ctx context.Context, locator *streammodels.ConnectionStringBlobContainerLocator) (blobstore.Container, error) {
	return &blockingContainer{closed: make(chan struct{})}, nil
}

func (c *blockingContainer) Upload(ctx context.Context, name string, data []byte, metadata map[string]string) (int64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func (c *blockingContainer) Download(ctx context.Context, name string) (*blobstore.DownloadResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (c *blockingContainer) ListBlobs(ctx context.Context) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (c *blockingContainer) Close() error { return nil }

func TestLocatorTimeout(t *testing.T) {
	locator := newLocator(t, "c1", 20*time.Millisecond)
	s, err := stream.New("slow", serialization.NewFactory(), jsonRep, streammodels.SerializationFormatBinary,
		stream.NewSingleResourceLocatorProtocols(locator), blockingCapability{})
	require.NoError(t, err)

	start := time.Now()
	_, err = s.GetLatestRecord(context.Background(), getLatestOp("abc"))
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err), "expected timeout, got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)

	var timeoutErr *errors.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 20*time.Millisecond, timeoutErr.Timeout)
	assert.Equal(t, "GetLatestRecordOp", timeoutErr.Operation)
}

func TestConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	capability := mock.New()
	s := newStream(t, capability)

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			_, err := s.PutRecord(ctx, putOp(string(rune('a'+i)), []byte{byte(i)}))
			errs <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	ids, err := s.GetDistinctStringSerializedIDs(ctx, distinctIDsOp())
	require.NoError(t, err)
	assert.Len(t, ids, n)
}
