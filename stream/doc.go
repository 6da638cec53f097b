/*
Package stream adapts the generic record stream operations to a single blob container.

A blob container can only store bytes under a name, so a Stream supports three operations:

  - PutRecord uploads a binary payload under the record's string id. Tags and the object
    timestamp become blob metadata.
  - GetLatestRecord downloads the blob named by a single string id. A missing blob is not an
    error: the record is nil.
  - GetDistinctStringSerializedIDs lists the blob names.

Each call runs the same pipeline: validate the operation against what a container can represent,
resolve the locator, open the container under the locator timeout, run one store round trip and
close the container. Nothing is retried or cached.

Building a stream from configuration:

	cfg, err := streammodels.NewStreamConfig("orders", streammodels.AccessAll,
		&streammodels.SerializerRepresentation{Kind: streammodels.SerializationKindJSON},
		streammodels.SerializationFormatBinary,
		[]streammodels.ResourceLocator{locator})

	s, err := stream.FromConfig(cfg, serialization.NewFactory(), azure.New(),
		stream.WithLogger(logger))

	result, err := s.PutRecord(ctx, &streammodels.PutRecordOp{...})

Every other operation kind passed to Execute fails with errors.NotSupportedError.
*/
package stream
