/*
Package blobstream exposes blob containers (Azure Blob Storage, S3, DynamoDB, memory) through the
generic record stream vocabulary.

The library is organised in layers:
  - streammodels: locators, stream configuration, the operation types and records
  - blobstore: the blob capability contract, with azure, s3, ddb and mock backends
  - stream: the adapter that validates operations and runs them against one container
  - config: YAML stream definitions and .env loading
  - this package: a registry of named streams and typed helpers over a stream

Basic Usage:

	// Load definitions and build every stream with its registered backend
	_ = config.LoadEnv()
	file, _ := config.Load("streams.yaml")
	streams, _ := blobstream.OpenStreams(file, serialization.NewFactory())

	// Store and fetch typed objects
	orders, _ := blobstream.GetTypedStream[Order](streams, "orders")
	_, err := orders.PutWithID(ctx, "order-1", Order{ID: "order-1"})
	order, found, err := orders.GetLatestObjectByID(ctx, "order-1")

Backends register themselves on import:

	import _ "github.com/suparena/blobstream/blobstore/azure"
*/
package blobstream
