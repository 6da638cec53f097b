/*
Package blobstore defines the blob capability a stream calls through.

A Capability opens a Container for one locator; the stream performs exactly one
action on it and closes it:

	type Capability interface {
	    Open(ctx context.Context, locator *streammodels.ConnectionStringBlobContainerLocator) (Container, error)
	}

	type Container interface {
	    Upload(ctx context.Context, name string, data []byte, metadata map[string]string) (int64, error)
	    Download(ctx context.Context, name string) (*DownloadResult, error)
	    ListBlobs(ctx context.Context) ([]string, error)
	    Close() error
	}

Implementations:
  - azure: Azure Blob Storage, authenticated with an account connection string
  - s3: Amazon S3 (bucket = container)
  - ddb: DynamoDB single-table layout with store-assigned sequence numbers
  - mock: in-memory implementation for testing, with call recording and error injection

Non-Azure backends read their settings from the locator's connection string using the
same "Key=Value;" syntax, e.g. "Region=us-east-1;AccessKey=...;SecretKey=...".
*/
package blobstore
