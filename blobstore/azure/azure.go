/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package azure

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"unicode"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/registry"
	"github.com/suparena/blobstream/streammodels"
)

func init() {
	registry.RegisterCapability("azure", func() (blobstore.Capability, error) {
		return New(), nil
	})
}

// Capability implements blobstore.Capability on Azure Blob Storage.
type Capability struct {
	// maxRetries overrides the SDK retry count when non-negative.
	maxRetries int32
}

// Option configures a Capability.
type Option func(*Capability)

// WithMaxRetries sets how many times the SDK pipeline retries a failed request.
// Zero disables SDK retries entirely.
func WithMaxRetries(n int32) Option {
	return func(c *Capability) {
		c.maxRetries = n
	}
}

// New constructs a Capability.
func New(opts ...Option) *Capability {
	c := &Capability{maxRetries: -1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open builds a client from the locator's connection string. The locator timeout is applied both
// to the HTTP client and to each SDK try, since the pipeline has no single overall timeout knob.
func (c *Capability) Open(ctx context.Context, locator *streammodels.ConnectionStringBlobContainerLocator) (blobstore.Container, error) {
	httpClient := &http.Client{Timeout: locator.Timeout()}

	options := &azblob.ClientOptions{}
	options.Transport = httpClient
	if locator.Timeout() > 0 {
		options.Retry.TryTimeout = locator.Timeout()
	}
	switch {
	case c.maxRetries == 0:
		// the SDK treats zero as "use the default", negative as "no retries"
		options.Retry.MaxRetries = -1
	case c.maxRetries > 0:
		options.Retry.MaxRetries = c.maxRetries
	}

	client, err := azblob.NewClientFromConnectionString(locator.ConnectionString(), options)
	if err != nil {
		// the SDK error may quote the connection string, so it is not wrapped
		return nil, errors.NewConfigurationError("connectionString", "not a valid Azure storage connection string")
	}

	return &container{
		client:     client,
		httpClient: httpClient,
		name:       locator.ContainerName(),
	}, nil
}

type container struct {
	client     *azblob.Client
	httpClient *http.Client
	name       string
}

func (c *container) Upload(ctx context.Context, name string, data []byte, metadata map[string]string) (int64, error) {
	md := make(map[string]*string, len(metadata))
	for k, v := range metadata {
		if !validMetadataName(k) {
			return 0, errors.NewValidationError("operation.Metadata.Tags",
				fmt.Sprintf("%q is not a valid blob metadata name", k))
		}
		v := v
		md[k] = &v
	}

	_, err := c.client.UploadBuffer(ctx, c.name, name, data, &azblob.UploadBufferOptions{
		Metadata: md,
	})
	if err != nil {
		return 0, c.storeError("upload", name, err)
	}

	// block blobs carry no sequence number
	return blobstore.NoSequenceNumber, nil
}

func (c *container) Download(ctx context.Context, name string) (*blobstore.DownloadResult, error) {
	resp, err := c.client.DownloadStream(ctx, c.name, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return &blobstore.DownloadResult{
				Status:        blobstore.StatusNotFound,
				Reason:        string(bloberror.BlobNotFound),
				ContentLength: -1,
			}, nil
		}
		var respErr *azcore.ResponseError
		if stderrors.As(err, &respErr) {
			return &blobstore.DownloadResult{
				Status:        blobstore.StatusError,
				Reason:        reasonPhrase(respErr),
				ContentLength: -1,
			}, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %q: %w", name, err)
	}

	result := &blobstore.DownloadResult{
		Status:         blobstore.StatusOK,
		Data:           data,
		ContentLength:  -1,
		SequenceNumber: blobstore.NoSequenceNumber,
		Metadata:       make(map[string]string, len(resp.Metadata)),
	}
	if resp.ContentRange != nil {
		result.Status = blobstore.StatusPartialContent
	}
	if resp.ContentLength != nil {
		result.ContentLength = *resp.ContentLength
	}
	if resp.BlobSequenceNumber != nil {
		result.SequenceNumber = *resp.BlobSequenceNumber
	}
	for k, v := range resp.Metadata {
		if v != nil {
			result.Metadata[k] = *v
		}
	}
	return result, nil
}

func (c *container) ListBlobs(ctx context.Context) ([]string, error) {
	var names []string

	pager := c.client.NewListBlobsFlatPager(c.name, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, c.storeError("list", "", err)
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item != nil && item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

func (c *container) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *container) storeError(op, blob string, err error) error {
	var respErr *azcore.ResponseError
	if stderrors.As(err, &respErr) {
		return errors.NewStoreError(op, c.name, blob, reasonPhrase(respErr), err)
	}
	return err
}

// validMetadataName reports whether name is an identifier: a letter or underscore followed by
// letters, digits or underscores.
func validMetadataName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// reasonPhrase prefers the HTTP status line, falling back to the storage error code.
func reasonPhrase(respErr *azcore.ResponseError) string {
	if respErr.RawResponse != nil && respErr.RawResponse.Status != "" {
		if respErr.ErrorCode != "" {
			return respErr.RawResponse.Status + " (" + respErr.ErrorCode + ")"
		}
		return respErr.RawResponse.Status
	}
	if respErr.ErrorCode != "" {
		return respErr.ErrorCode
	}
	return http.StatusText(respErr.StatusCode)
}
