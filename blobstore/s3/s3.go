/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/registry"
	"github.com/suparena/blobstream/streammodels"
)

// Connection string keys, matched case-insensitively:
//
//	Region=us-east-1;AccessKey=...;SecretKey=...;Endpoint=http://localhost:9000;UsePathStyle=true
const (
	keyRegion       = "region"
	keyAccessKey    = "accesskey"
	keySecretKey    = "secretkey"
	keySessionToken = "sessiontoken"
	keyEndpoint     = "endpoint"
	keyUsePathStyle = "usepathstyle"
)

func init() {
	registry.RegisterCapability("s3", func() (blobstore.Capability, error) {
		return New(), nil
	})
}

// Capability implements blobstore.Capability on Amazon S3 and S3-compatible stores.
// The locator's container name is the bucket.
type Capability struct {
	maxRetries int
}

// Option configures a Capability.
type Option func(*Capability)

// WithMaxRetries sets how many times the SDK retries a failed request. Zero disables retries.
func WithMaxRetries(n int) Option {
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

// Open builds an S3 client from the locator's connection string.
func (c *Capability) Open(ctx context.Context, locator *streammodels.ConnectionStringBlobContainerLocator) (blobstore.Container, error) {
	settings, err := blobstore.ParseConnectionString(locator.ConnectionString())
	if err != nil {
		return nil, errors.NewConfigurationError("connectionString", err.Error())
	}
	region := settings[keyRegion]
	if region == "" {
		return nil, errors.NewConfigurationError("connectionString", "Region is required for the s3 provider")
	}

	httpClient := awshttp.NewBuildableClient().WithTimeout(locator.Timeout())

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithHTTPClient(httpClient),
	}
	if settings[keyAccessKey] != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings[keyAccessKey], settings[keySecretKey], settings[keySessionToken]),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	usePathStyle := false
	if raw := settings[keyUsePathStyle]; raw != "" {
		usePathStyle, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.NewConfigurationError("connectionString", "UsePathStyle must be true or false")
		}
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint := settings[keyEndpoint]; endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = usePathStyle
		// S3-compatible stores do not all accept the default flexible checksums
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if c.maxRetries >= 0 {
			o.RetryMaxAttempts = c.maxRetries + 1
		}
	})

	return &container{
		client:     client,
		httpClient: httpClient,
		bucket:     locator.ContainerName(),
	}, nil
}

type container struct {
	client     *sdk.Client
	httpClient *awshttp.BuildableClient
	bucket     string
}

func (c *container) Upload(ctx context.Context, name string, data []byte, metadata map[string]string) (int64, error) {
	_, err := c.client.PutObject(ctx, &sdk.PutObjectInput{
		Bucket:   aws.String(c.bucket),
		Key:      aws.String(name),
		Body:     bytes.NewReader(data),
		Metadata: metadata,
	})
	if err != nil {
		return 0, c.storeError("upload", name, err)
	}
	return blobstore.NoSequenceNumber, nil
}

func (c *container) Download(ctx context.Context, name string) (*blobstore.DownloadResult, error) {
	output, err := c.client.GetObject(ctx, &sdk.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return &blobstore.DownloadResult{
				Status:        blobstore.StatusNotFound,
				Reason:        "NoSuchKey",
				ContentLength: -1,
			}, nil
		}
		if httpStatus(err) != 0 {
			return &blobstore.DownloadResult{
				Status:        blobstore.StatusError,
				Reason:        reasonPhrase(err),
				ContentLength: -1,
			}, nil
		}
		return nil, err
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", name, err)
	}

	result := &blobstore.DownloadResult{
		Status:         blobstore.StatusOK,
		Data:           data,
		ContentLength:  aws.ToInt64(output.ContentLength),
		SequenceNumber: blobstore.NoSequenceNumber,
		Metadata:       make(map[string]string, len(output.Metadata)),
	}
	if output.ContentLength == nil {
		result.ContentLength = -1
	}
	if output.ContentRange != nil {
		result.Status = blobstore.StatusPartialContent
	}
	for k, v := range output.Metadata {
		result.Metadata[k] = v
	}
	return result, nil
}

func (c *container) ListBlobs(ctx context.Context) ([]string, error) {
	var names []string

	paginator := sdk.NewListObjectsV2Paginator(c.client, &sdk.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.storeError("list", "", err)
		}
		for _, object := range page.Contents {
			if object.Key != nil {
				names = append(names, *object.Key)
			}
		}
	}
	return names, nil
}

func (c *container) Close() error {
	c.httpClient.GetTransport().CloseIdleConnections()
	return nil
}

func (c *container) storeError(op, blob string, err error) error {
	if httpStatus(err) != 0 {
		return errors.NewStoreError(op, c.bucket, blob, reasonPhrase(err), err)
	}
	return err
}

// isNoSuchKey reports whether the object itself is missing. Other 404s, such as NoSuchBucket, are failures.
func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if stderrors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return stderrors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

// httpStatus returns the response status carried by err, or 0 when no response was received.
func httpStatus(err error) int {
	var respErr interface{ HTTPStatusCode() int }
	if stderrors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}

func reasonPhrase(err error) string {
	reason := ""
	if status := httpStatus(err); status != 0 {
		reason = fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		if reason == "" {
			return apiErr.ErrorCode()
		}
		return reason + " (" + apiErr.ErrorCode() + ")"
	}
	return reason
}
