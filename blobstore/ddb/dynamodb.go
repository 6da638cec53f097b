/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/registry"
	"github.com/suparena/blobstream/streammodels"
)

// Connection string keys, matched case-insensitively:
//
//	Region=us-east-1;AccessKey=...;SecretKey=...;Table=blobs;Endpoint=http://localhost:8000
const (
	keyRegion    = "region"
	keyAccessKey = "accesskey"
	keySecretKey = "secretkey"
	keyTable     = "table"
	keyEndpoint  = "endpoint"
)

const blobSortKeyPrefix = "BLOB#"

// blobIndexMap lays out every container in one table: one partition per container, one item per blob.
var blobIndexMap = map[string]string{
	"PK": "CONTAINER#{Container}",
	"SK": blobSortKeyPrefix + "{Name}",
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

type blobKey struct {
	Container string
	Name      string
}

// blobItem is the stored shape of a blob.
type blobItem struct {
	Payload        []byte            `dynamodbav:"Payload"`
	Metadata       map[string]string `dynamodbav:"Metadata"`
	SequenceNumber int64             `dynamodbav:"SequenceNumber"`
}

func init() {
	registry.RegisterCapability("dynamodb", func() (blobstore.Capability, error) {
		return New(), nil
	})
}

// expandMacros fills the "{Field}" placeholders of indexMap from the attributes of keysInput.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		var missing string
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")
			switch tv := av[key].(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			default:
				missing = key
				return ""
			}
		})
		if missing != "" {
			return nil, fmt.Errorf("macro {%s} in %s has no string or number value", missing, fieldName)
		}
		res[fieldName] = expanded
	}
	return res, nil
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// Capability implements blobstore.Capability on a DynamoDB table. Unlike object stores it numbers
// every write to a blob, so uploads report a real sequence number.
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

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string, optFns ...func(*sdk.Options)) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg, optFns...), nil
}

// Open builds a DynamoDB client for the table named in the connection string. The locator's
// container name selects the partition.
func (c *Capability) Open(ctx context.Context, locator *streammodels.ConnectionStringBlobContainerLocator) (blobstore.Container, error) {
	settings, err := blobstore.ParseConnectionString(locator.ConnectionString())
	if err != nil {
		return nil, errors.NewConfigurationError("connectionString", err.Error())
	}
	for _, required := range []string{keyRegion, keyAccessKey, keySecretKey, keyTable} {
		if settings[required] == "" {
			return nil, errors.NewConfigurationError("connectionString", fmt.Sprintf("%s is required for the dynamodb provider", required))
		}
	}

	httpClient := awshttp.NewBuildableClient().WithTimeout(locator.Timeout())

	client, err := NewDynamoDBClient(ctx, settings[keyAccessKey], settings[keySecretKey], settings[keyRegion],
		func(o *sdk.Options) {
			o.HTTPClient = httpClient
			if endpoint := settings[keyEndpoint]; endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
			if c.maxRetries >= 0 {
				o.RetryMaxAttempts = c.maxRetries + 1
			}
		})
	if err != nil {
		return nil, err
	}

	return &container{
		client:     client,
		httpClient: httpClient,
		tableName:  settings[keyTable],
		name:       locator.ContainerName(),
	}, nil
}

type container struct {
	client     *sdk.Client
	httpClient *awshttp.BuildableClient
	tableName  string
	name       string
}

func (c *container) key(name string) (map[string]types.AttributeValue, error) {
	expanded, err := expandMacros(blobIndexMap, blobKey{Container: c.name, Name: name})
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expanded)
}

// Upload replaces the payload and metadata and increments the blob's sequence number in one write.
func (c *container) Upload(ctx context.Context, name string, data []byte, metadata map[string]string) (int64, error) {
	key, err := c.key(name)
	if err != nil {
		return 0, fmt.Errorf("failed to build key: %w", err)
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	md, err := attributevalue.Marshal(metadata)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	out, err := c.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:        &c.tableName,
		Key:              key,
		UpdateExpression: aws.String("SET #payload = :payload, #metadata = :metadata ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#payload":  "Payload",
			"#metadata": "Metadata",
			"#seq":      "SequenceNumber",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":payload":  &types.AttributeValueMemberB{Value: data},
			":metadata": md,
			":one":      &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, c.storeError("upload", name, err)
	}

	var item blobItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return 0, fmt.Errorf("failed to unmarshal sequence number: %w", err)
	}
	return item.SequenceNumber, nil
}

func (c *container) Download(ctx context.Context, name string) (*blobstore.DownloadResult, error) {
	key, err := c.key(name)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := c.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &c.tableName,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		if httpStatus(err) != 0 {
			return &blobstore.DownloadResult{
				Status:        blobstore.StatusError,
				Reason:        reasonPhrase(err),
				ContentLength: -1,
			}, nil
		}
		return nil, err
	}
	if out.Item == nil {
		return &blobstore.DownloadResult{
			Status:        blobstore.StatusNotFound,
			Reason:        "item not found",
			ContentLength: -1,
		}, nil
	}

	var item blobItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return &blobstore.DownloadResult{
		Status:         blobstore.StatusOK,
		Data:           item.Payload,
		ContentLength:  int64(len(item.Payload)),
		SequenceNumber: item.SequenceNumber,
		Metadata:       item.Metadata,
	}, nil
}

func (c *container) ListBlobs(ctx context.Context) ([]string, error) {
	expanded, err := expandMacros(map[string]string{"PK": blobIndexMap["PK"]}, blobKey{Container: c.name})
	if err != nil {
		return nil, err
	}

	paginator := sdk.NewQueryPaginator(c.client, &sdk.QueryInput{
		TableName:              &c.tableName,
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: expanded["PK"]},
			":prefix": &types.AttributeValueMemberS{Value: blobSortKeyPrefix},
		},
		ProjectionExpression: aws.String("SK"),
		ConsistentRead:       aws.Bool(true),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.storeError("list", "", err)
		}
		for _, item := range page.Items {
			if sk, ok := item["SK"].(*types.AttributeValueMemberS); ok {
				names = append(names, strings.TrimPrefix(sk.Value, blobSortKeyPrefix))
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
		return errors.NewStoreError(op, c.name, blob, reasonPhrase(err), err)
	}
	return err
}

func httpStatus(err error) int {
	var respErr interface{ HTTPStatusCode() int }
	if stderrors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}

func reasonPhrase(err error) string {
	status := httpStatus(err)
	reason := fmt.Sprintf("%d %s", status, http.StatusText(status))
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		return reason + " (" + apiErr.ErrorCode() + ")"
	}
	return reason
}
