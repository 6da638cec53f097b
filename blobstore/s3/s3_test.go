/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/blobstream/blobstore"
	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

type storedObject struct {
	data     []byte
	metadata http.Header
}

// fakeBucketService answers path-style PutObject, GetObject and ListObjectsV2 calls.
type fakeBucketService struct {
	mu      sync.Mutex
	objects map[string]storedObject
	status  int
	code    string
}

func (f *fakeBucketService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		code := f.code
		if code == "" {
			code = "AccessDenied"
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(f.status)
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message></Error>`, code, code)
		return
	}

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	switch {
	case r.Method == http.MethodGet && len(parts) == 1 && r.URL.Query().Get("list-type") == "2":
		keys := make([]string, 0, len(f.objects))
		for key := range f.objects {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Name>%s</Name><KeyCount>%d</KeyCount><IsTruncated>false</IsTruncated>`, parts[0], len(keys))
		for _, key := range keys {
			fmt.Fprintf(w, `<Contents><Key>%s</Key><Size>%d</Size></Contents>`, key, len(f.objects[key].data))
		}
		fmt.Fprint(w, `</ListBucketResult>`)

	case r.Method == http.MethodPut && len(parts) == 2:
		body, _ := io.ReadAll(r.Body)
		md := http.Header{}
		for k, v := range r.Header {
			if strings.HasPrefix(strings.ToLower(k), "x-amz-meta-") {
				md[k] = v
			}
		}
		f.objects[parts[1]] = storedObject{data: body, metadata: md}
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodGet && len(parts) == 2:
		object, ok := f.objects[parts[1]]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		for k, v := range object.metadata {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(object.data)))
		w.WriteHeader(http.StatusOK)
		w.Write(object.data)

	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newTestContainer(t *testing.T, service *fakeBucketService) blobstore.Container {
	t.Helper()

	server := httptest.NewServer(service)
	t.Cleanup(server.Close)

	connStr := fmt.Sprintf("Region=us-east-1;AccessKey=test;SecretKey=test;Endpoint=%s;UsePathStyle=true", server.URL)
	locator, err := streammodels.NewConnectionStringBlobContainerLocator("c1", connStr, 5*time.Second)
	require.NoError(t, err)

	c, err := New(WithMaxRetries(0)).Open(context.Background(), locator)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestS3Container(t *testing.T) {
	ctx := context.Background()

	t.Run("UploadDownloadList", func(t *testing.T) {
		c := newTestContainer(t, &fakeBucketService{objects: map[string]storedObject{}})

		seq, err := c.Upload(ctx, "abc", []byte{1, 2, 3}, map[string]string{"tag1": "value1"})
		require.NoError(t, err)
		assert.Equal(t, blobstore.NoSequenceNumber, seq)

		result, err := c.Download(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, blobstore.StatusOK, result.Status)
		assert.Equal(t, []byte{1, 2, 3}, result.Data)
		assert.EqualValues(t, 3, result.ContentLength)

		found := false
		for k, v := range result.Metadata {
			if strings.EqualFold(k, "tag1") && v == "value1" {
				found = true
			}
		}
		assert.True(t, found, "metadata not returned: %v", result.Metadata)

		names, err := c.ListBlobs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"abc"}, names)
	})

	t.Run("MissingKeyIsNotFoundStatus", func(t *testing.T) {
		c := newTestContainer(t, &fakeBucketService{objects: map[string]storedObject{}})

		result, err := c.Download(ctx, "zzz")
		require.NoError(t, err)
		assert.Equal(t, blobstore.StatusNotFound, result.Status)
	})

	t.Run("MissingBucketIsFailure", func(t *testing.T) {
		c := newTestContainer(t, &fakeBucketService{objects: map[string]storedObject{}, status: http.StatusNotFound, code: "NoSuchBucket"})

		result, err := c.Download(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, blobstore.StatusError, result.Status)
		assert.Contains(t, result.Reason, "NoSuchBucket")
		assert.Contains(t, result.Reason, "404")
	})

	t.Run("FailureCarriesReasonPhrase", func(t *testing.T) {
		c := newTestContainer(t, &fakeBucketService{objects: map[string]storedObject{}, status: http.StatusForbidden})

		result, err := c.Download(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, blobstore.StatusError, result.Status)
		assert.Contains(t, result.Reason, "403")

		_, err = c.Upload(ctx, "abc", []byte{1}, nil)
		assert.True(t, errors.IsStoreFailure(err), "expected store failure, got %v", err)

		_, err = c.ListBlobs(ctx)
		assert.True(t, errors.IsStoreFailure(err), "expected store failure, got %v", err)
	})
}

func TestOpenConnectionStringValidation(t *testing.T) {
	tests := []struct {
		name    string
		connStr string
	}{
		{"MissingRegion", "AccessKey=a;SecretKey=b"},
		{"BadPathStyle", "Region=us-east-1;UsePathStyle=maybe"},
		{"MalformedSegment", "Region=us-east-1;secret-without-equals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locator, err := streammodels.NewConnectionStringBlobContainerLocator("c1", tt.connStr, 0)
			require.NoError(t, err)

			_, err = New().Open(context.Background(), locator)
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err), "expected configuration error, got %v", err)
			assert.NotContains(t, err.Error(), "secret-without-equals")
		})
	}
}
