package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/suparena/blobstream/config"
	"github.com/suparena/blobstream/errors"
)

const testConfig = `
streams:
  - name: scratch
    provider: memory
    serializer: {kind: json}
    locators:
      - containerName: c1
        connectionString: UseDevelopmentStorage=true
  - name: other
    provider: memory
    serializer: {kind: json}
    locators:
      - containerName: c2
        connectionString: UseDevelopmentStorage=true
`

func withConfig(t *testing.T, doc string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "streams.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	oldConfig, oldStream, oldEnv := *configFlag, *streamFlag, *envFlag
	*configFlag, *streamFlag, *envFlag = path, "scratch", filepath.Join(t.TempDir(), "none.env")
	t.Cleanup(func() { *configFlag, *streamFlag, *envFlag = oldConfig, oldStream, oldEnv })
}

func TestRun(t *testing.T) {
	withConfig(t, testConfig)
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("ListEmpty", func(t *testing.T) {
		var out bytes.Buffer
		if err := run(ctx, logger, []string{"list"}, nil, &out); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if out.Len() != 0 {
			t.Fatalf("Expected no output, got %q", out.String())
		}
	})

	t.Run("PutFromStdin", func(t *testing.T) {
		if err := run(ctx, logger, []string{"put", "abc"}, strings.NewReader("hello"), &bytes.Buffer{}); err != nil {
			t.Fatalf("put failed: %v", err)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		err := run(ctx, logger, []string{"get", "abc"}, nil, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), `"abc"`) {
			t.Fatalf("Expected missing record error, got: %v", err)
		}
	})

	t.Run("BadUsage", func(t *testing.T) {
		for _, args := range [][]string{{"get"}, {"put"}, {"delete", "abc"}} {
			if err := run(ctx, logger, args, nil, &bytes.Buffer{}); err == nil {
				t.Fatalf("Expected error for %v", args)
			}
		}
	})
}

func TestSelectStream(t *testing.T) {
	file, err := config.Parse(strings.NewReader(testConfig))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := selectStream(file, ""); err == nil {
		t.Fatal("Expected an error when several streams are defined")
	}
	def, err := selectStream(file, "other")
	if err != nil || def.Name != "other" {
		t.Fatalf("Unexpected result %v, %v", def, err)
	}
	if _, err := selectStream(file, "missing"); !errors.IsNotFound(err) {
		t.Fatalf("Expected not found, got: %v", err)
	}

	file.Streams = file.Streams[:1]
	def, err = selectStream(file, "")
	if err != nil || def.Name != "scratch" {
		t.Fatalf("Unexpected result %v, %v", def, err)
	}
}

func TestTagFlags(t *testing.T) {
	var f tagFlags
	if err := f.Set("region=eu"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("empty="); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("novalue"); err == nil {
		t.Fatal("Expected an error for a tag without '='")
	}
	if got := f.String(); got != "region=eu,empty=" {
		t.Fatalf("Unexpected tags %q", got)
	}
}
