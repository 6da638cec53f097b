/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blobstore

import (
	"strings"
	"testing"
)

func TestParseConnectionString(t *testing.T) {
	t.Run("KeysAreCaseInsensitive", func(t *testing.T) {
		settings, err := ParseConnectionString("Region=us-east-1; AccessKey=AKIA;SecretKey=abc==;")
		if err != nil {
			t.Fatalf("ParseConnectionString failed: %v", err)
		}
		if settings["region"] != "us-east-1" {
			t.Errorf("Expected region us-east-1, got %q", settings["region"])
		}
		if settings["secretkey"] != "abc==" {
			t.Errorf("Expected value with '=' preserved, got %q", settings["secretkey"])
		}
		if len(settings) != 3 {
			t.Errorf("Expected 3 settings, got %d", len(settings))
		}
	})

	t.Run("MalformedSegmentDoesNotLeakValue", func(t *testing.T) {
		_, err := ParseConnectionString("Region=us-east-1;supersecret")
		if err == nil {
			t.Fatal("Expected an error for a segment without '='")
		}
		if strings.Contains(err.Error(), "supersecret") {
			t.Errorf("Error message leaks the segment: %v", err)
		}
	})
}

func TestDownloadStatusString(t *testing.T) {
	if StatusPartialContent.String() != "PartialContent" {
		t.Errorf("Unexpected name %q", StatusPartialContent.String())
	}
	if DownloadStatus(42).String() != "DownloadStatus(42)" {
		t.Errorf("Unexpected name %q", DownloadStatus(42).String())
	}
}
