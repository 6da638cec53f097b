/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package serialization

import (
	"strings"
	"testing"

	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

type order struct {
	ID    string   `json:"id" bson:"id"`
	Total float64  `json:"total" bson:"total"`
	Items []string `json:"items" bson:"items"`
}

func TestBuildSerializer(t *testing.T) {
	factory := NewFactory()

	for _, kind := range []streammodels.SerializationKind{streammodels.SerializationKindJSON, streammodels.SerializationKindBSON} {
		t.Run(kind.String(), func(t *testing.T) {
			rep := streammodels.SerializerRepresentation{Kind: kind, ConfigurationName: "default"}
			s, err := factory.BuildSerializer(rep)
			if err != nil {
				t.Fatalf("BuildSerializer failed: %v", err)
			}
			if s.Representation() != rep {
				t.Fatalf("Representation mismatch: %v", s.Representation())
			}

			in := order{ID: "o-1", Total: 12.5, Items: []string{"a", "b"}}
			data, err := s.SerializeToBytes(in)
			if err != nil {
				t.Fatalf("SerializeToBytes failed: %v", err)
			}
			var out order
			if err := s.Deserialize(data, &out); err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}
			if out.ID != in.ID || out.Total != in.Total || len(out.Items) != 2 {
				t.Fatalf("Round trip mismatch: %+v", out)
			}

			text, err := s.SerializeToString(in)
			if err != nil {
				t.Fatalf("SerializeToString failed: %v", err)
			}
			if !strings.Contains(text, "o-1") {
				t.Fatalf("Expected id in %s", text)
			}
		})
	}

	t.Run("BSONScalar", func(t *testing.T) {
		s, _ := factory.BuildSerializer(streammodels.SerializerRepresentation{Kind: streammodels.SerializationKindBSON})
		data, err := s.SerializeToBytes("hello")
		if err != nil {
			t.Fatalf("SerializeToBytes failed: %v", err)
		}
		var out string
		if err := s.Deserialize(data, &out); err != nil || out != "hello" {
			t.Fatalf("Expected hello, got %q (%v)", out, err)
		}
	})

	t.Run("InvalidKind", func(t *testing.T) {
		_, err := factory.BuildSerializer(streammodels.SerializerRepresentation{})
		if !errors.IsConfigurationError(err) {
			t.Fatalf("Expected configuration error, got: %v", err)
		}
	})

	t.Run("MalformedInput", func(t *testing.T) {
		s, _ := factory.BuildSerializer(streammodels.SerializerRepresentation{Kind: streammodels.SerializationKindJSON})
		var out order
		if err := s.Deserialize([]byte("{"), &out); err == nil {
			t.Fatal("Expected an error for malformed JSON")
		}
	})
}
