/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package serialization

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

// Serializer converts objects to and from one wire representation.
type Serializer interface {
	Representation() streammodels.SerializerRepresentation
	SerializeToBytes(v any) ([]byte, error)
	SerializeToString(v any) (string, error)
	Deserialize(data []byte, v any) error
}

// Factory builds serializers from their representation.
type Factory interface {
	BuildSerializer(rep streammodels.SerializerRepresentation) (Serializer, error)
}

// DefaultFactory builds the JSON and BSON serializers.
type DefaultFactory struct{}

// NewFactory returns the default serializer factory.
func NewFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// BuildSerializer returns a serializer for rep. ConfigurationName is carried through unchanged.
func (f *DefaultFactory) BuildSerializer(rep streammodels.SerializerRepresentation) (Serializer, error) {
	switch rep.Kind {
	case streammodels.SerializationKindJSON:
		return &jsonSerializer{rep: rep}, nil
	case streammodels.SerializationKindBSON:
		return &bsonSerializer{rep: rep}, nil
	}
	return nil, errors.NewConfigurationError("serializerRepresentation.kind", fmt.Sprintf("no serializer for kind %s", rep.Kind))
}

type jsonSerializer struct {
	rep streammodels.SerializerRepresentation
}

func (s *jsonSerializer) Representation() streammodels.SerializerRepresentation { return s.rep }

func (s *jsonSerializer) SerializeToBytes(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

func (s *jsonSerializer) SerializeToString(v any) (string, error) {
	data, err := s.SerializeToBytes(v)
	return string(data), err
}

func (s *jsonSerializer) Deserialize(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

// bsonSerializer wraps every value in a {"v": ...} document so scalars and slices can be stored.
type bsonSerializer struct {
	rep streammodels.SerializerRepresentation
}

type bsonEnvelope struct {
	V bson.RawValue `bson:"v"`
}

func (s *bsonSerializer) Representation() streammodels.SerializerRepresentation { return s.rep }

func (s *bsonSerializer) SerializeToBytes(v any) ([]byte, error) {
	data, err := bson.Marshal(bson.M{"v": v})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal BSON: %w", err)
	}
	return data, nil
}

// SerializeToString renders the document as relaxed extended JSON.
func (s *bsonSerializer) SerializeToString(v any) (string, error) {
	data, err := bson.MarshalExtJSON(bson.M{"v": v}, false, false)
	if err != nil {
		return "", fmt.Errorf("failed to marshal extended JSON: %w", err)
	}
	return string(data), nil
}

func (s *bsonSerializer) Deserialize(data []byte, v any) error {
	var envelope bsonEnvelope
	if err := bson.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal BSON: %w", err)
	}
	if err := envelope.V.Unmarshal(v); err != nil {
		return fmt.Errorf("failed to unmarshal BSON value: %w", err)
	}
	return nil
}
