/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

import (
	"github.com/go-openapi/strfmt"
)

// NamedValue is a tag attached to a record.
type NamedValue struct {
	Name  string
	Value string
}

// StringSerializedIdentifier is one stored record's key with its declared type.
type StringSerializedIdentifier struct {
	StringSerializedID string
	IdentifierType     TypeRepresentation
}

// DescribedSerialization is a serialized object plus what is needed to deserialize it.
type DescribedSerialization interface {
	PayloadTypeRepresentation() TypeRepresentation
	SerializerRepresentation() SerializerRepresentation
	SerializationFormat() SerializationFormat
}

// BinaryDescribedSerialization holds a binary payload.
type BinaryDescribedSerialization struct {
	PayloadType       TypeRepresentation
	Serializer        SerializerRepresentation
	SerializedPayload []byte
}

func (b BinaryDescribedSerialization) PayloadTypeRepresentation() TypeRepresentation { return b.PayloadType }

func (b BinaryDescribedSerialization) SerializerRepresentation() SerializerRepresentation {
	return b.Serializer
}

func (b BinaryDescribedSerialization) SerializationFormat() SerializationFormat {
	return SerializationFormatBinary
}

// StringDescribedSerialization holds a string payload.
type StringDescribedSerialization struct {
	PayloadType       TypeRepresentation
	Serializer        SerializerRepresentation
	SerializedPayload string
}

func (s StringDescribedSerialization) PayloadTypeRepresentation() TypeRepresentation { return s.PayloadType }

func (s StringDescribedSerialization) SerializerRepresentation() SerializerRepresentation {
	return s.Serializer
}

func (s StringDescribedSerialization) SerializationFormat() SerializationFormat {
	return SerializationFormatString
}

// StreamRecordMetadata describes a stored record.
type StreamRecordMetadata struct {
	StringSerializedID         string
	SerializerRepresentation   SerializerRepresentation
	TypeRepresentationOfID     TypeRepresentationWithAndWithoutVersion
	TypeRepresentationOfObject TypeRepresentationWithAndWithoutVersion
	Tags                       []NamedValue
	TimestampUTC               strfmt.DateTime
	ObjectTimestampUTC         *strfmt.DateTime
	Pruned                     bool
}

// StreamRecord is the result of a successful get.
type StreamRecord struct {
	// InternalRecordID is assigned by the store; NoInternalRecordID when the store has no ordering.
	InternalRecordID int64
	Metadata         StreamRecordMetadata
	Payload          DescribedSerialization
}

// NoInternalRecordID is reported when the backing store assigns no sequence number.
const NoInternalRecordID int64 = 0

// PutRecordResult is the result of a put.
type PutRecordResult struct {
	InternalRecordIDOfPutRecord int64
	ExistingRecordIDs           []int64
	PrunedRecordIDs             []int64
}
