/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

import (
	"fmt"
	"strings"
)

// StreamAccessKinds are bit flags describing what a stream may be used for.
type StreamAccessKinds int

const (
	AccessNone   StreamAccessKinds = 0
	AccessRead   StreamAccessKinds = 1 << 0
	AccessWrite  StreamAccessKinds = 1 << 1
	AccessHandle StreamAccessKinds = 1 << 2
	AccessAll                      = AccessRead | AccessWrite | AccessHandle
)

// Has reports whether every flag in other is set.
func (k StreamAccessKinds) Has(other StreamAccessKinds) bool {
	return other != AccessNone && k&other == other
}

func (k StreamAccessKinds) String() string {
	if k == AccessNone {
		return "None"
	}
	var parts []string
	if k.Has(AccessRead) {
		parts = append(parts, "Read")
	}
	if k.Has(AccessWrite) {
		parts = append(parts, "Write")
	}
	if k.Has(AccessHandle) {
		parts = append(parts, "Handle")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("StreamAccessKinds(%d)", int(k))
	}
	return strings.Join(parts, "|")
}

// ParseStreamAccessKinds parses names such as "read", "write", "handle" or "all".
func ParseStreamAccessKinds(names ...string) (StreamAccessKinds, error) {
	var kinds StreamAccessKinds
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "read":
			kinds |= AccessRead
		case "write":
			kinds |= AccessWrite
		case "handle":
			kinds |= AccessHandle
		case "all", "any":
			kinds |= AccessAll
		default:
			return AccessNone, fmt.Errorf("unknown access kind %q", name)
		}
	}
	return kinds, nil
}

// VersionMatchStrategy selects which versions of a type a filter matches.
type VersionMatchStrategy int

const (
	VersionMatchUnknown VersionMatchStrategy = iota
	VersionMatchAny
	VersionMatchSpecifiedVersion
	VersionMatchLatest
)

func (s VersionMatchStrategy) String() string {
	switch s {
	case VersionMatchUnknown:
		return "Unknown"
	case VersionMatchAny:
		return "Any"
	case VersionMatchSpecifiedVersion:
		return "SpecifiedVersion"
	case VersionMatchLatest:
		return "Latest"
	}
	return fmt.Sprintf("VersionMatchStrategy(%d)", int(s))
}

// RecordNotFoundStrategy tells a get what to do when nothing matches.
type RecordNotFoundStrategy int

const (
	RecordNotFoundUnknown RecordNotFoundStrategy = iota
	RecordNotFoundReturnDefault
	RecordNotFoundThrow
)

func (s RecordNotFoundStrategy) String() string {
	switch s {
	case RecordNotFoundUnknown:
		return "Unknown"
	case RecordNotFoundReturnDefault:
		return "ReturnDefault"
	case RecordNotFoundThrow:
		return "Throw"
	}
	return fmt.Sprintf("RecordNotFoundStrategy(%d)", int(s))
}

// ExistingRecordStrategy tells a put what to do when the id is already stored.
type ExistingRecordStrategy int

const (
	ExistingRecordNone ExistingRecordStrategy = iota
	ExistingRecordDoNotWriteIfFoundByID
	ExistingRecordThrowIfFoundByID
	ExistingRecordPruneIfFoundByID
)

func (s ExistingRecordStrategy) String() string {
	switch s {
	case ExistingRecordNone:
		return "None"
	case ExistingRecordDoNotWriteIfFoundByID:
		return "DoNotWriteIfFoundById"
	case ExistingRecordThrowIfFoundByID:
		return "ThrowIfFoundById"
	case ExistingRecordPruneIfFoundByID:
		return "PruneIfFoundById"
	}
	return fmt.Sprintf("ExistingRecordStrategy(%d)", int(s))
}

// SerializationKind names a codec family.
type SerializationKind int

const (
	SerializationKindInvalid SerializationKind = iota
	SerializationKindJSON
	SerializationKindBSON
)

func (k SerializationKind) String() string {
	switch k {
	case SerializationKindInvalid:
		return "Invalid"
	case SerializationKindJSON:
		return "Json"
	case SerializationKindBSON:
		return "Bson"
	}
	return fmt.Sprintf("SerializationKind(%d)", int(k))
}

// ParseSerializationKind accepts "json" or "bson", case-insensitively.
func ParseSerializationKind(name string) (SerializationKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return SerializationKindJSON, nil
	case "bson":
		return SerializationKindBSON, nil
	}
	return SerializationKindInvalid, fmt.Errorf("unknown serialization kind %q", name)
}

// SerializationFormat is the shape of a serialized payload.
type SerializationFormat int

const (
	SerializationFormatInvalid SerializationFormat = iota
	SerializationFormatString
	SerializationFormatBinary
)

func (f SerializationFormat) String() string {
	switch f {
	case SerializationFormatInvalid:
		return "Invalid"
	case SerializationFormatString:
		return "String"
	case SerializationFormatBinary:
		return "Binary"
	}
	return fmt.Sprintf("SerializationFormat(%d)", int(f))
}

// ParseSerializationFormat accepts "string" or "binary", case-insensitively.
func ParseSerializationFormat(name string) (SerializationFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string":
		return SerializationFormatString, nil
	case "binary":
		return SerializationFormatBinary, nil
	}
	return SerializationFormatInvalid, fmt.Errorf("unknown serialization format %q", name)
}

// SerializerRepresentation identifies the codec used for a payload.
type SerializerRepresentation struct {
	Kind SerializationKind
	// ConfigurationName optionally selects a named codec configuration.
	ConfigurationName string
}

func (r SerializerRepresentation) String() string {
	if r.ConfigurationName == "" {
		return r.Kind.String()
	}
	return r.Kind.String() + "/" + r.ConfigurationName
}
