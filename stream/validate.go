/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stream

import (
	"fmt"
	"strings"

	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

// A blob container can only hold string-named byte payloads, so every supported operation is
// checked against that shape before any store call. Slices count as present when non-empty.

const (
	filterPath   = "operation.RecordFilter"
	metadataPath = "operation.Metadata"
)

func mustBeAbsent[E any](field string, values []E) error {
	if len(values) > 0 {
		return errors.NewValidationError(field, fmt.Sprintf("must be empty; no support for %s", lastSegment(field)))
	}
	return nil
}

func mustBeStringType(field string, t streammodels.TypeRepresentation) error {
	if !t.EqualIgnoringVersion(streammodels.StringType) {
		return errors.NewValidationError(field, fmt.Sprintf("must be %s, got %s", streammodels.StringType.RemoveAssemblyVersions(), t))
	}
	return nil
}

func lastSegment(field string) string {
	return field[strings.LastIndex(field, ".")+1:]
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// validateGetLatestRecord returns the single blob name the operation addresses.
func validateGetLatestRecord(op *streammodels.GetLatestRecordOp) (string, error) {
	filter := op.RecordFilter

	if err := firstError(
		mustBeAbsent(filterPath+".InternalRecordIDs", filter.InternalRecordIDs),
		mustBeAbsent(filterPath+".Tags", filter.Tags),
		mustBeAbsent(filterPath+".DeprecatedIDTypes", filter.DeprecatedIDTypes),
	); err != nil {
		return "", err
	}

	if len(filter.IDs) != 1 {
		return "", errors.NewValidationError(filterPath+".IDs",
			fmt.Sprintf("must contain exactly one identifier, got %d", len(filter.IDs)))
	}
	id := filter.IDs[0]
	if strings.TrimSpace(id.StringSerializedID) == "" {
		return "", errors.NewValidationError(filterPath+".IDs[0].StringSerializedID", "cannot be null nor white space")
	}
	if err := mustBeStringType(filterPath+".IDs[0].IdentifierType", id.IdentifierType); err != nil {
		return "", err
	}

	if len(filter.IDTypes) > 0 {
		if len(filter.IDTypes) != 1 {
			return "", errors.NewValidationError(filterPath+".IDTypes",
				fmt.Sprintf("must contain exactly one element when specified, got %d", len(filter.IDTypes)))
		}
		if err := mustBeStringType(filterPath+".IDTypes[0]", filter.IDTypes[0]); err != nil {
			return "", err
		}
	}

	if len(filter.ObjectTypes) != 1 {
		return "", errors.NewValidationError(filterPath+".ObjectTypes",
			fmt.Sprintf("must contain exactly one element, got %d", len(filter.ObjectTypes)))
	}
	if !filter.ObjectTypes[0].EqualIgnoringVersion(streammodels.BytesType) {
		return "", errors.NewValidationError(filterPath+".ObjectTypes[0]",
			fmt.Sprintf("must be %s, got %s", streammodels.BytesType.RemoveAssemblyVersions(), filter.ObjectTypes[0]))
	}

	if filter.VersionMatchStrategy != streammodels.VersionMatchAny {
		return "", errors.NewValidationError(filterPath+".VersionMatchStrategy",
			fmt.Sprintf("must be %s, got %s", streammodels.VersionMatchAny, filter.VersionMatchStrategy))
	}
	if op.RecordNotFoundStrategy != streammodels.RecordNotFoundReturnDefault {
		return "", errors.NewValidationError("operation.RecordNotFoundStrategy",
			fmt.Sprintf("must be %s, got %s", streammodels.RecordNotFoundReturnDefault, op.RecordNotFoundStrategy))
	}

	return id.StringSerializedID, nil
}

// validatePutRecord returns the binary payload to upload.
func validatePutRecord(op *streammodels.PutRecordOp) (streammodels.BinaryDescribedSerialization, error) {
	var payload streammodels.BinaryDescribedSerialization
	switch p := op.Payload.(type) {
	case streammodels.BinaryDescribedSerialization:
		payload = p
	case *streammodels.BinaryDescribedSerialization:
		if p == nil {
			return payload, errors.NewValidationError("operation.Payload", "cannot be null")
		}
		payload = *p
	case nil:
		return payload, errors.NewValidationError("operation.Payload", "cannot be null")
	default:
		return payload, errors.NewValidationError("operation.Payload",
			fmt.Sprintf("only binary payloads are supported, got %s format", p.SerializationFormat()))
	}

	if strings.TrimSpace(op.Metadata.StringSerializedID) == "" {
		return payload, errors.NewValidationError(metadataPath+".StringSerializedID", "cannot be null nor white space")
	}
	if op.ExistingRecordStrategy != streammodels.ExistingRecordNone {
		return payload, errors.NewValidationError("operation.ExistingRecordStrategy",
			fmt.Sprintf("must be %s, got %s", streammodels.ExistingRecordNone, op.ExistingRecordStrategy))
	}
	if op.InternalRecordID != nil {
		return payload, errors.NewValidationError("operation.InternalRecordID",
			"must be null; the store assigns record ids")
	}
	switch op.VersionMatchStrategy {
	case streammodels.VersionMatchUnknown, streammodels.VersionMatchAny:
	default:
		return payload, errors.NewValidationError("operation.VersionMatchStrategy",
			fmt.Sprintf("must be %s when specified, got %s", streammodels.VersionMatchAny, op.VersionMatchStrategy))
	}
	if op.RecordRetentionCount != nil {
		return payload, errors.NewValidationError("operation.RecordRetentionCount",
			"must be null; a blob keeps only its latest content")
	}

	seen := make(map[string]bool, len(op.Metadata.Tags))
	for i, tag := range op.Metadata.Tags {
		field := fmt.Sprintf("%s.Tags[%d].Name", metadataPath, i)
		if strings.TrimSpace(tag.Name) == "" {
			return payload, errors.NewValidationError(field, "cannot be null nor white space")
		}
		key := strings.ToLower(tag.Name)
		if seen[key] {
			return payload, errors.NewValidationError(field, fmt.Sprintf("duplicate tag name %q", tag.Name))
		}
		seen[key] = true
		if strings.EqualFold(tag.Name, ObjectTimestampMetadataKey) {
			return payload, errors.NewValidationError(field,
				fmt.Sprintf("%s is reserved for the object timestamp", ObjectTimestampMetadataKey))
		}
	}

	return payload, nil
}

func validateGetDistinctStringSerializedIDs(op *streammodels.GetDistinctStringSerializedIDsOp) (streammodels.TypeRepresentation, error) {
	filter := op.RecordFilter

	if err := firstError(
		mustBeAbsent(filterPath+".IDs", filter.IDs),
		mustBeAbsent(filterPath+".InternalRecordIDs", filter.InternalRecordIDs),
		mustBeAbsent(filterPath+".ObjectTypes", filter.ObjectTypes),
		mustBeAbsent(filterPath+".Tags", filter.Tags),
		mustBeAbsent(filterPath+".DeprecatedIDTypes", filter.DeprecatedIDTypes),
	); err != nil {
		return streammodels.TypeRepresentation{}, err
	}

	if len(filter.IDTypes) != 1 {
		return streammodels.TypeRepresentation{}, errors.NewValidationError(filterPath+".IDTypes",
			fmt.Sprintf("must contain exactly one type, got %d", len(filter.IDTypes)))
	}
	if err := mustBeStringType(filterPath+".IDTypes[0]", filter.IDTypes[0]); err != nil {
		return streammodels.TypeRepresentation{}, err
	}

	switch filter.VersionMatchStrategy {
	case streammodels.VersionMatchUnknown, streammodels.VersionMatchAny:
	default:
		return streammodels.TypeRepresentation{}, errors.NewValidationError(filterPath+".VersionMatchStrategy",
			fmt.Sprintf("must be %s when specified, got %s", streammodels.VersionMatchAny, filter.VersionMatchStrategy))
	}

	return filter.IDTypes[0], nil
}
