/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stream

import (
	"sort"
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/blobstream/streammodels"
)

// ObjectTimestampMetadataKey carries a record's object timestamp in blob metadata.
const ObjectTimestampMetadataKey = "ObjectTimestampUtc"

// toBlobMetadata flattens tags and the object timestamp. Tag names are unique once validated.
func toBlobMetadata(metadata streammodels.StreamRecordMetadata) map[string]string {
	if len(metadata.Tags) == 0 && metadata.ObjectTimestampUTC == nil {
		return nil
	}

	md := make(map[string]string, len(metadata.Tags)+1)
	for _, tag := range metadata.Tags {
		md[tag.Name] = tag.Value
	}
	if metadata.ObjectTimestampUTC != nil {
		md[ObjectTimestampMetadataKey] = metadata.ObjectTimestampUTC.String()
	}
	return md
}

// fromBlobMetadata is the inverse of toBlobMetadata. Stores may change the case of keys, so the
// timestamp key is matched case-insensitively and tags come back sorted by name. A timestamp that
// does not parse is kept as a tag.
func fromBlobMetadata(md map[string]string) ([]streammodels.NamedValue, *strfmt.DateTime) {
	var (
		tags      []streammodels.NamedValue
		timestamp *strfmt.DateTime
	)
	for k, v := range md {
		if strings.EqualFold(k, ObjectTimestampMetadataKey) {
			if parsed, err := strfmt.ParseDateTime(v); err == nil {
				timestamp = &parsed
				continue
			}
		}
		tags = append(tags, streammodels.NamedValue{Name: k, Value: v})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, timestamp
}
