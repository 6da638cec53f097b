/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

import (
	"strings"

	"github.com/suparena/blobstream/errors"
)

// StreamConfig describes an addressable stream backed by blob containers.
type StreamConfig struct {
	Name                            string
	AccessKinds                     StreamAccessKinds
	DefaultSerializerRepresentation *SerializerRepresentation
	DefaultSerializationFormat      SerializationFormat
	AllLocators                     []ResourceLocator
}

// NewStreamConfig validates and builds a StreamConfig. Whether the locator set is
// usable by a particular binding is checked when the stream is built.
func NewStreamConfig(
	name string,
	accessKinds StreamAccessKinds,
	defaultSerializerRepresentation *SerializerRepresentation,
	defaultSerializationFormat SerializationFormat,
	allLocators []ResourceLocator,
) (*StreamConfig, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewConfigurationError("name", "cannot be null nor white space")
	}
	if accessKinds == AccessNone {
		return nil, errors.NewConfigurationError("accessKinds", "cannot be None")
	}
	if defaultSerializerRepresentation == nil {
		return nil, errors.NewConfigurationError("defaultSerializerRepresentation", "cannot be null")
	}
	if defaultSerializerRepresentation.Kind == SerializationKindInvalid {
		return nil, errors.NewConfigurationError("defaultSerializerRepresentation.Kind", "cannot be Invalid")
	}
	if defaultSerializationFormat == SerializationFormatInvalid {
		return nil, errors.NewConfigurationError("defaultSerializationFormat", "cannot be Invalid")
	}
	if len(allLocators) == 0 {
		return nil, errors.NewConfigurationError("allLocators", "cannot be null nor empty")
	}
	for _, locator := range allLocators {
		if locator == nil {
			return nil, errors.NewConfigurationError("allLocators", "cannot contain null elements")
		}
	}

	locators := make([]ResourceLocator, len(allLocators))
	copy(locators, allLocators)
	representation := *defaultSerializerRepresentation

	return &StreamConfig{
		Name:                            name,
		AccessKinds:                     accessKinds,
		DefaultSerializerRepresentation: &representation,
		DefaultSerializationFormat:      defaultSerializationFormat,
		AllLocators:                     locators,
	}, nil
}
