/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/blobstream/errors"
	"github.com/suparena/blobstream/streammodels"
)

// File is the top level of a stream definition file.
type File struct {
	Streams []StreamDefinition `yaml:"streams"`
}

// StreamDefinition declares one stream.
type StreamDefinition struct {
	Name string `yaml:"name"`
	// Provider names the registered blob capability, e.g. "azure", "s3", "dynamodb" or "memory".
	Provider            string               `yaml:"provider"`
	AccessKinds         []string             `yaml:"accessKinds"`
	Serializer          SerializerDefinition `yaml:"serializer"`
	SerializationFormat string               `yaml:"serializationFormat"`
	Locators            []LocatorDefinition  `yaml:"locators"`
}

type SerializerDefinition struct {
	Kind              string `yaml:"kind"`
	ConfigurationName string `yaml:"configurationName"`
}

// LocatorDefinition declares a blob container. ConnectionStringEnv names an environment variable
// holding the connection string, which keeps secrets out of the file.
type LocatorDefinition struct {
	ContainerName       string        `yaml:"containerName"`
	ConnectionString    string        `yaml:"connectionString"`
	ConnectionStringEnv string        `yaml:"connectionStringEnv"`
	Timeout             time.Duration `yaml:"timeout"`
}

// LoadEnv loads .env files into the process environment. Missing files are skipped; variables
// that are already set are not overridden.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, filename := range filenames {
		if err := godotenv.Load(filename); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", filename, err)
		}
	}
	return nil
}

// Load reads a stream definition file.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a stream definition document. Unknown fields are rejected. ${VAR} references in
// string values are expanded from the environment after decoding; any other '$' is kept as is.
func Parse(r io.Reader) (*File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	for i := range file.Streams {
		file.Streams[i].expandEnv()
	}

	seen := make(map[string]bool, len(file.Streams))
	for i, def := range file.Streams {
		if strings.TrimSpace(def.Name) == "" {
			return nil, errors.NewConfigurationError(fmt.Sprintf("streams[%d].name", i), "cannot be empty")
		}
		if seen[def.Name] {
			return nil, errors.NewAlreadyExistsError("stream", def.Name)
		}
		seen[def.Name] = true
	}
	return &file, nil
}

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(value string) string {
	return envReference.ReplaceAllStringFunc(value, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

func (d *StreamDefinition) expandEnv() {
	d.Name = expandEnv(d.Name)
	d.Provider = expandEnv(d.Provider)
	for i := range d.AccessKinds {
		d.AccessKinds[i] = expandEnv(d.AccessKinds[i])
	}
	d.Serializer.Kind = expandEnv(d.Serializer.Kind)
	d.Serializer.ConfigurationName = expandEnv(d.Serializer.ConfigurationName)
	d.SerializationFormat = expandEnv(d.SerializationFormat)
	for i := range d.Locators {
		l := &d.Locators[i]
		l.ContainerName = expandEnv(l.ContainerName)
		l.ConnectionString = expandEnv(l.ConnectionString)
		l.ConnectionStringEnv = expandEnv(l.ConnectionStringEnv)
	}
}

// Stream returns the definition with the given name.
func (f *File) Stream(name string) (*StreamDefinition, error) {
	for i := range f.Streams {
		if f.Streams[i].Name == name {
			return &f.Streams[i], nil
		}
	}
	return nil, errors.NewNotFoundError("stream", name)
}

// StreamConfig converts the definition. Access kinds default to all and the serialization
// format defaults to binary.
func (d StreamDefinition) StreamConfig() (*streammodels.StreamConfig, error) {
	field := func(name string) string { return fmt.Sprintf("streams[%s].%s", d.Name, name) }

	accessKinds := streammodels.AccessAll
	if len(d.AccessKinds) > 0 {
		kinds, err := streammodels.ParseStreamAccessKinds(d.AccessKinds...)
		if err != nil {
			return nil, errors.NewConfigurationError(field("accessKinds"), err.Error())
		}
		accessKinds = kinds
	}

	kind, err := streammodels.ParseSerializationKind(d.Serializer.Kind)
	if err != nil {
		return nil, errors.NewConfigurationError(field("serializer.kind"), err.Error())
	}

	format := streammodels.SerializationFormatBinary
	if d.SerializationFormat != "" {
		format, err = streammodels.ParseSerializationFormat(d.SerializationFormat)
		if err != nil {
			return nil, errors.NewConfigurationError(field("serializationFormat"), err.Error())
		}
	}

	locators := make([]streammodels.ResourceLocator, 0, len(d.Locators))
	for i, l := range d.Locators {
		connectionString := l.ConnectionString
		if l.ConnectionStringEnv != "" {
			connectionString = os.Getenv(l.ConnectionStringEnv)
			if connectionString == "" {
				return nil, errors.NewConfigurationError(field(fmt.Sprintf("locators[%d].connectionStringEnv", i)),
					fmt.Sprintf("environment variable %s is not set", l.ConnectionStringEnv))
			}
		}

		locator, err := streammodels.NewConnectionStringBlobContainerLocator(l.ContainerName, connectionString, l.Timeout)
		if err != nil {
			var validationErr *errors.ValidationError
			if stderrors.As(err, &validationErr) {
				return nil, errors.NewConfigurationError(field(fmt.Sprintf("locators[%d].%s", i, validationErr.Field)), validationErr.Message)
			}
			return nil, err
		}
		locators = append(locators, locator)
	}

	return streammodels.NewStreamConfig(
		d.Name,
		accessKinds,
		&streammodels.SerializerRepresentation{Kind: kind, ConfigurationName: d.Serializer.ConfigurationName},
		format,
		locators,
	)
}
