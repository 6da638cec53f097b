/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

import (
	"reflect"
	"runtime"
)

// TypeRepresentation describes a type independently of the process that wrote it.
type TypeRepresentation struct {
	Namespace       string
	Name            string
	AssemblyVersion string
}

// RemoveAssemblyVersions returns a copy without the version so that writers built
// from different releases still compare equal.
func (t TypeRepresentation) RemoveAssemblyVersions() TypeRepresentation {
	t.AssemblyVersion = ""
	return t
}

// EqualIgnoringVersion compares two representations with versions removed.
func (t TypeRepresentation) EqualIgnoringVersion(other TypeRepresentation) bool {
	return t.RemoveAssemblyVersions() == other.RemoveAssemblyVersions()
}

// WithAndWithoutVersion pairs the representation with its version-less form.
func (t TypeRepresentation) WithAndWithoutVersion() TypeRepresentationWithAndWithoutVersion {
	return TypeRepresentationWithAndWithoutVersion{
		WithVersion:    t,
		WithoutVersion: t.RemoveAssemblyVersions(),
	}
}

func (t TypeRepresentation) String() string {
	name := t.Name
	if t.Namespace != "" {
		name = t.Namespace + "." + name
	}
	if t.AssemblyVersion != "" {
		name += ", Version=" + t.AssemblyVersion
	}
	return name
}

// TypeRepresentationWithAndWithoutVersion is stored on record metadata.
type TypeRepresentationWithAndWithoutVersion struct {
	WithVersion    TypeRepresentation
	WithoutVersion TypeRepresentation
}

// TypeRepresentationFor describes T. Predeclared types are versioned with the Go release
// that built the binary; named types carry no version unless the caller adds one.
func TypeRepresentationFor[T any]() TypeRepresentation {
	t := reflect.TypeOf((*T)(nil)).Elem()

	rep := TypeRepresentation{
		Namespace: t.PkgPath(),
		Name:      t.String(),
	}
	if rep.Namespace == "" {
		rep.AssemblyVersion = runtime.Version()
	}
	return rep
}

var (
	// StringType is the only identifier type a blob container can hold: the blob name.
	StringType = TypeRepresentationFor[string]()
	// BytesType is the only object type a blob container can hold: the blob content.
	BytesType = TypeRepresentationFor[[]byte]()
)
