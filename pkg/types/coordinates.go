// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidCoordinate is the sentinel error wrapped by InvalidCoordinateError.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// idPattern is the id syntax Maven's model validator enforces for groupId and artifactId.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_\-.]+$`)

type (
	// GroupID is a Maven groupId such as "org.example".
	GroupID string

	// ArtifactID is a Maven artifactId such as "my-bom".
	ArtifactID string

	// InvalidCoordinateError is returned when a coordinate does not match the
	// Maven id syntax. Field names the coordinate ("groupId", "artifactId").
	InvalidCoordinateError struct {
		Field string
		Value string
	}
)

// String returns the string representation of the GroupID.
func (g GroupID) String() string { return string(g) }

// Validate returns an error unless the GroupID is a non-empty Maven id.
func (g GroupID) Validate() error { return validateID("groupId", string(g)) }

// Path returns the groupId as a repository directory path ("org/example").
func (g GroupID) Path() string {
	b := []byte(g)
	for i := range b {
		if b[i] == '.' {
			b[i] = '/'
		}
	}
	return string(b)
}

// String returns the string representation of the ArtifactID.
func (a ArtifactID) String() string { return string(a) }

// Validate returns an error unless the ArtifactID is a non-empty Maven id.
func (a ArtifactID) Validate() error { return validateID("artifactId", string(a)) }

func validateID(field, value string) error {
	if !idPattern.MatchString(value) {
		return &InvalidCoordinateError{Field: field, Value: value}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidCoordinateError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: must be non-empty", e.Field)
	}
	return fmt.Sprintf("invalid %s %q: allowed characters are A-Z, a-z, 0-9, '_', '-' and '.'", e.Field, e.Value)
}

// Unwrap returns ErrInvalidCoordinate for errors.Is() compatibility.
func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }
