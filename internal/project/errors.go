// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
)

// ErrInvalidProject is the sentinel error wrapped by InvalidProjectError.
var ErrInvalidProject = errors.New("invalid project")

// InvalidProjectError is returned when a loaded pom.xml lacks an element
// the publisher needs.
type InvalidProjectError struct {
	File   string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidProjectError) Error() string {
	return fmt.Sprintf("invalid project %s: %s %s", e.File, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidProject for errors.Is() compatibility.
func (e *InvalidProjectError) Unwrap() error { return ErrInvalidProject }
