// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goots/pom-deployer/pkg/types"
)

var (
	// ErrMissingInput is the sentinel error wrapped by MissingInputError.
	ErrMissingInput = errors.New("descriptor file not found")
	// ErrInvalidRequest is the sentinel error wrapped by InvalidRequestError.
	ErrInvalidRequest = errors.New("invalid publish request")
	// ErrNoHostProject is returned when the session has no current project.
	ErrNoHostProject = errors.New("no host project in session")
)

type (
	// MissingInputError is returned when the descriptor does not exist and
	// errorOnMissing is set.
	MissingInputError struct {
		PomName types.FilesystemPath
	}

	// InvalidRequestError is returned when request fields fail validation.
	// It wraps ErrInvalidRequest for errors.Is() compatibility and carries
	// one error per invalid field.
	InvalidRequestError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	return fmt.Sprintf("unable to find pomName %s to install/deploy", e.PomName)
}

// Unwrap returns ErrMissingInput so callers can use errors.Is for programmatic detection.
func (e *MissingInputError) Unwrap() error { return ErrMissingInput }

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid publish request: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidRequest so callers can use errors.Is for programmatic detection.
func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }
