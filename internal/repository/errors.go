// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRepositorySyntax is the sentinel error wrapped by InvalidRepositorySyntaxError.
	ErrInvalidRepositorySyntax = errors.New("invalid repository syntax")
	// ErrUnknownLayout is the sentinel error wrapped by UnknownLayoutError.
	ErrUnknownLayout = errors.New("unknown repository layout")
	// ErrNoRepositoryConfigured is the sentinel error wrapped by NoRepositoryConfiguredError.
	ErrNoRepositoryConfigured = errors.New("no deployment repository configured")
)

type (
	// InvalidRepositorySyntaxError is returned when an alternate repository
	// string is not of the form id::layout::url.
	InvalidRepositorySyntaxError struct {
		Value string
	}

	// UnknownLayoutError is returned when a layout name is not registered.
	UnknownLayoutError struct {
		Name  string
		Known []string
	}

	// NoRepositoryConfiguredError is returned when neither an alternate
	// repository nor a distribution-management repository is available.
	NoRepositoryConfiguredError struct {
		Version string
	}
)

// Error implements the error interface.
func (e *InvalidRepositorySyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax for alternative repository %q: use \"id::layout::url\"", e.Value)
}

// Unwrap returns ErrInvalidRepositorySyntax for errors.Is() compatibility.
func (e *InvalidRepositorySyntaxError) Unwrap() error { return ErrInvalidRepositorySyntax }

// Error implements the error interface.
func (e *UnknownLayoutError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("invalid repository layout: %s", e.Name)
	}
	return fmt.Sprintf("invalid repository layout: %s (valid: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Unwrap returns ErrUnknownLayout for errors.Is() compatibility.
func (e *UnknownLayoutError) Unwrap() error { return ErrUnknownLayout }

// Error implements the error interface.
func (e *NoRepositoryConfiguredError) Error() string {
	return "deployment failed: repository element was not specified in the POM inside " +
		"distributionManagement element or in --alt-deployment-repository=id::layout::url parameter"
}

// Unwrap returns ErrNoRepositoryConfigured for errors.Is() compatibility.
func (e *NoRepositoryConfiguredError) Unwrap() error { return ErrNoRepositoryConfigured }
