// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
	ErrCommandFailed = errors.New("maven goal failed")
	// ErrUnexpectedStatus is the sentinel error wrapped by UnexpectedStatusError.
	ErrUnexpectedStatus = errors.New("unexpected repository response")
	// ErrUnsupportedScheme is the sentinel error wrapped by UnsupportedSchemeError.
	ErrUnsupportedScheme = errors.New("unsupported repository URL scheme")
	// ErrRuntimeNotAvailable is the sentinel error wrapped by RuntimeNotAvailableError.
	ErrRuntimeNotAvailable = errors.New("runtime not available")

	errResourceNotFound = errors.New("resource not found")
)

type (
	// CommandFailedError is returned when a Maven goal exits with a non-zero status.
	CommandFailedError struct {
		Goal     string
		ExitCode int
	}

	// UnexpectedStatusError is returned when a remote repository answers a
	// request with a status the transfer cannot proceed with.
	UnexpectedStatusError struct {
		Method     string
		URL        string
		StatusCode int
		Status     string
	}

	// UnsupportedSchemeError is returned for repository URLs the builtin
	// runtime has no transport for.
	UnsupportedSchemeError struct {
		Scheme string
		URL    string
	}

	// RuntimeNotAvailableError is returned when the selected runtime cannot run here.
	RuntimeNotAvailableError struct {
		Type RuntimeType
	}
)

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Goal, e.ExitCode)
}

// Unwrap returns ErrCommandFailed so callers can use errors.Is for programmatic detection.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }

// Error implements the error interface.
func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

// Unwrap returns ErrUnexpectedStatus so callers can use errors.Is for programmatic detection.
func (e *UnexpectedStatusError) Unwrap() error { return ErrUnexpectedStatus }

// Error implements the error interface.
func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported scheme %q in repository URL %s (supported: http, https, file)", e.Scheme, e.URL)
}

// Unwrap returns ErrUnsupportedScheme so callers can use errors.Is for programmatic detection.
func (e *UnsupportedSchemeError) Unwrap() error { return ErrUnsupportedScheme }

// Error implements the error interface.
func (e *RuntimeNotAvailableError) Error() string {
	return fmt.Sprintf("runtime '%s' is not available on this system", e.Type)
}

// Unwrap returns ErrRuntimeNotAvailable so callers can use errors.Is for programmatic detection.
func (e *RuntimeNotAvailableError) Unwrap() error { return ErrRuntimeNotAvailable }
