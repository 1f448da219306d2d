// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/goots/pom-deployer/internal/config"
)

const (
	// CodeMavenRuntimeInitFailed indicates the maven runtime could not be initialized.
	CodeMavenRuntimeInitFailed InitDiagnosticCode = "maven_runtime_init_failed"
	// CodeLocalRepositoryUnavailable indicates the local repository path could not be determined.
	CodeLocalRepositoryUnavailable InitDiagnosticCode = "local_repository_unavailable"
)

// ErrInvalidInitDiagnosticCode is the sentinel error wrapped by InvalidInitDiagnosticCodeError.
var ErrInvalidInitDiagnosticCode = errors.New("invalid init diagnostic code")

type (
	// BuildRegistryOptions configures runtime registry construction.
	BuildRegistryOptions struct {
		// Config controls runtime behavior.
		Config *config.Config
		// LocalRepository overrides the filesystem of the builtin runtime's
		// local repository. Nil means an OS filesystem rooted at the
		// configured local repository path.
		LocalRepository billy.Filesystem
		// Stdout and Stderr receive the output of mvn.
		Stdout io.Writer
		Stderr io.Writer
		Logger *log.Logger
		Clock  Clock
	}

	// InitDiagnosticCode categorizes non-fatal runtime initialization diagnostics.
	InitDiagnosticCode string

	// InvalidInitDiagnosticCodeError is returned when an InitDiagnosticCode value
	// is not one of the defined diagnostic codes.
	InvalidInitDiagnosticCodeError struct {
		Value InitDiagnosticCode
	}

	// InitDiagnostic reports non-fatal runtime initialization details.
	InitDiagnostic struct {
		Code    InitDiagnosticCode
		Message string
		Cause   error
	}

	// RegistryBuildResult contains the built registry, cleanup hook and
	// diagnostics. Registry and Cleanup are always non-nil after
	// BuildRegistry returns. Callers should defer Cleanup() after use.
	RegistryBuildResult struct {
		Registry    *Registry
		Cleanup     func()
		Diagnostics []InitDiagnostic
	}
)

// Error implements the error interface.
func (e *InvalidInitDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid init diagnostic code %q (valid: %s, %s)",
		e.Value, CodeMavenRuntimeInitFailed, CodeLocalRepositoryUnavailable)
}

// Unwrap returns ErrInvalidInitDiagnosticCode so callers can use errors.Is for programmatic detection.
func (e *InvalidInitDiagnosticCodeError) Unwrap() error { return ErrInvalidInitDiagnosticCode }

// String returns the string representation of the InitDiagnosticCode.
func (c InitDiagnosticCode) String() string { return string(c) }

// Validate returns nil if the InitDiagnosticCode is one of the defined diagnostic codes,
// or a validation error if it is not.
func (c InitDiagnosticCode) Validate() error {
	switch c {
	case CodeMavenRuntimeInitFailed, CodeLocalRepositoryUnavailable:
		return nil
	default:
		return &InvalidInitDiagnosticCodeError{Value: c}
	}
}

// BuildRegistry creates and populates the runtime registry.
// The builtin runtime is always registered but reports itself unavailable
// when no local repository path can be determined. The maven runtime is
// left out when its configuration is invalid. Both cases are reported via
// Diagnostics.
func BuildRegistry(opts BuildRegistryOptions) RegistryBuildResult {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	result := RegistryBuildResult{
		Registry: NewRegistry(),
		Cleanup:  func() {},
	}

	localPath, pathErr := cfg.LocalRepositoryPath()
	local := opts.LocalRepository
	if local == nil {
		if pathErr != nil {
			result.Diagnostics = append(result.Diagnostics, InitDiagnostic{
				Code:    CodeLocalRepositoryUnavailable,
				Message: fmt.Sprintf("local repository unavailable: %v", pathErr),
				Cause:   pathErr,
			})
		} else {
			local = osfs.New(localPath)
		}
	}
	result.Registry.Register(RuntimeTypeBuiltin, NewBuiltinRuntime(BuiltinOptions{
		LocalRepository: local,
		Config:          cfg,
		Clock:           opts.Clock,
		Logger:          opts.Logger,
	}))

	// mvn runs in the project or a temp dir, so it gets the resolved path.
	// An unset local repository leaves mvn to its own settings.
	var mavenLocal string
	if cfg.LocalRepository != "" && pathErr == nil {
		mavenLocal = localPath
	}
	mavenRT, err := NewMavenRuntime(MavenOptions{
		Binary:          cfg.Maven.Binary,
		Args:            cfg.Maven.Args,
		Offline:         cfg.Maven.Offline,
		LocalRepository: mavenLocal,
		Stdout:          stdout,
		Stderr:          stderr,
		Logger:          opts.Logger,
	})
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, InitDiagnostic{
			Code:    CodeMavenRuntimeInitFailed,
			Message: fmt.Sprintf("maven runtime unavailable: %v", err),
			Cause:   err,
		})
		return result
	}
	result.Registry.Register(RuntimeTypeMaven, mavenRT)

	return result
}
