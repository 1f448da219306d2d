// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"io"

	"github.com/charmbracelet/log"
)

// Resolver picks the repository a descriptor is deployed to.
type Resolver struct {
	layouts *LayoutRegistry
	logger  *log.Logger
}

// NewResolver creates a Resolver. A nil registry means DefaultLayouts and a
// nil logger discards output.
func NewResolver(layouts *LayoutRegistry, logger *log.Logger) *Resolver {
	if layouts == nil {
		layouts = DefaultLayouts()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{layouts: layouts, logger: logger}
}

// SelectOverride returns the override string that applies to version, or ""
// when none does. The snapshot override is only consulted for snapshot
// versions; a release version uses the release override even when a
// snapshot override is present.
func SelectOverride(version, altRelease, altSnapshot string) string {
	if IsSnapshot(version) && altSnapshot != "" {
		return altSnapshot
	}
	return altRelease
}

// Resolve returns the deployment repository for a project version.
//
// Order: the applicable override (see SelectOverride), then distribution,
// the project's distribution-management repository. It fails with
// NoRepositoryConfiguredError when both are absent and never returns a nil
// repository without an error.
func (r *Resolver) Resolve(version string, distribution *Repository, altRelease, altSnapshot string) (*Repository, error) {
	if override := SelectOverride(version, altRelease, altSnapshot); override != "" {
		r.logger.Info("Using alternate deployment repository", "repository", override)
		return r.FromOverride(override)
	}

	if distribution != nil {
		return distribution, nil
	}

	return nil, &NoRepositoryConfiguredError{Version: version}
}

// FromOverride parses an id::layout::url string into a deployment repository
// with unique snapshot versions enabled.
func (r *Resolver) FromOverride(override string) (*Repository, error) {
	alt, err := ParseAltRepository(override)
	if err != nil {
		return nil, err
	}

	layout, err := r.layouts.Get(alt.Layout)
	if err != nil {
		return nil, err
	}

	return NewDeploymentRepository(alt.ID, alt.URL, layout, true), nil
}
