// SPDX-License-Identifier: MPL-2.0

package repository

import "fmt"

type (
	// Repository is a deployment target.
	Repository struct {
		// ID selects credentials for the repository.
		ID string
		// URL is the repository root.
		URL string
		// Layout maps artifacts to paths below URL.
		Layout Layout
		// UniqueVersion enables timestamp+build-number file names for snapshots.
		UniqueVersion bool
	}

	// Remote is a plain id/url repository such as a plugin repository.
	Remote struct {
		ID  string
		URL string
	}
)

// NewDeploymentRepository creates a deployment repository. A nil layout
// means the default layout.
func NewDeploymentRepository(id, url string, layout Layout, uniqueVersion bool) *Repository {
	if layout == nil {
		layout = DefaultLayout{}
	}
	return &Repository{
		ID:            id,
		URL:           url,
		Layout:        layout,
		UniqueVersion: uniqueVersion,
	}
}

// LayoutName returns the name of the repository layout.
func (r *Repository) LayoutName() string {
	if r.Layout == nil {
		return LayoutDefault
	}
	return r.Layout.Name()
}

// String returns id::layout::url, the same form an override uses.
func (r *Repository) String() string {
	return fmt.Sprintf("%s::%s::%s", r.ID, r.LayoutName(), r.URL)
}
