// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"path"
	"slices"
)

const (
	// LayoutDefault is the Maven 2/3 repository layout.
	LayoutDefault = "default"
	// LayoutLegacy is the Maven 1 repository layout.
	LayoutLegacy = "legacy"
)

type (
	// Layout maps artifacts and metadata to repository-relative paths.
	Layout interface {
		// Name returns the registered layout name.
		Name() string
		// ArtifactPath returns the path of the artifact file.
		ArtifactPath(a Artifact) string
		// SupportsMetadata reports whether the layout keeps maven-metadata files.
		SupportsMetadata() bool
		// ArtifactMetadataPath returns the path of a metadata file kept per artifactId.
		ArtifactMetadataPath(a Artifact, fileName string) string
		// VersionMetadataPath returns the path of a metadata file kept per base version.
		VersionMetadataPath(a Artifact, fileName string) string
	}

	// DefaultLayout is groupId-as-directories/artifactId/baseVersion/file.
	DefaultLayout struct{}

	// LegacyLayout is groupId/<extension>s/file, without metadata.
	LegacyLayout struct{}

	// LayoutRegistry holds the layouts an alternate repository may name.
	LayoutRegistry struct {
		layouts map[string]Layout
	}
)

// Name returns "default".
func (DefaultLayout) Name() string { return LayoutDefault }

// ArtifactPath returns org/example/my-bom/1.0/my-bom-1.0.pom style paths.
func (DefaultLayout) ArtifactPath(a Artifact) string {
	return path.Join(a.GroupID.Path(), string(a.ArtifactID), a.BaseVersion, a.FileName())
}

// SupportsMetadata returns true.
func (DefaultLayout) SupportsMetadata() bool { return true }

// ArtifactMetadataPath returns org/example/my-bom/<fileName>.
func (DefaultLayout) ArtifactMetadataPath(a Artifact, fileName string) string {
	return path.Join(a.GroupID.Path(), string(a.ArtifactID), fileName)
}

// VersionMetadataPath returns org/example/my-bom/1.0-SNAPSHOT/<fileName>.
func (DefaultLayout) VersionMetadataPath(a Artifact, fileName string) string {
	return path.Join(a.GroupID.Path(), string(a.ArtifactID), a.BaseVersion, fileName)
}

// Name returns "legacy".
func (LegacyLayout) Name() string { return LayoutLegacy }

// ArtifactPath returns org.example/poms/my-bom-1.0.pom style paths.
func (LegacyLayout) ArtifactPath(a Artifact) string {
	return path.Join(string(a.GroupID), a.Extension+"s", a.FileName())
}

// SupportsMetadata returns false.
func (LegacyLayout) SupportsMetadata() bool { return false }

// ArtifactMetadataPath returns "".
func (LegacyLayout) ArtifactMetadataPath(Artifact, string) string { return "" }

// VersionMetadataPath returns "".
func (LegacyLayout) VersionMetadataPath(Artifact, string) string { return "" }

// NewLayoutRegistry creates a registry holding the given layouts keyed by name.
func NewLayoutRegistry(layouts ...Layout) *LayoutRegistry {
	r := &LayoutRegistry{layouts: make(map[string]Layout, len(layouts))}
	for _, l := range layouts {
		r.layouts[l.Name()] = l
	}
	return r
}

// DefaultLayouts returns a registry with the default and legacy layouts.
func DefaultLayouts() *LayoutRegistry {
	return NewLayoutRegistry(DefaultLayout{}, LegacyLayout{})
}

// Get returns the layout registered under name.
//
//nolint:ireturn // layouts are looked up by name and used through the interface
func (r *LayoutRegistry) Get(name string) (Layout, error) {
	l, ok := r.layouts[name]
	if !ok {
		return nil, &UnknownLayoutError{Name: name, Known: r.Names()}
	}
	return l, nil
}

// Names returns the registered layout names in sorted order.
func (r *LayoutRegistry) Names() []string {
	names := make([]string, 0, len(r.layouts))
	for name := range r.layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
