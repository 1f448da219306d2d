// SPDX-License-Identifier: MPL-2.0

package project

import (
	"slices"

	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/pkg/types"
)

// DefaultPluginGroupID is the groupId a <plugin> element gets when it omits one.
const DefaultPluginGroupID = "org.apache.maven.plugins"

type (
	// Plugin is a build plugin declaration.
	Plugin struct {
		GroupID    string
		ArtifactID string
		Version    string
	}

	// Distribution is the distributionManagement section of a project.
	Distribution struct {
		Repository         *repository.Repository
		SnapshotRepository *repository.Repository
	}

	// Project is the host build project.
	Project struct {
		GroupID    types.GroupID
		ArtifactID types.ArtifactID
		Version    string
		Packaging  string

		// BaseDir is the directory holding File. Empty for isolated projects.
		BaseDir string
		// File is the pom.xml the project was loaded from.
		File string

		Plugins          []Plugin
		PluginManagement []Plugin
		Distribution     Distribution

		// PluginRepositories are the repositories plugins are resolved from.
		PluginRepositories []repository.Remote

		attached []repository.Artifact
	}
)

// PluginKey returns the groupId:artifactId key of a plugin.
func PluginKey(groupID, artifactID string) string {
	return groupID + ":" + artifactID
}

// Key returns the plugin's groupId:artifactId.
func (p Plugin) Key() string { return PluginKey(p.GroupID, p.ArtifactID) }

// NewIsolated returns a minimal project that only knows where plugins come
// from.
func NewIsolated(pluginRepositories []repository.Remote) *Project {
	return &Project{
		Packaging:          repository.PackagingPOM,
		PluginRepositories: slices.Clone(pluginRepositories),
	}
}

// Plugin returns the build plugin declared under key. Plugins that are only
// listed in plugin management are not considered configured. A declared
// plugin without a version inherits the plugin-management version.
func (p *Project) Plugin(key string) (Plugin, bool) {
	idx := slices.IndexFunc(p.Plugins, func(pl Plugin) bool { return pl.Key() == key })
	if idx < 0 {
		return Plugin{}, false
	}
	plugin := p.Plugins[idx]
	if plugin.Version == "" {
		if m := slices.IndexFunc(p.PluginManagement, func(pl Plugin) bool { return pl.Key() == key }); m >= 0 {
			plugin.Version = p.PluginManagement[m].Version
		}
	}
	return plugin, true
}

// PluginVersion returns the version of the build plugin declared under key.
// The boolean is false when the plugin is not declared or has no version.
func (p *Project) PluginVersion(key string) (string, bool) {
	plugin, ok := p.Plugin(key)
	if !ok || plugin.Version == "" {
		return "", false
	}
	return plugin.Version, true
}

// DistributionRepository returns the distribution-management repository for
// the project version: the snapshot repository for snapshot versions when
// one is declared, otherwise the release repository. It returns nil when
// none applies.
func (p *Project) DistributionRepository() *repository.Repository {
	if repository.IsSnapshot(p.Version) && p.Distribution.SnapshotRepository != nil {
		return p.Distribution.SnapshotRepository
	}
	return p.Distribution.Repository
}

// Attach records an artifact published on behalf of the project.
func (p *Project) Attach(a repository.Artifact) {
	p.attached = append(p.attached, a)
}

// AttachedArtifacts returns the artifacts recorded with Attach.
func (p *Project) AttachedArtifacts() []repository.Artifact {
	return slices.Clone(p.attached)
}

// Coordinates returns groupId:artifactId:version.
func (p *Project) Coordinates() string {
	return string(p.GroupID) + ":" + string(p.ArtifactID) + ":" + p.Version
}
