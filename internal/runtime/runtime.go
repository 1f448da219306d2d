// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/goots/pom-deployer/internal/project"
	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/pkg/types"
)

// Runtime type constants for the available executors.
const (
	RuntimeTypeBuiltin RuntimeType = "builtin"
	RuntimeTypeMaven   RuntimeType = "maven"
)

type (
	// Environment is what a delegated invocation runs against.
	Environment struct {
		// Project is the current project of the session at call time.
		Project *project.Project
	}

	// InstallFileRequest carries the parameters of one install-file invocation.
	InstallFileRequest struct {
		// PluginVersion is the maven-install-plugin version to use.
		PluginVersion string
		// File is the absolute path of the file to install.
		File       string
		GroupID    types.GroupID
		ArtifactID types.ArtifactID
		Version    string
		// Packaging is always "pom" for descriptors.
		Packaging string
	}

	// DeployFileRequest carries the parameters of one deploy-file invocation.
	DeployFileRequest struct {
		// PluginVersion is the maven-deploy-plugin version to use.
		PluginVersion string
		// File is the absolute path of the file to deploy.
		File string
		// PomFile is the descriptor published alongside File; for a
		// descriptor deploy both are the same file.
		PomFile    string
		GroupID    types.GroupID
		ArtifactID types.ArtifactID
		Version    string
		Packaging  string
		// Repository is the resolved deployment target.
		Repository *repository.Repository
	}

	// Runtime defines the interface of an install/deploy executor
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Available returns whether this runtime can run on the current system
		Available() bool
		// InstallFile installs a file into the local repository.
		InstallFile(ctx context.Context, env *Environment, req InstallFileRequest) error
		// DeployFile deploys a file to a remote repository.
		DeployFile(ctx context.Context, env *Environment, req DeployFileRequest) error
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// Registry holds all available runtimes
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}
)

// Artifact returns the repository artifact the request installs.
func (r InstallFileRequest) Artifact() repository.Artifact {
	return newArtifact(r.GroupID, r.ArtifactID, r.Version, r.Packaging)
}

// Artifact returns the repository artifact the request deploys.
func (r DeployFileRequest) Artifact() repository.Artifact {
	return newArtifact(r.GroupID, r.ArtifactID, r.Version, r.Packaging)
}

func newArtifact(groupID types.GroupID, artifactID types.ArtifactID, version, packaging string) repository.Artifact {
	a := repository.NewPOMArtifact(groupID, artifactID, version)
	if packaging != "" {
		a.Extension = packaging
	}
	return a
}

// String returns the runtime type name.
func (t RuntimeType) String() string { return string(t) }

// NewRegistry creates a new runtime registry
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[RuntimeType]Runtime),
	}
}

// Register adds a runtime to the registry
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type
//
//nolint:ireturn // runtimes are selected by name and used through the interface
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("runtime '%s' not registered", typ)
	}
	return rt, nil
}

// Select returns the runtime registered under typ, failing when it is not
// registered or not available on this system.
//
//nolint:ireturn // see Get
func (r *Registry) Select(typ RuntimeType) (Runtime, error) {
	rt, err := r.Get(typ)
	if err != nil {
		return nil, err
	}
	if !rt.Available() {
		return nil, &RuntimeNotAvailableError{Type: typ}
	}
	return rt, nil
}

// Available returns all available runtimes in name order
func (r *Registry) Available() []RuntimeType {
	var available []RuntimeType
	for typ, rt := range r.runtimes {
		if rt.Available() {
			available = append(available, typ)
		}
	}
	slices.Sort(available)
	return available
}
