// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/goots/pom-deployer/internal/project"
	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/internal/runtime"
	"github.com/goots/pom-deployer/pkg/types"
)

type (
	// Installer installs a file into the local repository.
	Installer interface {
		InstallFile(ctx context.Context, env *runtime.Environment, req runtime.InstallFileRequest) error
	}

	// Deployer deploys a file to a remote repository.
	Deployer interface {
		DeployFile(ctx context.Context, env *runtime.Environment, req runtime.DeployFileRequest) error
	}

	// Options configures an Orchestrator. Session, Installer and Deployer
	// are required.
	Options struct {
		Session   *project.Session
		Installer Installer
		Deployer  Deployer
		// Resolver defaults to one over repository.DefaultLayouts.
		Resolver *repository.Resolver
		Logger   *log.Logger
	}

	// Orchestrator runs publish requests against a session.
	Orchestrator struct {
		session   *project.Session
		installer Installer
		deployer  Deployer
		resolver  *repository.Resolver
		logger    *log.Logger
	}

	// Result describes what Execute did.
	Result struct {
		Outcome Outcome
		// File is the absolute descriptor path. Empty when skipped.
		File     types.FilesystemPath
		Versions PluginVersions
		// Coordinates is groupId:artifactId:version of the published descriptor.
		Coordinates string
		// Repository is the deploy target. Nil unless Outcome is OutcomeProceed.
		Repository *repository.Repository
	}
)

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = repository.NewResolver(nil, logger)
	}
	return &Orchestrator{
		session:   opts.Session,
		installer: opts.Installer,
		deployer:  opts.Deployer,
		resolver:  resolver,
		logger:    logger,
	}
}

// Execute gates the request, installs the descriptor under the host
// project's version, then deploys it from an isolated project to the
// resolved repository. The session's current project is restored before
// Execute returns, whatever the outcome. Errors from the installer and
// deployer are returned unchanged; a completed install is not undone when
// the deploy fails.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (Result, error) {
	if req.Skip {
		o.logger.Debug("Skipping plugin")
		return Result{Outcome: OutcomeSkip}, nil
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	host := o.session.CurrentProject()
	if host == nil {
		return Result{}, ErrNoHostProject
	}
	versions := ResolvePluginVersions(host)

	file, err := req.PomName.Abs()
	if err != nil {
		return Result{}, err
	}
	result := Result{
		File:        file,
		Versions:    versions,
		Coordinates: string(req.GroupID) + ":" + string(req.ArtifactID) + ":" + host.Version,
	}

	result.Outcome = Gate(false, file.IsRegularFile(), req.ErrorOnMissing)
	switch result.Outcome {
	case OutcomeFail:
		return result, &MissingInputError{PomName: req.PomName}
	case OutcomeMissing:
		o.logger.Warn("Unable to find descriptor", "pom", req.PomName)
		return result, nil
	}

	o.logger.Debug("Running maven-install-plugin", "version", versions.Install, "pom", file, "target", result.Coordinates)
	err = o.installer.InstallFile(ctx, &runtime.Environment{Project: host}, runtime.InstallFileRequest{
		PluginVersion: versions.Install,
		File:          string(file),
		GroupID:       req.GroupID,
		ArtifactID:    req.ArtifactID,
		Version:       host.Version,
		Packaging:     repository.PackagingPOM,
	})
	if err != nil {
		return result, err
	}

	result.Repository, err = o.deploy(ctx, host, req, versions, file)
	return result, err
}

// deploy runs the deploy with the isolated project current. Resolution
// still reads the host project.
func (o *Orchestrator) deploy(ctx context.Context, host *project.Project, req Request, versions PluginVersions, file types.FilesystemPath) (*repository.Repository, error) {
	isolated, restore := o.session.Isolate()
	defer restore()

	repo, err := o.resolver.Resolve(host.Version, host.DistributionRepository(),
		req.AltDeploymentRepository, req.AltSnapshotDeploymentRepository)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("Running maven-deploy-plugin", "version", versions.Deploy, "pom", file, "url", repo.URL)
	err = o.deployer.DeployFile(ctx, &runtime.Environment{Project: isolated}, runtime.DeployFileRequest{
		PluginVersion: versions.Deploy,
		File:          string(file),
		PomFile:       string(file),
		GroupID:       req.GroupID,
		ArtifactID:    req.ArtifactID,
		Version:       host.Version,
		Packaging:     repository.PackagingPOM,
		Repository:    repo,
	})
	return repo, err
}
