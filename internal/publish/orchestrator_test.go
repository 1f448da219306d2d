// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/goots/pom-deployer/internal/project"
	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/internal/runtime"
	"github.com/goots/pom-deployer/internal/testutil"
	"github.com/goots/pom-deployer/pkg/types"
)

const snapshotsOverride = "snaps::default::https://repo.example/snapshots"

// recorder is an Installer and Deployer that records what it was called
// with and which project the session had current at the time.
type recorder struct {
	session *project.Session

	installs      []runtime.InstallFileRequest
	installEnvs   []*project.Project
	deploys       []runtime.DeployFileRequest
	deployEnvs    []*project.Project
	currentAtCall []*project.Project

	installErr error
	deployErr  error
}

func (r *recorder) InstallFile(_ context.Context, env *runtime.Environment, req runtime.InstallFileRequest) error {
	r.installs = append(r.installs, req)
	r.installEnvs = append(r.installEnvs, env.Project)
	r.currentAtCall = append(r.currentAtCall, r.session.CurrentProject())
	return r.installErr
}

func (r *recorder) DeployFile(_ context.Context, env *runtime.Environment, req runtime.DeployFileRequest) error {
	r.deploys = append(r.deploys, req)
	r.deployEnvs = append(r.deployEnvs, env.Project)
	r.currentAtCall = append(r.currentAtCall, r.session.CurrentProject())
	// Deploys record their artifact on the project they run against.
	env.Project.Attach(req.Artifact())
	return r.deployErr
}

func (r *recorder) calls() int { return len(r.installs) + len(r.deploys) }

type fixture struct {
	host     *project.Project
	session  *project.Session
	rec      *recorder
	orch     *Orchestrator
	logs     *bytes.Buffer
	pomName  types.FilesystemPath
	tempRoot string
}

func newFixture(t *testing.T, host *project.Project) *fixture {
	t.Helper()

	dir := t.TempDir()
	session := project.NewSession(host)
	rec := &recorder{session: session}
	logs := &bytes.Buffer{}
	logger := log.NewWithOptions(logs, log.Options{Level: log.DebugLevel})

	return &fixture{
		host:     host,
		session:  session,
		rec:      rec,
		logs:     logs,
		pomName:  types.FilesystemPath(testutil.WriteDescriptor(t, dir, "bom.xml")),
		tempRoot: dir,
		orch: NewOrchestrator(Options{
			Session:   session,
			Installer: rec,
			Deployer:  rec,
			Logger:    logger,
		}),
	}
}

func snapshotHost() *project.Project {
	return &project.Project{
		GroupID:    "org.example",
		ArtifactID: "host",
		Version:    "1.0-SNAPSHOT",
		Packaging:  "pom",
		BaseDir:    "/work",
		PluginRepositories: []repository.Remote{
			{ID: "plugins", URL: "https://plugins.example/maven2"},
		},
	}
}

func (f *fixture) request() Request {
	return Request{
		PomName:        f.pomName,
		GroupID:        "org.example",
		ArtifactID:     "my-bom",
		ErrorOnMissing: true,
	}
}

func TestExecute_WorkedExample(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	req := f.request()
	req.AltSnapshotDeploymentRepository = snapshotsOverride

	result, err := f.orch.Execute(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, OutcomeProceed, result.Outcome)
	assert.Equal(t, "org.example:my-bom:1.0-SNAPSHOT", result.Coordinates)

	require.Len(t, f.rec.installs, 1)
	install := f.rec.installs[0]
	assert.Equal(t, string(f.pomName), install.File)
	assert.True(t, filepath.IsAbs(install.File))
	assert.Equal(t, types.GroupID("org.example"), install.GroupID)
	assert.Equal(t, types.ArtifactID("my-bom"), install.ArtifactID)
	assert.Equal(t, "1.0-SNAPSHOT", install.Version)
	assert.Equal(t, "pom", install.Packaging)
	assert.Equal(t, DefaultInstallPluginVersion, install.PluginVersion)

	require.Len(t, f.rec.deploys, 1)
	deploy := f.rec.deploys[0]
	assert.Equal(t, install.File, deploy.File)
	assert.Equal(t, deploy.File, deploy.PomFile)
	assert.Equal(t, "1.0-SNAPSHOT", deploy.Version)
	assert.Equal(t, "pom", deploy.Packaging)
	assert.Equal(t, DefaultDeployPluginVersion, deploy.PluginVersion)
	require.NotNil(t, deploy.Repository)
	assert.Equal(t, "snaps", deploy.Repository.ID)
	assert.Equal(t, "default", deploy.Repository.LayoutName())
	assert.Equal(t, "https://repo.example/snapshots", deploy.Repository.URL)
	assert.True(t, deploy.Repository.UniqueVersion)
	assert.Same(t, deploy.Repository, result.Repository)

	assert.Contains(t, f.logs.String(), "Using alternate deployment repository")
}

func TestExecute_Isolation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	req := f.request()
	req.AltSnapshotDeploymentRepository = snapshotsOverride

	_, err := f.orch.Execute(t.Context(), req)
	require.NoError(t, err)

	require.Len(t, f.rec.currentAtCall, 2)
	assert.Same(t, f.host, f.rec.installEnvs[0], "install runs against the host project")
	assert.Same(t, f.host, f.rec.currentAtCall[0])

	isolated := f.rec.deployEnvs[0]
	assert.NotSame(t, f.host, isolated, "deploy runs against an isolated project")
	assert.Same(t, isolated, f.rec.currentAtCall[1], "the isolated project is current during deploy")
	assert.Equal(t, f.host.PluginRepositories, isolated.PluginRepositories)
	assert.Empty(t, isolated.BaseDir)

	assert.Same(t, f.host, f.session.CurrentProject(), "host project restored")
	assert.Empty(t, f.host.AttachedArtifacts(), "deploy mutations stay on the isolated project")
	assert.Len(t, isolated.AttachedArtifacts(), 1)
}

func TestExecute_RestoresAfterDeployError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	deployErr := errors.New("connection reset")
	f.rec.deployErr = deployErr
	req := f.request()
	req.AltSnapshotDeploymentRepository = snapshotsOverride

	_, err := f.orch.Execute(t.Context(), req)
	assert.Same(t, deployErr, err, "deploy errors are returned unchanged")
	assert.Same(t, f.host, f.session.CurrentProject())
	assert.Len(t, f.rec.installs, 1, "the completed install is not undone")
}

func TestExecute_RestoresAfterResolveError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	req := f.request()
	req.AltSnapshotDeploymentRepository = "snaps::default"

	_, err := f.orch.Execute(t.Context(), req)
	require.ErrorIs(t, err, repository.ErrInvalidRepositorySyntax)
	assert.Same(t, f.host, f.session.CurrentProject())
	assert.Len(t, f.rec.installs, 1)
	assert.Empty(t, f.rec.deploys)
}

func TestExecute_InstallErrorStops(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	installErr := &runtime.CommandFailedError{Goal: "install-file", ExitCode: 1}
	f.rec.installErr = installErr
	req := f.request()
	req.AltSnapshotDeploymentRepository = snapshotsOverride

	_, err := f.orch.Execute(t.Context(), req)
	assert.Same(t, installErr, err)
	assert.Empty(t, f.rec.deploys)
	assert.Same(t, f.host, f.session.CurrentProject())
}

func TestExecute_DistributionRepository(t *testing.T) {
	t.Parallel()

	host := snapshotHost()
	host.Version = "1.0"
	host.Distribution.Repository = repository.NewDeploymentRepository("releases", "https://repo.example/releases", nil, true)
	host.Distribution.SnapshotRepository = repository.NewDeploymentRepository("snapshots", "https://repo.example/snapshots", nil, true)
	f := newFixture(t, host)

	result, err := f.orch.Execute(t.Context(), f.request())
	require.NoError(t, err)
	assert.Same(t, host.Distribution.Repository, result.Repository, "distribution repository returned unchanged")
	assert.Same(t, host.Distribution.Repository, f.rec.deploys[0].Repository)
}

func TestExecute_NoRepository(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())

	_, err := f.orch.Execute(t.Context(), f.request())
	require.ErrorIs(t, err, repository.ErrNoRepositoryConfigured)
	assert.Len(t, f.rec.installs, 1)
	assert.Empty(t, f.rec.deploys)
	assert.Same(t, f.host, f.session.CurrentProject())
}

func TestExecute_HostPluginVersions(t *testing.T) {
	t.Parallel()

	host := snapshotHost()
	host.Plugins = []project.Plugin{
		{GroupID: project.DefaultPluginGroupID, ArtifactID: "maven-install-plugin", Version: "3.1.2"},
		{GroupID: project.DefaultPluginGroupID, ArtifactID: "maven-deploy-plugin", Version: "3.1.1"},
	}
	f := newFixture(t, host)
	req := f.request()
	req.AltDeploymentRepository = "rel::default::https://repo.example/releases"

	result, err := f.orch.Execute(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, PluginVersions{Install: "3.1.2", Deploy: "3.1.1"}, result.Versions)
	assert.Equal(t, "3.1.2", f.rec.installs[0].PluginVersion)
	assert.Equal(t, "3.1.1", f.rec.deploys[0].PluginVersion)
	assert.Equal(t, "rel", f.rec.deploys[0].Repository.ID, "snapshot versions fall back to the release override")
}

func TestExecute_Skip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t, snapshotHost())
		req := f.request()
		req.Skip = true
		req.ErrorOnMissing = rapid.Bool().Draw(rt, "errorOnMissing")
		if !rapid.Bool().Draw(rt, "exists") {
			req.PomName = types.FilesystemPath(filepath.Join(f.tempRoot, "absent.xml"))
		}

		result, err := f.orch.Execute(t.Context(), req)
		if err != nil {
			rt.Fatalf("skip returned error: %v", err)
		}
		if result.Outcome != OutcomeSkip || f.rec.calls() != 0 {
			rt.Fatalf("skip outcome = %s with %d calls", result.Outcome, f.rec.calls())
		}
	})
}

func TestExecute_MissingWarns(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	req := f.request()
	req.PomName = types.FilesystemPath(filepath.Join(f.tempRoot, "absent.xml"))
	req.ErrorOnMissing = false

	result, err := f.orch.Execute(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, OutcomeMissing, result.Outcome)
	assert.Zero(t, f.rec.calls())
	assert.Contains(t, f.logs.String(), "Unable to find descriptor")
}

func TestExecute_MissingFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	req := f.request()
	req.PomName = types.FilesystemPath(filepath.Join(f.tempRoot, "absent.xml"))

	_, err := f.orch.Execute(t.Context(), req)
	require.ErrorIs(t, err, ErrMissingInput)
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, req.PomName, missing.PomName)
	assert.Zero(t, f.rec.calls())
}

func TestExecute_DirectoryIsNotADescriptor(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	req := f.request()
	req.PomName = types.FilesystemPath(f.tempRoot)

	_, err := f.orch.Execute(t.Context(), req)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestExecute_InvalidRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, snapshotHost())
	req := f.request()
	req.GroupID = ""

	_, err := f.orch.Execute(t.Context(), req)
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Zero(t, f.rec.calls())
}

func TestExecute_NoHostProject(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.orch.Execute(t.Context(), f.request())
	assert.ErrorIs(t, err, ErrNoHostProject)
}

func TestExecute_BuiltinRuntime(t *testing.T) {
	t.Parallel()

	host := snapshotHost()
	remoteDir := t.TempDir()
	host.Distribution.SnapshotRepository = repository.NewDeploymentRepository(
		"snapshots", "file://"+filepath.ToSlash(remoteDir), nil, true)

	local := memfs.New()
	rt := runtime.NewBuiltinRuntime(runtime.BuiltinOptions{
		LocalRepository: local,
		Clock:           testutil.NewFakeClock(testutil.ReferenceTime),
	})
	session := project.NewSession(host)
	orch := NewOrchestrator(Options{Session: session, Installer: rt, Deployer: rt})
	pom := testutil.WriteDescriptor(t, t.TempDir(), "bom.xml")

	_, err := orch.Execute(t.Context(), Request{
		PomName:        types.FilesystemPath(pom),
		GroupID:        "org.example",
		ArtifactID:     "my-bom",
		ErrorOnMissing: true,
	})
	require.NoError(t, err)

	_, err = local.Stat("org/example/my-bom/1.0-SNAPSHOT/my-bom-1.0-SNAPSHOT.pom")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(remoteDir, "org", "example", "my-bom", "1.0-SNAPSHOT", "my-bom-1.0-20170331.111529-1.pom"))
	assert.Same(t, host, session.CurrentProject())
	assert.Empty(t, host.AttachedArtifacts())
}
