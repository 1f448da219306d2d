// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"

	"github.com/goots/pom-deployer/internal/config"
	"github.com/goots/pom-deployer/internal/repository"
)

type (
	// Clock supplies the time used for snapshot timestamps and metadata.
	Clock interface {
		Now() time.Time
	}

	// BuiltinOptions configures a BuiltinRuntime.
	BuiltinOptions struct {
		// LocalRepository is the filesystem rooted at the local repository.
		LocalRepository billy.Filesystem
		// Config supplies server credentials and the HTTP timeout.
		Config *config.Config
		// HTTPClient overrides the client used for http(s) repositories.
		HTTPClient *http.Client
		Clock      Clock
		Logger     *log.Logger
	}

	// BuiltinRuntime installs and deploys without Maven.
	BuiltinRuntime struct {
		local  *fsTransport
		cfg    *config.Config
		client *http.Client
		clock  Clock
		logger *log.Logger
	}

	systemClock struct{}
)

func (systemClock) Now() time.Time { return time.Now() }

// NewBuiltinRuntime creates a builtin runtime. Missing options fall back to
// defaults: the config defaults, a client with the configured timeout, the
// system clock and a discarding logger.
func NewBuiltinRuntime(opts BuiltinOptions) *BuiltinRuntime {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTP.Timeout}
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var local *fsTransport
	if opts.LocalRepository != nil {
		local = newFSTransport(opts.LocalRepository)
	}
	return &BuiltinRuntime{local: local, cfg: cfg, client: client, clock: clock, logger: logger}
}

// Name returns the runtime name.
func (r *BuiltinRuntime) Name() string { return string(RuntimeTypeBuiltin) }

// Available returns true when a local repository is configured.
func (r *BuiltinRuntime) Available() bool { return r.local != nil }

// InstallFile copies the file into the local repository under the default
// layout and records the version in maven-metadata-local.xml.
func (r *BuiltinRuntime) InstallFile(ctx context.Context, _ *Environment, req InstallFileRequest) error {
	if r.local == nil {
		return &RuntimeNotAvailableError{Type: RuntimeTypeBuiltin}
	}
	data, err := os.ReadFile(req.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", req.File, err)
	}

	a := req.Artifact()
	layout := repository.DefaultLayout{}
	target := layout.ArtifactPath(a)
	r.logger.Debug("installing artifact", "artifact", a.String(), "path", target)
	if err := r.local.Put(ctx, target, data); err != nil {
		return fmt.Errorf("install %s: %w", a, err)
	}

	now := r.clock.Now()
	if repository.IsSnapshot(a.BaseVersion) {
		p := layout.VersionMetadataPath(a, repository.LocalMetadataFileName)
		err := r.updateMetadata(ctx, r.local, p, a, a.BaseVersion, false, func(m *repository.Metadata) {
			m.Versioning.Snapshot = &repository.Snapshot{LocalCopy: true}
			m.Versioning.LastUpdated = now.UTC().Format(repository.LastUpdatedFormat)
		})
		if err != nil {
			return err
		}
	}

	p := layout.ArtifactMetadataPath(a, repository.LocalMetadataFileName)
	return r.updateMetadata(ctx, r.local, p, a, "", false, func(m *repository.Metadata) {
		m.AddVersion(a.BaseVersion, now)
	})
}

// DeployFile uploads the file, its checksums and repository metadata to
// req.Repository and attaches the deployed artifact to env.Project.
func (r *BuiltinRuntime) DeployFile(ctx context.Context, env *Environment, req DeployFileRequest) error {
	repo := req.Repository
	if repo == nil {
		return errors.New("deploy: no repository")
	}
	t, err := r.transportFor(repo)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(req.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", req.File, err)
	}

	layout := repo.Layout
	if layout == nil {
		layout = repository.DefaultLayout{}
	}
	a := req.Artifact()
	now := r.clock.Now()

	unique := repo.UniqueVersion && layout.SupportsMetadata() &&
		repository.IsSnapshot(a.BaseVersion) && a.Version == a.BaseVersion

	var versionMeta *repository.Metadata
	var versionMetaPath string
	if unique {
		versionMetaPath = layout.VersionMetadataPath(a, repository.MetadataFileName)
		if versionMeta, err = fetchMetadata(ctx, t, versionMetaPath, a, a.BaseVersion); err != nil {
			return err
		}
		build := versionMeta.NextBuildNumber()
		a = a.WithVersion(repository.TimestampedVersion(a.BaseVersion, now, build))
		versionMeta.SetSnapshot(a, now, build)
	}

	target := layout.ArtifactPath(a)
	r.logger.Debug("uploading artifact", "artifact", a.String(), "repository", repo.ID, "path", target)
	if err := upload(ctx, t, target, data); err != nil {
		return fmt.Errorf("deploy %s to %s: %w", a, repo.URL, err)
	}

	if versionMeta != nil {
		if err := putMetadata(ctx, t, versionMetaPath, versionMeta, true); err != nil {
			return err
		}
	}
	if layout.SupportsMetadata() {
		p := layout.ArtifactMetadataPath(a, repository.MetadataFileName)
		err := r.updateMetadata(ctx, t, p, a, "", true, func(m *repository.Metadata) {
			m.AddVersion(a.BaseVersion, now)
		})
		if err != nil {
			return err
		}
	}

	if env != nil && env.Project != nil {
		env.Project.Attach(a)
	}
	return nil
}

func (r *BuiltinRuntime) updateMetadata(ctx context.Context, t transport, p string, a repository.Artifact, version string, withChecksums bool, update func(*repository.Metadata)) error {
	m, err := fetchMetadata(ctx, t, p, a, version)
	if err != nil {
		return err
	}
	update(m)
	return putMetadata(ctx, t, p, m, withChecksums)
}

//nolint:ireturn // the transport is chosen by URL scheme
func (r *BuiltinRuntime) transportFor(repo *repository.Repository) (transport, error) {
	u, err := url.Parse(repo.URL)
	if err != nil {
		return nil, fmt.Errorf("parse repository URL %s: %w", repo.URL, err)
	}

	switch u.Scheme {
	case "http", "https":
		t := &httpTransport{client: r.client, base: u}
		if server, ok := r.cfg.Server(repo.ID); ok {
			t.username, t.password = server.Credentials()
		}
		return t, nil
	case "file":
		return newFileTransport(u), nil
	default:
		return nil, &UnsupportedSchemeError{Scheme: u.Scheme, URL: repo.URL}
	}
}

func fetchMetadata(ctx context.Context, t transport, p string, a repository.Artifact, version string) (*repository.Metadata, error) {
	data, err := t.Get(ctx, p)
	if errors.Is(err, errResourceNotFound) {
		return repository.NewMetadata(a, version), nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p, err)
	}
	return repository.ParseMetadata(data)
}

func putMetadata(ctx context.Context, t transport, p string, m *repository.Metadata, withChecksums bool) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if withChecksums {
		err = upload(ctx, t, p, data)
	} else {
		err = t.Put(ctx, p, data)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}
