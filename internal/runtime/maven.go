// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"

	"github.com/goots/pom-deployer/internal/config"
	"github.com/goots/pom-deployer/internal/project"
	"github.com/goots/pom-deployer/internal/repository"
)

const (
	installPluginArtifactID = "maven-install-plugin"
	deployPluginArtifactID  = "maven-deploy-plugin"

	goalInstallFile = "install-file"
	goalDeployFile  = "deploy-file"
)

type (
	// MavenOptions configures a MavenRuntime.
	MavenOptions struct {
		// Binary is the mvn executable name or path.
		Binary string
		// Args are extra command-line arguments, split with shell quoting rules.
		Args string
		// Offline adds -o.
		Offline bool
		// LocalRepository is passed as -Dmaven.repo.local when set. A
		// relative path is resolved against the working directory.
		LocalRepository string
		Stdout          io.Writer
		Stderr          io.Writer
		Logger          *log.Logger
	}

	// MavenRuntime runs the install-file and deploy-file goals through mvn.
	MavenRuntime struct {
		binary          string
		args            []string
		offline         bool
		localRepository string
		stdout          io.Writer
		stderr          io.Writer
		logger          *log.Logger
		lookPath        func(string) (string, error)
	}
)

// NewMavenRuntime creates a Maven runtime. It fails when Args is not valid
// shell syntax.
func NewMavenRuntime(opts MavenOptions) (*MavenRuntime, error) {
	var args []string
	if opts.Args != "" {
		var err error
		// $VAR references expand from the process environment.
		if args, err = shell.Fields(opts.Args, nil); err != nil {
			return nil, fmt.Errorf("parse maven args %q: %w", opts.Args, err)
		}
	}

	localRepository := opts.LocalRepository
	if localRepository != "" {
		abs, err := filepath.Abs(localRepository)
		if err != nil {
			return nil, fmt.Errorf("resolve local repository %q: %w", localRepository, err)
		}
		localRepository = abs
	}

	binary := opts.Binary
	if binary == "" {
		binary = config.DefaultConfig().Maven.Binary
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &MavenRuntime{
		binary:          binary,
		args:            args,
		offline:         opts.Offline,
		localRepository: localRepository,
		stdout:          opts.Stdout,
		stderr:          opts.Stderr,
		logger:          logger,
		lookPath:        exec.LookPath,
	}, nil
}

// Name returns the runtime name.
func (r *MavenRuntime) Name() string { return string(RuntimeTypeMaven) }

// Available reports whether the mvn binary resolves.
func (r *MavenRuntime) Available() bool {
	_, err := r.lookPath(r.binary)
	return err == nil
}

// InstallFile runs maven-install-plugin:install-file.
func (r *MavenRuntime) InstallFile(ctx context.Context, env *Environment, req InstallFileRequest) error {
	goal := pluginGoal(installPluginArtifactID, req.PluginVersion, goalInstallFile)
	props := []string{
		define("file", req.File),
		define("groupId", string(req.GroupID)),
		define("artifactId", string(req.ArtifactID)),
		define("version", req.Version),
		define("packaging", req.Packaging),
	}
	return r.run(ctx, env, goal, props)
}

// DeployFile runs maven-deploy-plugin:deploy-file.
func (r *MavenRuntime) DeployFile(ctx context.Context, env *Environment, req DeployFileRequest) error {
	if req.Repository == nil {
		return errors.New("deploy: no repository")
	}
	goal := pluginGoal(deployPluginArtifactID, req.PluginVersion, goalDeployFile)
	props := []string{
		define("file", req.File),
		define("pomFile", req.PomFile),
		define("groupId", string(req.GroupID)),
		define("artifactId", string(req.ArtifactID)),
		define("version", req.Version),
		define("packaging", req.Packaging),
		define("url", req.Repository.URL),
		define("repositoryId", req.Repository.ID),
	}
	if layout := req.Repository.LayoutName(); layout != repository.LayoutDefault {
		props = append(props, define("repositoryLayout", layout))
	}
	if !req.Repository.UniqueVersion {
		props = append(props, define("uniqueVersion", strconv.FormatBool(false)))
	}
	return r.run(ctx, env, goal, props)
}

// commandArgs returns the full mvn argument list for a goal.
func (r *MavenRuntime) commandArgs(goal string, props []string) []string {
	args := []string{"-B"}
	if r.offline {
		args = append(args, "-o")
	}
	args = append(args, r.args...)
	args = append(args, goal)
	args = append(args, props...)
	if r.localRepository != "" {
		args = append(args, define("maven.repo.local", r.localRepository))
	}
	return args
}

func (r *MavenRuntime) run(ctx context.Context, env *Environment, goal string, props []string) error {
	dir, cleanup, err := workDir(env)
	if err != nil {
		return err
	}
	defer cleanup()

	args := r.commandArgs(goal, props)
	r.logger.Debug("running maven", "binary", r.binary, "dir", dir, "args", args)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return &CommandFailedError{Goal: goal, ExitCode: exitErr.ExitCode()}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", goal, ctxErr)
		}
		return fmt.Errorf("run %s: %w", r.binary, err)
	}
	return nil
}

// workDir returns the directory mvn runs in. Projects loaded from disk run in
// their base directory; an isolated project gets a temporary directory with
// a generated minimal pom.xml that is removed by cleanup.
func workDir(env *Environment) (dir string, cleanup func(), err error) {
	p := project.NewIsolated(nil)
	if env != nil && env.Project != nil {
		p = env.Project
	}
	if p.BaseDir != "" {
		return p.BaseDir, func() {}, nil
	}

	data, err := p.MarshalPOM()
	if err != nil {
		return "", nil, err
	}
	dir, err = os.MkdirTemp("", "pom-deployer-isolated-*")
	if err != nil {
		return "", nil, fmt.Errorf("create isolated project directory: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }
	if err := os.WriteFile(filepath.Join(dir, project.DefaultFileName), data, 0o644); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write isolated project: %w", err)
	}
	return dir, cleanup, nil
}

func pluginGoal(artifactID, version, goal string) string {
	return project.DefaultPluginGroupID + ":" + artifactID + ":" + version + ":" + goal
}

func define(name, value string) string {
	return "-D" + name + "=" + value
}
