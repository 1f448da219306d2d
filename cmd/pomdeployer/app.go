// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/goots/pom-deployer/internal/config"
	"github.com/goots/pom-deployer/internal/issue"
	"github.com/goots/pom-deployer/internal/project"
	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/internal/runtime"
	"github.com/goots/pom-deployer/pkg/types"
)

const loadProjectOperation = "load project"

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every command handler receives an App reference.
	App struct {
		Config   ConfigProvider
		Projects ProjectLoader
		Runtimes RuntimeFactory
		stdout   io.Writer
		stderr   io.Writer

		// Global flag values.
		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Projects ProjectLoader
		Runtimes RuntimeFactory
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Path(opts config.LoadOptions) (string, error)
	}

	// ProjectLoader reads the host project from a pom.xml path or its directory.
	ProjectLoader func(path string, layouts *repository.LayoutRegistry) (*project.Project, error)

	// RuntimeFactory builds the runtime registry for one invocation.
	RuntimeFactory func(opts runtime.BuildRegistryOptions) runtime.RegistryBuildResult
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Projects == nil {
		deps.Projects = project.Load
	}
	if deps.Runtimes == nil {
		deps.Runtimes = runtime.BuildRegistry
	}

	return &App{
		Config:   deps.Config,
		Projects: deps.Projects,
		Runtimes: deps.Runtimes,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath}
}

func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, a.loadOptions())
}

// loadProject reads the host project and wraps failures with the context
// the classifier keys on.
func (a *App) loadProject(path string, layouts *repository.LayoutRegistry) (*project.Project, error) {
	p, err := a.Projects(path, layouts)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation(loadProjectOperation).
			WithResource(path).
			WithSuggestion("Run the command from the project directory or pass --project").
			WithSuggestion("Check that pom.xml declares artifactId and version").
			Wrap(err).
			BuildError()
	}
	return p, nil
}

// newLogger builds the logger handed to the orchestrator and runtimes.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	level := log.InfoLevel
	if a.isVerbose(cfg) {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

func (a *App) isVerbose(cfg *config.Config) bool {
	return a.verbose || (cfg != nil && cfg.UI.Verbose)
}

// fail renders err with its help page and returns the ExitError that
// carries the failure status back to Execute.
func (a *App) fail(err error, cfg *config.Config) error {
	issueID, styled := classifyError(err, a.isVerbose(cfg))
	renderServiceError(a.stderr, newServiceError(err, issueID, styled))
	return &ExitError{Code: types.ExitFailure, Err: err}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}
