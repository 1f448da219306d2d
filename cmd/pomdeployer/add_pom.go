// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goots/pom-deployer/internal/config"
	"github.com/goots/pom-deployer/internal/project"
	"github.com/goots/pom-deployer/internal/publish"
	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/internal/runtime"
	"github.com/goots/pom-deployer/pkg/types"
)

const (
	flagProject         = "project"
	flagSkip            = "skip"
	flagErrorOnMissing  = "error-on-missing"
	flagAltRelease      = "alt-deployment-repository"
	flagAltSnapshot     = "alt-snapshot-deployment-repository"
	flagExecutor        = "executor"
	flagLocalRepository = "local-repository"
)

type (
	// addPOMOptions holds the add-pom flag values.
	addPOMOptions struct {
		pomName    string
		groupID    string
		artifactID string
		project    string
		repositoryOverrides
		skip            bool
		errorOnMissing  bool
		executor        string
		localRepository string
	}

	// repositoryOverrides are the alternate repository flags shared by
	// add-pom and repository.
	repositoryOverrides struct {
		altRelease  string
		altSnapshot string
	}
)

func newAddPOMCommand(app *App) *cobra.Command {
	opts := &addPOMOptions{}

	addCmd := &cobra.Command{
		Use:   "add-pom",
		Short: "Install a POM file locally and deploy it to a remote repository",
		Long: `Install a standalone POM file into the local repository under the given
coordinates, then deploy it to the project's distribution repository or to
an alternate repository given as id::layout::url.

The alternate snapshot repository is used for -SNAPSHOT versions of the
host project; the alternate release repository for every other version.
--skip, --error-on-missing and both alternate repositories default to the
deploy section of the configuration file.`,
		Example: `  pom-deployer add-pom --pom-name target/bom.xml --group-id org.example --artifact-id example-bom
  pom-deployer add-pom --pom-name target/bom.xml --group-id org.example --artifact-id example-bom \
    --alt-deployment-repository internal::default::https://repo.example.org/releases`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddPOM(cmd.Context(), app, cmd.Flags(), opts)
		},
	}

	flags := addCmd.Flags()
	flags.StringVar(&opts.pomName, "pom-name", "", "descriptor file to install and deploy")
	flags.StringVar(&opts.groupID, "group-id", "", "groupId to publish the descriptor under")
	flags.StringVar(&opts.artifactID, "artifact-id", "", "artifactId to publish the descriptor under")
	flags.StringVar(&opts.project, flagProject, ".", "host project pom.xml or its directory")
	flags.BoolVar(&opts.skip, flagSkip, false, "skip the install and deploy")
	flags.BoolVar(&opts.errorOnMissing, flagErrorOnMissing, true, "fail when the descriptor file does not exist")
	addRepositoryOverrideFlags(flags, &opts.repositoryOverrides)
	flags.StringVar(&opts.executor, flagExecutor, "", "executor: builtin or maven (default from config)")
	flags.StringVar(&opts.localRepository, flagLocalRepository, "", "local repository directory (default ~/.m2/repository)")

	return addCmd
}

func addRepositoryOverrideFlags(flags *pflag.FlagSet, o *repositoryOverrides) {
	flags.StringVar(&o.altRelease, flagAltRelease, "", "alternate release repository as id::layout::url")
	flags.StringVar(&o.altSnapshot, flagAltSnapshot, "", "alternate snapshot repository as id::layout::url")
}

// apply overrides the configured deploy defaults with the flags that were
// given on the command line.
func (o repositoryOverrides) apply(flags *pflag.FlagSet, deploy *config.DeployConfig) {
	if flags.Changed(flagAltRelease) {
		deploy.AltDeploymentRepository = o.altRelease
	}
	if flags.Changed(flagAltSnapshot) {
		deploy.AltSnapshotDeploymentRepository = o.altSnapshot
	}
}

// applyFlags layers the changed add-pom flags over cfg and revalidates it.
func (o *addPOMOptions) applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	o.repositoryOverrides.apply(flags, &cfg.Deploy)
	if flags.Changed(flagSkip) {
		cfg.Deploy.Skip = o.skip
	}
	if flags.Changed(flagErrorOnMissing) {
		cfg.Deploy.ErrorOnMissing = o.errorOnMissing
	}
	if flags.Changed(flagExecutor) {
		cfg.Executor = config.ExecutorMode(o.executor)
	}
	if flags.Changed(flagLocalRepository) {
		cfg.LocalRepository = o.localRepository
	}
	return cfg.Validate()
}

func (o *addPOMOptions) request(cfg *config.Config) publish.Request {
	return publish.Request{
		PomName:                         types.FilesystemPath(o.pomName),
		GroupID:                         types.GroupID(o.groupID),
		ArtifactID:                      types.ArtifactID(o.artifactID),
		Skip:                            cfg.Deploy.Skip,
		ErrorOnMissing:                  cfg.Deploy.ErrorOnMissing,
		AltDeploymentRepository:         cfg.Deploy.AltDeploymentRepository,
		AltSnapshotDeploymentRepository: cfg.Deploy.AltSnapshotDeploymentRepository,
	}
}

func runAddPOM(ctx context.Context, app *App, flags *pflag.FlagSet, opts *addPOMOptions) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(err, nil)
	}
	if err = opts.applyFlags(flags, cfg); err != nil {
		return app.fail(err, cfg)
	}

	logger := app.newLogger(cfg)
	// A skipped run touches neither the project nor an executor.
	if cfg.Deploy.Skip {
		logger.Debug("Skipping plugin")
		printResult(app, publish.Result{Outcome: publish.OutcomeSkip})
		return nil
	}

	layouts := repository.DefaultLayouts()
	host, err := app.loadProject(opts.project, layouts)
	if err != nil {
		return app.fail(err, cfg)
	}

	built := app.Runtimes(runtime.BuildRegistryOptions{
		Config: cfg,
		Stdout: app.stdout,
		Stderr: app.stderr,
		Logger: logger,
	})
	defer built.Cleanup()
	for _, diag := range built.Diagnostics {
		logger.Warn(diag.Message, "code", diag.Code)
	}

	rt, err := built.Registry.Select(runtime.RuntimeType(cfg.Executor))
	if err != nil {
		logger.Info("Executors available on this system", "executors", built.Registry.Available())
		return app.fail(err, cfg)
	}
	logger.Debug("Selected executor", "executor", rt.Name())

	orch := publish.NewOrchestrator(publish.Options{
		Session:   project.NewSession(host),
		Installer: rt,
		Deployer:  rt,
		Resolver:  repository.NewResolver(layouts, logger),
		Logger:    logger,
	})

	result, err := orch.Execute(ctx, opts.request(cfg))
	if err != nil {
		return app.fail(err, cfg)
	}

	printResult(app, result)
	return nil
}

func printResult(app *App, result publish.Result) {
	switch result.Outcome {
	case publish.OutcomeProceed:
		app.printf("%s Installed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(result.Coordinates))
		app.printf("%s Deployed to %s (%s)\n", SuccessStyle.Render("✓"),
			CmdStyle.Render(result.Repository.ID), result.Repository.URL)
	case publish.OutcomeSkip:
		app.printf("%s\n", SubtitleStyle.Render("Skipped: nothing was installed or deployed"))
	case publish.OutcomeMissing:
		app.printf("%s %s\n", WarningStyle.Render("!"),
			SubtitleStyle.Render("Descriptor "+string(result.File)+" not found; nothing was installed or deployed"))
	}
}
