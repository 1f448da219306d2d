// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goots/pom-deployer/internal/repository"
)

func newRepositoryCommand(app *App) *cobra.Command {
	var (
		projectPath string
		overrides   repositoryOverrides
	)

	repoCmd := &cobra.Command{
		Use:   "repository",
		Short: "Show the repository add-pom would deploy to",
		Long: `Resolve the deployment repository for the host project without installing
or deploying anything. Alternate repositories given as flags or in the
deploy section of the configuration file take precedence over the
project's distribution management.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRepository(cmd.Context(), app, cmd.Flags(), projectPath, overrides)
		},
	}

	repoCmd.Flags().StringVar(&projectPath, flagProject, ".", "host project pom.xml or its directory")
	addRepositoryOverrideFlags(repoCmd.Flags(), &overrides)

	return repoCmd
}

func showRepository(ctx context.Context, app *App, flags *pflag.FlagSet, projectPath string, overrides repositoryOverrides) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(err, nil)
	}
	overrides.apply(flags, &cfg.Deploy)

	layouts := repository.DefaultLayouts()
	host, err := app.loadProject(projectPath, layouts)
	if err != nil {
		return app.fail(err, cfg)
	}

	resolver := repository.NewResolver(layouts, app.newLogger(cfg))
	repo, err := resolver.Resolve(host.Version, host.DistributionRepository(),
		cfg.Deploy.AltDeploymentRepository, cfg.Deploy.AltSnapshotDeploymentRepository)
	if err != nil {
		return app.fail(err, cfg)
	}

	app.printf("%s\n\n", TitleStyle.Render("Deployment Repository"))
	app.printf("%s: %s\n", CmdStyle.Render("project"), host.Coordinates())
	app.printf("%s: %s\n", CmdStyle.Render("id"), repo.ID)
	app.printf("%s: %s\n", CmdStyle.Render("layout"), repo.LayoutName())
	app.printf("%s: %s\n", CmdStyle.Render("url"), repo.URL)
	app.printf("%s: %v\n", CmdStyle.Render("unique_version"), repo.UniqueVersion)
	return nil
}
