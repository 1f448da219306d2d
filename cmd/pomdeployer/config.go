// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goots/pom-deployer/internal/config"
)

// newConfigCommand creates the `pom-deployer config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pom-deployer configuration",
		Long: `Manage pom-deployer configuration.

Configuration is stored in:
  - Linux: ~/.config/pom-deployer/config.cue
  - macOS: ~/Library/Application Support/pom-deployer/config.cue
  - Windows: %APPDATA%\pom-deployer\config.cue

A pom-deployer.cue file in the working directory is used when the user
file does not exist. POM_DEPLOYER_* environment variables override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(err, nil)
			}
			app.printf("%s", config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(err, nil)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	value := func(v any) string { return valueStyle.Render(fmt.Sprint(v)) }

	app.printf("%s\n\n", TitleStyle.Render("Current Configuration"))

	cfgPath, _ := app.Config.Path(app.loadOptions())
	if cfgPath == "" {
		cfgPath = SubtitleStyle.Render("(using defaults)")
	}
	app.printf("%s: %s\n\n", keyStyle.Render("Config file"), cfgPath)

	localRepo, err := cfg.LocalRepositoryPath()
	if err != nil {
		localRepo = SubtitleStyle.Render("(unavailable: " + err.Error() + ")")
	}
	app.printf("%s: %s\n", keyStyle.Render("executor"), value(cfg.Executor))
	app.printf("%s: %s\n", keyStyle.Render("local_repository"), localRepo)

	app.printf("\n%s:\n", keyStyle.Render("maven"))
	app.printf("  binary: %s\n", value(cfg.Maven.Binary))
	app.printf("  args: %s\n", value(cfg.Maven.Args))
	app.printf("  offline: %s\n", value(cfg.Maven.Offline))

	app.printf("\n%s:\n", keyStyle.Render("http"))
	app.printf("  timeout: %s\n", value(cfg.HTTP.Timeout))

	app.printf("\n%s:\n", keyStyle.Render("servers"))
	if len(cfg.Servers) == 0 {
		app.printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, s := range cfg.Servers {
		user, password := s.Credentials()
		auth := "anonymous"
		if user != "" {
			auth = user
			if password != "" {
				auth += " (password set)"
			}
		}
		app.printf("  - %s: %s\n", value(s.ID), auth)
	}

	app.printf("\n%s:\n", keyStyle.Render("deploy"))
	app.printf("  alt_deployment_repository: %s\n", value(cfg.Deploy.AltDeploymentRepository))
	app.printf("  alt_snapshot_deployment_repository: %s\n", value(cfg.Deploy.AltSnapshotDeploymentRepository))
	app.printf("  skip: %s\n", value(cfg.Deploy.Skip))
	app.printf("  error_on_missing: %s\n", value(cfg.Deploy.ErrorOnMissing))

	app.printf("\n%s:\n", keyStyle.Render("ui"))
	app.printf("  color_scheme: %s\n", value(cfg.UI.ColorScheme))
	app.printf("  verbose: %s\n", value(cfg.UI.Verbose))

	return nil
}

func initConfig(app *App) error {
	cfgPath, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return app.fail(fmt.Errorf("failed to create config: %w", err), nil)
	}

	if !created {
		app.printf("%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	app.printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(err, nil)
	}

	app.printf("Config directory: %s\n", cfgDir)
	app.printf("Config file: %s/%s.%s\n", cfgDir, config.ConfigFileName, config.ConfigFileExt)

	active, err := app.Config.Path(app.loadOptions())
	if err != nil {
		return app.fail(err, nil)
	}
	if active == "" {
		active = "(none, using defaults)"
	}
	app.printf("Active file: %s\n", active)
	return nil
}
