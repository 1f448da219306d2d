// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/goots/pom-deployer/internal/issue"
	"github.com/goots/pom-deployer/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pom-deployer",
		Short: "Install and deploy standalone POM files",
		Long: TitleStyle.Render("pom-deployer") + SubtitleStyle.Render(" - Install and deploy standalone POM files") + `

pom-deployer publishes a generated POM (a BOM, a flattened descriptor) under
its own coordinates: it installs the file into the local repository, then
deploys it to the remote repository of the host project or to an alternate
repository given as id::layout::url.

` + SubtitleStyle.Render("Examples:") + `
  pom-deployer add-pom --pom-name target/bom.xml --group-id org.example --artifact-id example-bom
  pom-deployer repository --alt-deployment-repository internal::default::https://repo.example.org/releases
  pom-deployer config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/pom-deployer/config.cue)")

	rootCmd.AddCommand(newAddPOMCommand(app))
	rootCmd.AddCommand(newRepositoryCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// Execute builds the production App and runs the command tree. It is called
// by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		os.Exit(int(types.ExitFailure))
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// errorHandler prints errors fang sees. ExitErrors were rendered by the
// command that returned them.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
