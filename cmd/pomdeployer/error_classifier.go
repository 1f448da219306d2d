// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goots/pom-deployer/internal/config"
	"github.com/goots/pom-deployer/internal/issue"
	"github.com/goots/pom-deployer/internal/publish"
	"github.com/goots/pom-deployer/internal/repository"
	"github.com/goots/pom-deployer/internal/runtime"
)

// classifyError maps a failure to the issue catalog page explaining it and
// returns a styled message for CLI rendering. Unrecognized errors get no
// help page.
func classifyError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	var (
		ae        *issue.ActionableError
		cmdErr    *runtime.CommandFailedError
		statusErr *runtime.UnexpectedStatusError
	)

	switch {
	case errors.Is(err, publish.ErrMissingInput):
		issueID = issue.MissingInputId
	case errors.Is(err, publish.ErrInvalidRequest):
		issueID = issue.InvalidRequestId
	case errors.Is(err, repository.ErrInvalidRepositorySyntax):
		issueID = issue.InvalidRepositorySyntaxId
	case errors.Is(err, repository.ErrUnknownLayout):
		issueID = issue.UnknownLayoutId
	case errors.Is(err, repository.ErrNoRepositoryConfigured):
		issueID = issue.NoRepositoryConfiguredId
	case errors.Is(err, runtime.ErrRuntimeNotAvailable):
		issueID = issue.ExecutorNotAvailableId
	case errors.Is(err, config.ErrInvalidConfig):
		issueID = issue.ConfigLoadFailedId
	case errors.As(err, &ae) && strings.HasSuffix(ae.Operation, "configuration"):
		issueID = issue.ConfigLoadFailedId
	case errors.As(err, &ae) && ae.Operation == loadProjectOperation:
		issueID = issue.ProjectLoadFailedId
	case errors.As(err, &cmdErr):
		issueID = issue.InstallFailedId
		if strings.Contains(cmdErr.Goal, "deploy") {
			issueID = issue.DeployFailedId
		}
	case errors.As(err, &statusErr), errors.Is(err, runtime.ErrUnsupportedScheme):
		issueID = issue.DeployFailedId
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}
