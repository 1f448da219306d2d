// SPDX-License-Identifier: MPL-2.0

// Package publish attaches an external POM descriptor to a set of
// coordinates and publishes it: it gates on the descriptor's presence,
// resolves the install and deploy plugin versions, installs into the local
// repository and deploys to the resolved remote repository from an isolated
// project so that the deploy cannot alter the host project.
package publish
