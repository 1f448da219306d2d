// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the pom-deployer command tree.
//
// The root command is executed through fang. Every command receives the App
// composition root, which carries the configuration provider, the project
// loader and the runtime registry factory. Commands that fail render their
// own diagnostics and return an ExitError; Execute maps it to the process
// exit status.
package cmd
