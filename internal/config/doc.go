// SPDX-License-Identifier: MPL-2.0

// Package config handles pom-deployer configuration using Viper with CUE as
// the file format.
//
// The file is read from the platform config directory
// (~/.config/pom-deployer/config.cue on Linux, ~/Library/Application
// Support/pom-deployer/config.cue on macOS, %APPDATA%\pom-deployer\config.cue
// on Windows) or from pom-deployer.cue in the working directory, validated
// against the embedded #Config schema and layered over the defaults.
// Environment variables prefixed with POM_DEPLOYER_ override file values,
// e.g. POM_DEPLOYER_DEPLOY_SKIP=true.
package config
