// SPDX-License-Identifier: MPL-2.0

// Package project models the host build: the project a descriptor is
// published from and the session that holds the current project handle.
//
// Load reads the project's pom.xml. Session.Isolate swaps a minimal project
// in for the duration of a delegated deploy so that whatever the deploy
// records on its project never leaks into the host project.
package project
