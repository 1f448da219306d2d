// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the package tests: environment
// and working-directory changes that fail the test on error, a controllable
// clock, and fixtures for project descriptors.
package testutil
