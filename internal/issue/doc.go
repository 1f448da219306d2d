// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and the catalog of help pages the
// CLI renders when a publish fails.
//
// ActionableError carries the operation, the resource involved and
// suggestions. The catalog maps an Id to a Markdown page rendered with
// glamour.
package issue
