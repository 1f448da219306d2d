// SPDX-License-Identifier: MPL-2.0

// Package repository models Maven repositories and decides where a
// descriptor is deployed.
//
// It owns the layout registry ("default" and "legacy"), the parser for
// alternate repository strings of the form id::layout::url, the
// deployment-repository resolution order (snapshot override, release
// override, distribution management), Maven snapshot version handling and
// the maven-metadata.xml document.
package repository
