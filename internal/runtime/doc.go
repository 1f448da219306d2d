// SPDX-License-Identifier: MPL-2.0

// Package runtime provides the executors that install and deploy a descriptor.
//
// Two runtime implementations are available:
//   - builtin: writes the local repository through go-billy and deploys over
//     HTTP(S) or to file:// repositories, maintaining maven-metadata.xml and
//     checksum files itself
//   - maven: runs the install-file and deploy-file goals of the Maven plugins
//     through the mvn binary
//
// Both implement the Runtime interface with Name(), Available(), InstallFile()
// and DeployFile(). Each call receives an Environment naming the project the
// invocation runs against; the publish orchestrator hands deploys an
// isolated project so that nothing a deploy records leaks into the host.
package runtime
