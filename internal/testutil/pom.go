// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// ProjectFixture describes a pom.xml written by WriteProject.
type ProjectFixture struct {
	GroupID    string
	ArtifactID string
	Version    string
	// Plugins maps artifactIds of org.apache.maven.plugins plugins to versions.
	Plugins map[string]string
	// ReleaseURL and SnapshotURL fill distributionManagement when set.
	ReleaseURL  string
	SnapshotURL string
	// PluginRepositoryURL adds a pluginRepository with id "plugins" when set.
	PluginRepositoryURL string
}

// WriteProject writes dir/pom.xml for the fixture and returns its path.
func WriteProject(t testing.TB, dir string, f ProjectFixture) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<project>\n")
	b.WriteString("  <modelVersion>4.0.0</modelVersion>\n")
	fmt.Fprintf(&b, "  <groupId>%s</groupId>\n  <artifactId>%s</artifactId>\n  <version>%s</version>\n",
		f.GroupID, f.ArtifactID, f.Version)
	b.WriteString("  <packaging>pom</packaging>\n")

	if len(f.Plugins) > 0 {
		b.WriteString("  <build>\n    <plugins>\n")
		for artifactID, version := range f.Plugins {
			fmt.Fprintf(&b, "      <plugin><artifactId>%s</artifactId><version>%s</version></plugin>\n", artifactID, version)
		}
		b.WriteString("    </plugins>\n  </build>\n")
	}

	if f.ReleaseURL != "" || f.SnapshotURL != "" {
		b.WriteString("  <distributionManagement>\n")
		if f.ReleaseURL != "" {
			fmt.Fprintf(&b, "    <repository><id>releases</id><url>%s</url></repository>\n", f.ReleaseURL)
		}
		if f.SnapshotURL != "" {
			fmt.Fprintf(&b, "    <snapshotRepository><id>snapshots</id><url>%s</url></snapshotRepository>\n", f.SnapshotURL)
		}
		b.WriteString("  </distributionManagement>\n")
	}

	if f.PluginRepositoryURL != "" {
		fmt.Fprintf(&b, "  <pluginRepositories>\n    <pluginRepository><id>plugins</id><url>%s</url></pluginRepository>\n  </pluginRepositories>\n",
			f.PluginRepositoryURL)
	}

	b.WriteString("</project>\n")
	return MustWriteFile(t, filepath.Join(dir, "pom.xml"), b.String())
}

// WriteDescriptor writes a small BOM descriptor to dir/name and returns its path.
func WriteDescriptor(t testing.TB, dir, name string) string {
	t.Helper()

	return MustWriteFile(t, filepath.Join(dir, name), `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <modelVersion>4.0.0</modelVersion>
  <groupId>org.example</groupId>
  <artifactId>my-bom</artifactId>
  <version>1.0</version>
  <packaging>pom</packaging>
</project>
`)
}
