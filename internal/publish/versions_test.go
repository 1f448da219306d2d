// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/goots/pom-deployer/internal/project"
)

func TestResolvePluginVersions(t *testing.T) {
	t.Parallel()

	plugin := func(artifactID, version string) project.Plugin {
		return project.Plugin{GroupID: project.DefaultPluginGroupID, ArtifactID: artifactID, Version: version}
	}

	tests := []struct {
		name string
		host *project.Project
		want PluginVersions
	}{
		{
			name: "nothing configured",
			host: &project.Project{},
			want: PluginVersions{Install: "2.5.2", Deploy: "2.8.2"},
		},
		{
			name: "both configured",
			host: &project.Project{Plugins: []project.Plugin{
				plugin("maven-install-plugin", "3.1.2"),
				plugin("maven-deploy-plugin", "3.1.1"),
			}},
			want: PluginVersions{Install: "3.1.2", Deploy: "3.1.1"},
		},
		{
			name: "deploy only",
			host: &project.Project{Plugins: []project.Plugin{plugin("maven-deploy-plugin", "3.0.0-M1")}},
			want: PluginVersions{Install: "2.5.2", Deploy: "3.0.0-M1"},
		},
		{
			name: "plugin management alone is not configuration",
			host: &project.Project{PluginManagement: []project.Plugin{plugin("maven-install-plugin", "3.1.2")}},
			want: PluginVersions{Install: "2.5.2", Deploy: "2.8.2"},
		},
		{
			name: "declared plugin inherits the managed version",
			host: &project.Project{
				Plugins:          []project.Plugin{plugin("maven-install-plugin", "")},
				PluginManagement: []project.Plugin{plugin("maven-install-plugin", "3.1.2")},
			},
			want: PluginVersions{Install: "3.1.2", Deploy: "2.8.2"},
		},
		{
			name: "other group ignored",
			host: &project.Project{Plugins: []project.Plugin{
				{GroupID: "com.example", ArtifactID: "maven-install-plugin", Version: "9"},
			}},
			want: PluginVersions{Install: "2.5.2", Deploy: "2.8.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ResolvePluginVersions(tt.host))
		})
	}

	assert.Equal(t, PluginVersions{Install: "2.5.2", Deploy: "2.8.2"}, ResolvePluginVersions(nil))
}

func TestResolvePluginVersions_Verbatim(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		version := rapid.StringN(1, 20, -1).Draw(t, "version")
		host := &project.Project{Plugins: []project.Plugin{
			{GroupID: project.DefaultPluginGroupID, ArtifactID: "maven-deploy-plugin", Version: version},
		}}
		if got := ResolvePluginVersions(host).Deploy; got != version {
			t.Fatalf("deploy version = %q, want %q", got, version)
		}
	})
}
