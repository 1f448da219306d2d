// SPDX-License-Identifier: MPL-2.0

package publish

import "github.com/goots/pom-deployer/internal/project"

const (
	// DefaultInstallPluginVersion is used when the host does not configure
	// maven-install-plugin.
	DefaultInstallPluginVersion = "2.5.2"
	// DefaultDeployPluginVersion is used when the host does not configure
	// maven-deploy-plugin.
	DefaultDeployPluginVersion = "2.8.2"
)

var (
	// InstallPluginKey identifies maven-install-plugin in the host project.
	InstallPluginKey = project.PluginKey(project.DefaultPluginGroupID, "maven-install-plugin")
	// DeployPluginKey identifies maven-deploy-plugin in the host project.
	DeployPluginKey = project.PluginKey(project.DefaultPluginGroupID, "maven-deploy-plugin")
)

type (
	// PluginVersions are the plugin versions install and deploy run with.
	PluginVersions struct {
		Install string
		Deploy  string
	}

	// PluginLookup reports the version of a plugin the host configures.
	PluginLookup interface {
		PluginVersion(key string) (string, bool)
	}
)

// ResolvePluginVersions returns the host-configured version of each plugin,
// falling back to the defaults. Versions are taken verbatim.
func ResolvePluginVersions(host PluginLookup) PluginVersions {
	return PluginVersions{
		Install: pluginVersion(host, InstallPluginKey, DefaultInstallPluginVersion),
		Deploy:  pluginVersion(host, DeployPluginKey, DefaultDeployPluginVersion),
	}
}

func pluginVersion(host PluginLookup, key, fallback string) string {
	if host != nil {
		if v, ok := host.PluginVersion(key); ok {
			return v
		}
	}
	return fallback
}
