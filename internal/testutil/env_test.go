// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustSetenv(t *testing.T) {
	const key = "POM_DEPLOYER_TESTUTIL_VAR"

	restore := MustSetenv(t, key, "first")
	require.Equal(t, "first", os.Getenv(key))

	restoreInner := MustSetenv(t, key, "second")
	restoreInner()
	assert.Equal(t, "first", os.Getenv(key), "after inner restore")

	restore()
	_, ok := os.LookupEnv(key)
	assert.False(t, ok, "%s still set after restore", key)
}

func TestSetHomeDir(t *testing.T) {
	dir := t.TempDir()
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	original := os.Getenv(key)

	restore := SetHomeDir(t, dir)
	assert.Equal(t, dir, os.Getenv(key))
	restore()
	assert.Equal(t, original, os.Getenv(key), "after restore")
}

func TestWriteProject(t *testing.T) {
	t.Parallel()

	path := WriteProject(t, t.TempDir(), ProjectFixture{
		GroupID:             "org.example",
		ArtifactID:          "platform",
		Version:             "1.0",
		Plugins:             map[string]string{"maven-deploy-plugin": "3.1.1"},
		ReleaseURL:          "https://repo.example/releases",
		PluginRepositoryURL: "https://repo.example/plugins",
	})
	assert.Equal(t, "pom.xml", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	for _, want := range []string{
		"<artifactId>platform</artifactId>",
		"<artifactId>maven-deploy-plugin</artifactId><version>3.1.1</version>",
		"<repository><id>releases</id><url>https://repo.example/releases</url></repository>",
		"<pluginRepository><id>plugins</id>",
	} {
		assert.Contains(t, content, want)
	}
	assert.NotContains(t, content, "snapshotRepository", "no SnapshotURL was given")
}
