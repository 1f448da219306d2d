// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goots/pom-deployer/internal/issue"
	"github.com/goots/pom-deployer/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, filepath.Join(t.TempDir(), ConfigFileName+"."+ConfigFileExt), content)
}

func load(t *testing.T, opts LoadOptions) (*Config, error) {
	t.Helper()
	if opts.ConfigDirPath == "" && opts.ConfigFilePath == "" {
		opts.ConfigDirPath = t.TempDir()
	}
	return NewProvider().Load(context.Background(), opts)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ExecutorBuiltin, cfg.Executor)
	assert.Equal(t, "mvn", cfg.Maven.Binary)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTP.Timeout)
	assert.False(t, cfg.Deploy.Skip, "Deploy.Skip defaults to false")
	assert.True(t, cfg.Deploy.ErrorOnMissing, "Deploy.ErrorOnMissing defaults to true")
	assert.NoError(t, cfg.Validate())
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-specific")
	}

	restore := testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/xdg")
	defer restore()

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), dir)

	SetConfigDirOverride("/override")
	defer Reset()
	dir, err = ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/override", dir)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := load(t, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ExecutorBuiltin, cfg.Executor)
	assert.True(t, cfg.Deploy.ErrorOnMissing)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTP.Timeout)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
executor: "maven"
local_repository: "/srv/m2"
maven: {
	binary: "/opt/maven/bin/mvn"
	args: "-s settings.xml -Dmaven.wagon.http.pool=false"
	offline: true
}
http: timeout: "15s"
servers: [
	{id: "snaps", username: "ci", password_env: "SNAPS_PASSWORD"},
]
deploy: {
	alt_snapshot_deployment_repository: "snaps::default::https://repo.example/snapshots"
	error_on_missing: false
}
ui: color_scheme: "dark"
`)

	cfg, err := load(t, LoadOptions{ConfigFilePath: path})
	require.NoError(t, err)

	assert.Equal(t, ExecutorMaven, cfg.Executor)
	assert.Equal(t, "/srv/m2", cfg.LocalRepository)
	assert.Equal(t, "/opt/maven/bin/mvn", cfg.Maven.Binary)
	assert.True(t, cfg.Maven.Offline)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "snaps::default::https://repo.example/snapshots", cfg.Deploy.AltSnapshotDeploymentRepository)
	assert.False(t, cfg.Deploy.ErrorOnMissing)
	assert.Equal(t, ColorSchemeDark, cfg.UI.ColorScheme)

	server, ok := cfg.Server("snaps")
	require.True(t, ok, "Server(snaps) not found")
	assert.Equal(t, "ci", server.Username)
	assert.Equal(t, "SNAPS_PASSWORD", server.PasswordEnv)

	_, ok = cfg.Server("releases")
	assert.False(t, ok)
}

func TestLoad_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `executor: "maven"`)

	cfg, err := load(t, LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	assert.Equal(t, ExecutorMaven, cfg.Executor)

	path, err := NewProvider().Path(LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.cue"), path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `deploy: skip: false`)

	defer testutil.MustSetenv(t, "POM_DEPLOYER_DEPLOY_SKIP", "true")()
	defer testutil.MustSetenv(t, "POM_DEPLOYER_DEPLOY_ALT_DEPLOYMENT_REPOSITORY", "rel::default::https://repo.example/rel")()
	defer testutil.MustSetenv(t, "POM_DEPLOYER_EXECUTOR", "maven")()
	defer testutil.MustSetenv(t, "POM_DEPLOYER_HTTP_TIMEOUT", "5s")()

	cfg, err := load(t, LoadOptions{ConfigFilePath: path})
	require.NoError(t, err)

	assert.True(t, cfg.Deploy.Skip, "POM_DEPLOYER_DEPLOY_SKIP overrides the file")
	assert.Equal(t, "rel::default::https://repo.example/rel", cfg.Deploy.AltDeploymentRepository)
	assert.Equal(t, ExecutorMaven, cfg.Executor)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
}

func TestLoad_InvalidEnvExecutor(t *testing.T) {
	defer testutil.MustSetenv(t, "POM_DEPLOYER_EXECUTOR", "gradle")()

	_, err := load(t, LoadOptions{})
	require.ErrorIs(t, err, ErrInvalidExecutorMode)

	var ae *issue.ActionableError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "validate configuration", ae.Operation)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown executor", `executor: "gradle"`, "executor"},
		{"unknown field", `publisher: "x"`, "publisher"},
		{"server with empty id", `servers: [{id: "", username: "ci"}]`, "id"},
		{"bad timeout", `http: timeout: "soon"`, "timeout"},
		{"bad color scheme", `ui: color_scheme: "neon"`, "color_scheme"},
		{"syntax error", `executor: "maven`, ConfigFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, LoadOptions{ConfigFilePath: writeConfig(t, tt.content)})
			require.Error(t, err)

			var ae *issue.ActionableError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, "load configuration", ae.Operation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := load(t, LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	path, created, err := CreateDefaultConfig(dir)
	require.NoError(t, err)
	assert.True(t, created, "first call creates the file")

	cfg, err := load(t, LoadOptions{ConfigFilePath: path})
	require.NoError(t, err, "generated config does not load")
	assert.Equal(t, ExecutorBuiltin, cfg.Executor)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTP.Timeout)

	_, created, err = CreateDefaultConfig(dir)
	require.NoError(t, err)
	assert.False(t, created, "second call keeps the existing file")
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Executor = ExecutorMaven
	cfg.Maven.Args = `-s "my settings.xml"`
	cfg.Servers = []ServerConfig{{ID: "releases", Username: "ci", Password: "secret", PasswordEnv: "RELEASES_PASSWORD"}}
	cfg.Deploy.AltDeploymentRepository = "releases::default::https://repo.example/releases"

	out := GenerateCUE(cfg)
	assert.NotContains(t, out, "secret", "passwords are never written")

	loaded, err := load(t, LoadOptions{ConfigFilePath: writeConfig(t, out)})
	require.NoError(t, err, out)
	assert.Equal(t, cfg.Maven.Args, loaded.Maven.Args)

	s, ok := loaded.Server("releases")
	require.True(t, ok)
	assert.Equal(t, "RELEASES_PASSWORD", s.PasswordEnv)
	assert.Equal(t, cfg.Deploy.AltDeploymentRepository, loaded.Deploy.AltDeploymentRepository)
}
