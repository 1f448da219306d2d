// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"github.com/goots/pom-deployer/internal/config"
	"github.com/goots/pom-deployer/internal/runtime"
	"github.com/goots/pom-deployer/internal/testutil"
)

// stubConfigProvider serves a fixed configuration without touching disk.
type stubConfigProvider struct {
	cfg  *config.Config
	path string
	err  error
}

func (p *stubConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	cp := *p.cfg
	return &cp, nil
}

func (p *stubConfigProvider) Path(config.LoadOptions) (string, error) {
	return p.path, nil
}

// testApp is an App whose builtin runtime installs into an in-memory
// local repository.
type testApp struct {
	*App
	local billy.Filesystem
}

func newTestApp(t *testing.T, cfg *config.Config) (*testApp, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	local := memfs.New()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	app, err := NewApp(Dependencies{
		Config: &stubConfigProvider{cfg: cfg},
		Runtimes: func(opts runtime.BuildRegistryOptions) runtime.RegistryBuildResult {
			opts.LocalRepository = local
			opts.Clock = testutil.NewFakeClock(time.Time{})
			return runtime.BuildRegistry(opts)
		},
		Stdout: stdout,
		Stderr: stderr,
	})
	require.NoError(t, err)
	return &testApp{App: app, local: local}, stdout, stderr
}

func (a *testApp) run(t *testing.T, args ...string) error {
	t.Helper()

	root := newRootCommand(a.App)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SilenceErrors = true
	root.SilenceUsage = true
	return root.ExecuteContext(t.Context())
}

func fileURL(dir string) string {
	return "file://" + filepath.ToSlash(dir)
}
