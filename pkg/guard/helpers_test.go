package guard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olimci/versionguard/pkg/layout"
	"github.com/olimci/versionguard/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const dataRoot = "/local"

var testLayout = layout.New(filepath.Join(dataRoot, "CapCut"))

type fixture struct {
	t      *testing.T
	base   afero.Fs
	fs     *testutil.FaultFs
	engine *Engine
}

// newFixture builds an engine over an in-memory installation with an existing
// Apps directory. All calls go through a FaultFs so tests can inject failures
// and inspect what was touched.
func newFixture(t *testing.T, deps Deps) *fixture {
	t.Helper()

	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll(testLayout.Apps, 0o755))

	fs := testutil.NewFaultFs(base)
	deps.Fs = fs
	if deps.Env == nil {
		deps.Env = layout.MapEnvironment{"LOCALAPPDATA": dataRoot}
	}

	return &fixture{
		t:      t,
		base:   base,
		fs:     fs,
		engine: New(DefaultOptions(), deps),
	}
}

func (f *fixture) write(path, content string, perm os.FileMode) {
	f.t.Helper()
	require.NoError(f.t, afero.WriteFile(f.base, path, []byte(content), 0o644))
	require.NoError(f.t, f.base.Chmod(path, perm))
}

func (f *fixture) read(path string) string {
	f.t.Helper()
	data, err := afero.ReadFile(f.base, path)
	require.NoError(f.t, err)
	return string(data)
}

func (f *fixture) exists(path string) bool {
	f.t.Helper()
	ok, err := afero.Exists(f.base, path)
	require.NoError(f.t, err)
	return ok
}

func (f *fixture) perm(path string) os.FileMode {
	f.t.Helper()
	info, err := f.base.Stat(path)
	require.NoError(f.t, err)
	return info.Mode().Perm()
}

// versionDir creates an installed version with an executable and a
// read-only resource.
func (f *fixture) versionDir(name string) string {
	f.t.Helper()
	dir := filepath.Join(testLayout.Apps, name)
	f.write(filepath.Join(dir, "CapCut.exe"), "MZ", 0o555)
	f.write(filepath.Join(dir, "Resources", "app.pak"), "pak", 0o444)
	return dir
}

// touched reports whether any filesystem call hit path or something below it.
func (f *fixture) touched(path string) bool {
	clean := filepath.Clean(path)
	for _, op := range f.fs.Ops {
		_, target, _ := strings.Cut(op, " ")
		if target == clean || strings.HasPrefix(target, clean+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

type fakeRunning struct {
	running bool
	err     error
	calls   int
}

func (r *fakeRunning) Running(context.Context) (bool, error) {
	r.calls++
	return r.running, r.err
}

type fakeCleaner struct {
	logs  []string
	calls int
}

func (c *fakeCleaner) Clean(layout.Layout) []string {
	c.calls++
	return c.logs
}
