package scanner

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apps = "/local/CapCut/Apps"

func mkVersion(t *testing.T, fs afero.Fs, root, label string, withExe bool) string {
	t.Helper()
	dir := filepath.Join(root, label)
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	if withExe {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "CapCut.exe"), []byte("MZ"), 0o755))
	}
	return dir
}

func TestScan(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	mkVersion(t, fs, apps, "3.1.0.100", true)
	active := mkVersion(t, fs, apps, "3.2.0.5", true)
	mkVersion(t, fs, apps, "3.10.0.1", false)
	mkVersion(t, fs, "/archive", "2.9.0.0", true)
	require.NoError(t, fs.MkdirAll(filepath.Join(apps, "Resources"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(apps, "configure.ini"), nil, 0o644))

	got, err := New(fs, "CapCut.exe").Scan([]string{apps, "/archive", "/missing"}, filepath.Join(active, "CapCut.exe"))
	require.NoError(t, err)

	require.Len(t, got, 4)
	labels := make([]string, 0, len(got))
	for _, v := range got {
		labels = append(labels, v.Label)
	}
	assert.Equal(t, []string{"3.10.0.1", "3.2.0.5", "3.1.0.100", "2.9.0.0"}, labels)

	assert.False(t, got[0].HasExecutable)
	assert.True(t, got[1].Active)
	assert.Equal(t, active, got[1].Path)
	assert.False(t, got[2].Active)
	assert.Equal(t, "/archive", got[3].Root)
}

func TestScanActiveByDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dir := mkVersion(t, fs, apps, "3.1.0.100", true)

	got, err := New(fs, "CapCut.exe").Scan([]string{apps}, dir+"/")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Active)
}

func TestScanEmpty(t *testing.T) {
	t.Parallel()

	got, err := New(afero.NewMemMapFs(), "CapCut.exe").Scan([]string{apps}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFind(t *testing.T) {
	t.Parallel()

	versions := []Installed{{Label: "3.2.0.5"}, {Label: "3.1.0.100"}}

	v, ok := Find(versions, "3.1.0.100")
	assert.True(t, ok)
	assert.Equal(t, "3.1.0.100", v.Label)

	_, ok = Find(versions, "1.0.0.0")
	assert.False(t, ok)
}
