package ini

import (
	"errors"
	"testing"

	"github.com/olimci/versionguard/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cfgPath = "/apps/configure.ini"

func readString(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestUpsertKeyPreservesOrderAndOtherKeys(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("a=1\nlast_version=old\nb=2"), 0o644))

	p := NewPatcher(fs)
	require.NoError(t, p.UpsertKey(cfgPath, "last_version", "new"))

	assert.Equal(t, "a=1\nlast_version=new\nb=2", readString(t, fs, cfgPath))
}

func TestUpsertKeyAppendsWhenAbsent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("[Configure]\r\nfoo=bar\r\n"), 0o644))

	p := NewPatcher(fs)
	require.NoError(t, p.UpsertKey(cfgPath, "last_version", "1.0.0.0"))

	assert.Equal(t, "[Configure]\nfoo=bar\nlast_version=1.0.0.0", readString(t, fs, cfgPath))
}

func TestUpsertKeyTreatsMissingFileAsEmpty(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/apps", 0o755))

	p := NewPatcher(fs)
	require.NoError(t, p.UpsertKey(cfgPath, "last_version", "1.0.0.0"))

	assert.Equal(t, "last_version=1.0.0.0", readString(t, fs, cfgPath))
}

func TestUpsertKeyCollapsesDuplicatesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("  last_version=a\nx=1\nlast_version=b\n"), 0o644))

	p := NewPatcher(fs)
	require.NoError(t, p.UpsertKey(cfgPath, "last_version", "1.0.0.0"))
	first := readString(t, fs, cfgPath)
	require.NoError(t, p.UpsertKey(cfgPath, "last_version", "1.0.0.0"))
	second := readString(t, fs, cfgPath)

	assert.Equal(t, first, second)
	assert.Equal(t, "last_version=1.0.0.0\nx=1\nlast_version=1.0.0.0", first)
}

func TestUpsertKeyWriteFailure(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFaultFs(afero.NewMemMapFs())
	fs.FailWrite(cfgPath, errors.New("read-only file system"))

	err := NewPatcher(fs).UpsertKey(cfgPath, "last_version", "1.0.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), cfgPath)
}

func TestRemoveKeyStripsMatchingLines(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("a=1\nlast_version=1.0.0.0\nb=2\n"), 0o644))

	existed, err := NewPatcher(fs).RemoveKey(cfgPath, "last_version")
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, "a=1\nb=2", readString(t, fs, cfgPath))
}

func TestRemoveKeyMissingFileIsNotTouched(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFaultFs(afero.NewMemMapFs())

	existed, err := NewPatcher(fs).RemoveKey(cfgPath, "last_version")
	require.NoError(t, err)
	assert.False(t, existed)
	assert.False(t, fs.Called("openfile", cfgPath))

	_, statErr := fs.Fs.Stat(cfgPath)
	assert.Error(t, statErr, "file must not be created")
}

func TestContainsIsSubstringBased(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("foo=bar last_version=1.0.0.0 trailing"), 0o644))

	p := NewPatcher(fs)
	assert.True(t, p.Contains(cfgPath, "last_version=1.0.0.0"))
	assert.False(t, p.Contains(cfgPath, "last_version=2"))
	assert.False(t, p.Contains("/apps/missing.ini", "last_version=1.0.0.0"))
}

func TestWriteSectionReplacesContent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("a=1\nlast_version=1.0.0.0\n"), 0o644))

	p := NewPatcher(fs)
	require.NoError(t, p.WriteSection(cfgPath, "Configure", []Entry{{Key: "last_version", Value: "3.1.0.100"}}))

	assert.Equal(t, "[Configure]\r\nlast_version=3.1.0.100\r\n", readString(t, fs, cfgPath))

	value, ok := p.Value(cfgPath, "last_version")
	assert.True(t, ok)
	assert.Equal(t, "3.1.0.100", value)
}
