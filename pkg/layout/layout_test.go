package layout

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuildsPaths(t *testing.T) {
	t.Parallel()

	root := filepath.Join("C:", "Users", "me", "AppData", "Local")
	l, err := Resolve(MapEnvironment{"LOCALAPPDATA": root}, "LOCALAPPDATA", "CapCut")
	require.NoError(t, err)

	appRoot := filepath.Join(root, "CapCut")
	assert.Equal(t, appRoot, l.Root)
	assert.Equal(t, filepath.Join(appRoot, "Apps", "configure.ini"), l.ConfigPath())
	assert.Equal(t, filepath.Join(appRoot, "Apps", "ProductInfo.xml"), l.PointerPath())
	assert.Equal(t, filepath.Join(appRoot, "User Data", "Download", "update.exe"), l.UpdaterPath())
	assert.Equal(t, []string{l.PointerPath(), l.UpdaterPath()}, l.BlockerPaths())
}

func TestResolveRejectsMissingOrEmptyVariable(t *testing.T) {
	t.Parallel()

	for _, env := range []MapEnvironment{{}, {"LOCALAPPDATA": "  "}} {
		_, err := Resolve(env, "LOCALAPPDATA", "CapCut")
		var unresolved *UnresolvedError
		require.True(t, errors.As(err, &unresolved))
		assert.Equal(t, "Failed to get LOCALAPPDATA", err.Error())
	}
}
