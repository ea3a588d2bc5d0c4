package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	v, err := Parse("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v.Segments())

	label, err := Parse("3.1.0.100")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 0, 100}, label.Segments())
}

func TestParseRejectsInvalidFormat(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"1.2.x",
		">=1.2.3",
		"1.2.3-beta",
		"User Data",
	}

	for _, raw := range invalid {
		_, err := Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestIsLabel(t *testing.T) {
	t.Parallel()

	assert.True(t, IsLabel("3.1.0.100"))
	assert.True(t, IsLabel("4.0.0"))
	assert.False(t, IsLabel("v4.0.0"))
	assert.False(t, IsLabel("4"))
	assert.False(t, IsLabel("Resources"))
	assert.False(t, IsLabel("configure.ini"))
}

func TestSortNewestFirst(t *testing.T) {
	t.Parallel()

	labels := []string{"3.1.0.100", "backup", "3.10.0.1", "3.2.0.5", "3.1.0.99"}
	SortNewestFirst(labels)

	assert.Equal(t, []string{"3.10.0.1", "3.2.0.5", "3.1.0.100", "3.1.0.99", "backup"}, labels)
}

func TestEnsureCompatible(t *testing.T) {
	t.Parallel()

	current, err := Parse(Version)
	require.NoError(t, err)
	seg := current.Segments()

	assert.NoError(t, EnsureCompatible(""))
	assert.NoError(t, EnsureCompatible(Version))

	newerPatch := fmt.Sprintf("%d.%d.%d", seg[0], seg[1], seg[2]+1)
	assert.Error(t, EnsureCompatible(newerPatch), "newer version %q", newerPatch)

	nextMajor := fmt.Sprintf("%d.0.0", seg[0]+1)
	assert.Error(t, EnsureCompatible(nextMajor), "major mismatch %q", nextMajor)

	assert.Error(t, EnsureCompatible("0.1"), "two segments")
}
