//go:build !windows

package attrib

import "github.com/spf13/afero"

// NewNative returns the permission-bit backend over the OS filesystem.
func NewNative() Backend {
	return NewFsBackend(afero.NewOsFs())
}
