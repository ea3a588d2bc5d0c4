package attrib

import "github.com/spf13/afero"

const writeBits = 0o222

// FsBackend maps the read-only flag onto permission bits of an afero.Fs.
// A path is read-only when none of its write bits are set.
type FsBackend struct {
	Fs afero.Fs
}

func NewFsBackend(fs afero.Fs) FsBackend {
	return FsBackend{Fs: fs}
}

func (b FsBackend) IsReadOnly(path string) (bool, error) {
	info, err := b.Fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&writeBits == 0, nil
}

func (b FsBackend) SetReadOnly(path string, readOnly bool) error {
	info, err := b.Fs.Stat(path)
	if err != nil {
		return err
	}

	perm := info.Mode().Perm()
	if readOnly {
		perm &^= writeBits
	} else {
		perm |= 0o200
	}
	return b.Fs.Chmod(path, perm)
}
