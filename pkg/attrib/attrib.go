// Package attrib toggles the read-only attribute on files and directories.
package attrib

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Backend reads and writes the platform read-only flag of a single path.
type Backend interface {
	IsReadOnly(path string) (bool, error)
	SetReadOnly(path string, readOnly bool) error
}

// Error is returned when the read-only flag of a path cannot be changed.
type Error struct {
	Path  string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("set read-only attribute on %s: %v", e.Path, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Manager applies attribute changes through a Backend, walking trees on fs.
type Manager struct {
	fs      afero.Fs
	backend Backend
}

func New(fs afero.Fs, backend Backend) *Manager {
	return &Manager{fs: fs, backend: backend}
}

// IsReadOnly reports whether path carries the read-only flag.
func (m *Manager) IsReadOnly(path string) (bool, error) {
	return m.backend.IsReadOnly(path)
}

// SetReadOnly marks a single existing path read-only.
func (m *Manager) SetReadOnly(path string) error {
	if err := m.backend.SetReadOnly(path, true); err != nil {
		return &Error{Path: path, Cause: err}
	}
	return nil
}

// ClearReadOnly clears the flag on path if it is set. It reports whether a
// change was made.
func (m *Manager) ClearReadOnly(path string) (bool, error) {
	readOnly, err := m.backend.IsReadOnly(path)
	if err != nil {
		return false, err
	}
	if !readOnly {
		return false, nil
	}
	if err := m.backend.SetReadOnly(path, false); err != nil {
		return false, &Error{Path: path, Cause: err}
	}
	return true, nil
}

// ClearReadOnlyRecursive clears the read-only flag on path and everything
// below it. Directories are visited before their children so that a locked
// directory becomes writable before its entries are listed. Failures on
// individual entries do not stop the walk; they are joined into the returned
// error, which callers treat as a warning. A missing path is not an error.
// Symlinks are skipped.
func (m *Manager) ClearReadOnlyRecursive(path string) error {
	var errs []error

	_ = afero.Walk(m.fs, path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		if _, err := m.ClearReadOnly(p); err != nil {
			errs = append(errs, err)
		}
		return nil
	})

	return errors.Join(errs...)
}
