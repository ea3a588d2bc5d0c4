// Package blocker manages zero-byte read-only marker files that stop an
// updater from writing to the paths it needs.
package blocker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olimci/versionguard/pkg/attrib"
	"github.com/olimci/versionguard/pkg/oplog"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
	"github.com/spf13/afero"
)

type Manager struct {
	fs    afero.Fs
	attrs *attrib.Manager
}

func New(fs afero.Fs, attrs *attrib.Manager) *Manager {
	return &Manager{fs: fs, attrs: attrs}
}

// Create replaces whatever is at path with an empty read-only file. Prior
// content, including a directory tree, is discarded.
func (m *Manager) Create(path string) error {
	exists, err := fileutils.Exists(m.fs, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if exists {
		// best effort, removal below reports the real failure
		_ = m.attrs.ClearReadOnlyRecursive(path)
		if err := fileutils.RemovePath(m.fs, path); err != nil {
			return fmt.Errorf("remove existing %s: %w", path, err)
		}
	}

	if err := afero.WriteFile(m.fs, path, nil, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := m.attrs.SetReadOnly(path); err != nil {
		return err
	}
	return nil
}

// Remove deletes the file at path, logging progress to log. Failures are
// logged as warnings and never returned. It reports whether the file is gone
// afterwards.
func (m *Manager) Remove(path string, log *oplog.Log) bool {
	exists, err := fileutils.Exists(m.fs, path)
	if err != nil {
		log.Warn("Could not inspect %s: %v", path, err)
		return false
	}
	if !exists {
		return true
	}

	name := filepath.Base(path)
	log.Add("Removing %s blocker...", name)
	if err := m.attrs.ClearReadOnlyRecursive(path); err != nil {
		log.Warn("Warning: %v", err)
	}
	if err := m.fs.Remove(path); err != nil {
		log.Warn("Could not remove %s: %v", name, err)
		return false
	}
	log.OK("%s blocker removed", name)
	return true
}

// Present reports whether path holds a blocker: an existing zero-byte file
// carrying the read-only flag. Anything else, including a legitimate file the
// application wrote itself, is not a blocker.
func (m *Manager) Present(path string) bool {
	info, err := m.fs.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() || info.Size() != 0 {
		return false
	}
	readOnly, err := m.attrs.IsReadOnly(path)
	return err == nil && readOnly
}

// State describes what occupies a blocker path.
type State int

const (
	StateMissing State = iota
	StateBlocker
	StateOther
)

func (m *Manager) State(path string) (State, error) {
	if _, err := m.fs.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StateMissing, nil
		}
		return StateOther, err
	}
	if m.Present(path) {
		return StateBlocker, nil
	}
	return StateOther, nil
}
