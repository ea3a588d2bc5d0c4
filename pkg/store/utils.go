package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

func ensureDefaultConfig(fs afero.Fs, path string) (bool, error) {
	if _, err := fs.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := writeTOML(fs, path, DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}

func writeTOML(fs afero.Fs, path string, value any) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tp := path + ".tmp"

	f, err := fs.OpenFile(tp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tp, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(value); err != nil {
		_ = fs.Remove(tp)
		return fmt.Errorf("encode: %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = fs.Remove(tp)
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err := fs.Rename(tp, path); err != nil {
		_ = fs.Remove(tp)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
