package fileutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// ErrUnsafePath is returned when asked to remove a path that resolves to the
// current directory or a filesystem root.
var ErrUnsafePath = errors.New("refusing to remove unsafe path")

func ExpandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func AbsPath(path string) (string, error) {
	expanded := ExpandHome(strings.TrimSpace(path))
	if expanded == "" {
		return "", fmt.Errorf("path is empty")
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}

	return filepath.Clean(abs), nil
}

// IsUnsafe reports whether removing path would remove the working directory
// or a volume root.
func IsUnsafe(path string) bool {
	if strings.TrimSpace(path) == "" {
		return true
	}
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) {
		return true
	}
	vol := filepath.VolumeName(clean)
	return vol != "" && (clean == vol || clean == vol+string(filepath.Separator))
}

// Lstat uses Lstat when fs supports it and falls back to Stat.
func Lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if lst, ok := fs.(afero.Lstater); ok {
		info, _, err := lst.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}

// Exists reports whether anything is present at path.
func Exists(fs afero.Fs, path string) (bool, error) {
	if _, err := Lstat(fs, path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemovePath removes a file, symlink or directory tree. A missing path is not
// an error.
func RemovePath(fs afero.Fs, path string) error {
	if IsUnsafe(path) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, path)
	}
	clean := filepath.Clean(path)

	info, err := Lstat(fs, clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		return fs.RemoveAll(clean)
	}

	return fs.Remove(clean)
}

// DirSize sums the sizes of regular files below root.
func DirSize(fs afero.Fs, root string) (int64, error) {
	var total int64
	err := afero.Walk(fs, root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", root, err)
	}
	return total, nil
}
