// Package scanner lists installed and archived application versions.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/olimci/versionguard/pkg/utils/fileutils"
	"github.com/olimci/versionguard/pkg/version"
	"github.com/spf13/afero"
)

// Installed is one version directory found on disk.
type Installed struct {
	Label         string `json:"label"`
	Path          string `json:"path"`
	Root          string `json:"root"`
	Active        bool   `json:"active"`
	HasExecutable bool   `json:"has_executable"`
}

type Scanner struct {
	fs         afero.Fs
	executable string
}

func New(fs afero.Fs, executable string) *Scanner {
	return &Scanner{fs: fs, executable: executable}
}

// Scan lists version directories directly below each of roots, newest first.
// A missing root is skipped. The entry whose path equals activePath is marked
// active; activePath may name the version directory or the executable in it.
func (s *Scanner) Scan(roots []string, activePath string) ([]Installed, error) {
	activeDir := ""
	if activePath != "" {
		activeDir = filepath.Clean(activePath)
		if filepath.Base(activeDir) == s.executable {
			activeDir = filepath.Dir(activeDir)
		}
	}

	var out []Installed
	seen := map[string]struct{}{}

	for _, root := range roots {
		entries, err := afero.ReadDir(s.fs, root)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", root, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() || !version.IsLabel(entry.Name()) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}

			hasExe, _ := fileutils.Exists(s.fs, filepath.Join(path, s.executable))
			out = append(out, Installed{
				Label:         entry.Name(),
				Path:          path,
				Root:          root,
				Active:        activeDir != "" && path == activeDir,
				HasExecutable: hasExe,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := version.Compare(out[i].Label, out[j].Label); c != 0 {
			return c > 0
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

// Find returns the first scanned version labelled label.
func Find(versions []Installed, label string) (Installed, bool) {
	for _, v := range versions {
		if v.Label == label {
			return v, true
		}
	}
	return Installed{}, false
}
