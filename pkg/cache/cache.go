// Package cache measures and empties the application's cache directories.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/olimci/versionguard/pkg/attrib"
	"github.com/olimci/versionguard/pkg/layout"
	"github.com/olimci/versionguard/pkg/oplog"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
	"github.com/spf13/afero"
)

// DefaultDirs are cache directories relative to the installation root.
var DefaultDirs = []string{
	filepath.Join("User Data", "Cache"),
	filepath.Join("User Data", "Temp"),
	filepath.Join("User Data", "Log"),
}

// Entry is the measured size of one cache directory.
type Entry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Bytes  int64  `json:"bytes"`
}

// Report sums all measured directories.
type Report struct {
	Entries []Entry `json:"entries"`
	Total   int64   `json:"total"`
}

type Cleaner struct {
	fs    afero.Fs
	attrs *attrib.Manager
	dirs  []string
}

// New returns a Cleaner for dirs, which are relative to the installation
// root. An empty dirs uses DefaultDirs.
func New(fs afero.Fs, attrs *attrib.Manager, dirs []string) *Cleaner {
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}
	return &Cleaner{fs: fs, attrs: attrs, dirs: dirs}
}

func (c *Cleaner) paths(l layout.Layout) []string {
	out := make([]string, 0, len(c.dirs))
	for _, dir := range c.dirs {
		out = append(out, filepath.Join(l.Root, filepath.FromSlash(dir)))
	}
	return out
}

// Size measures every cache directory. Missing directories count as empty.
func (c *Cleaner) Size(l layout.Layout) (Report, error) {
	var report Report
	for i, path := range c.paths(l) {
		entry := Entry{Name: c.dirs[i], Path: path}

		exists, err := fileutils.Exists(c.fs, path)
		if err != nil {
			return Report{}, fmt.Errorf("stat %s: %w", path, err)
		}
		if exists {
			entry.Exists = true
			if entry.Bytes, err = fileutils.DirSize(c.fs, path); err != nil {
				return Report{}, err
			}
		}

		report.Entries = append(report.Entries, entry)
		report.Total += entry.Bytes
	}
	return report, nil
}

// Clean empties every cache directory and returns log lines. The directories
// themselves are kept. Failures are logged and do not stop the remaining
// directories.
func (c *Cleaner) Clean(l layout.Layout) []string {
	var log oplog.Log
	var freed uint64

	for i, path := range c.paths(l) {
		name := c.dirs[i]

		exists, err := fileutils.Exists(c.fs, path)
		if err != nil {
			log.Warn("Could not inspect %s: %v", name, err)
			continue
		}
		if !exists {
			continue
		}

		log.Add("Cleaning: %s", name)
		size, _ := fileutils.DirSize(c.fs, path)

		if err := c.attrs.ClearReadOnlyRecursive(path); err != nil {
			log.Warn("Warning: %v", err)
		}
		if err := c.empty(path); err != nil {
			log.Warn("Could not clean %s: %v", name, err)
			continue
		}
		if size > 0 {
			freed += uint64(size)
		}
	}

	log.OK("Freed %s", humanize.Bytes(freed))
	return log.Lines()
}

func (c *Cleaner) empty(dir string) error {
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return err
	}

	var errs []error
	for _, entry := range entries {
		if err := fileutils.RemovePath(c.fs, filepath.Join(dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
