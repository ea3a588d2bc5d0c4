package guard

import (
	"fmt"
	"path/filepath"

	"github.com/olimci/versionguard/pkg/oplog"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
)

// DeleteVersions removes version directories in order. It stops at the first
// directory it cannot delete; later paths are never attempted and earlier
// deletions stay done.
func (e *Engine) DeleteVersions(paths []string) Result {
	var log oplog.Log

	if len(paths) == 0 {
		log.OK("No versions to delete")
		return succeed(&log)
	}

	for i, path := range paths {
		name := filepath.Base(path)
		log.Add("Deleting: %s", name)

		err := e.checkVersionDir(path)
		if err == nil {
			if clearErr := e.attrs.ClearReadOnlyRecursive(path); clearErr != nil {
				log.Warn("Warning: %v", clearErr)
			}
			err = e.fs.RemoveAll(filepath.Clean(path))
		}
		if err != nil {
			var failure error = ioError(path, fmt.Sprintf("Failed to delete %s: %v", name, err), err)
			if i > 0 {
				failure = partial(failure)
			}
			return fail(failure, &log)
		}
	}

	log.OK("Deleted %d version(s)", len(paths))
	return succeed(&log)
}

// checkVersionDir rejects anything but an existing directory that is safe to
// remove. It runs before attributes are touched.
func (e *Engine) checkVersionDir(path string) error {
	if fileutils.IsUnsafe(path) {
		return fmt.Errorf("%w: %q", fileutils.ErrUnsafePath, path)
	}

	info, err := fileutils.Lstat(e.fs, path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
