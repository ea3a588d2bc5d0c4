package guard

import (
	"fmt"
	"path/filepath"

	"github.com/olimci/versionguard/pkg/ini"
	"github.com/olimci/versionguard/pkg/oplog"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
	"github.com/spf13/afero"
)

const unknownVersion = "unknown"

// SwitchVersion points ProductInfo.xml and configure.ini at the version
// directory target. Both files are replaced outright and both writes are
// always attempted; the result fails if either write failed.
func (e *Engine) SwitchVersion(target string) SwitchResult {
	var log oplog.Log
	log.Add("Initiating switch to version at: %q", target)

	exists, err := fileutils.Exists(e.fs, target)
	if err != nil || !exists {
		log.Warn("Target directory does not exist")
		failure := &Error{Kind: KindTargetNotFound, Path: target, Msg: "Target version not found", Err: err}
		return switchFailed(failure, &log)
	}

	label := versionLabel(target)
	log.Add("Detected version: %s", label)

	l, err := e.Layout()
	if err != nil {
		return switchFailed(err, &log)
	}

	executable := filepath.Join(target, e.opts.Executable)
	if ok, _ := fileutils.Exists(e.fs, executable); !ok {
		log.Warn("%s not found in %s", e.opts.Executable, label)
	}

	var failures []*Error

	pointer := l.PointerPath()
	log.Add("Updating ProductInfo at: %q", pointer)
	if changed, _ := e.attrs.ClearReadOnly(pointer); changed {
		log.Add("Removed Read-Only attribute from %s", filepath.Base(pointer))
	}
	if err := e.writePointer(pointer, Pointer{InstallPath: executable, Version: label}); err != nil {
		log.Warn("Failed to write %s: %v", filepath.Base(pointer), err)
		failures = append(failures, ioError(pointer, fmt.Sprintf("Failed to write %s: %v", filepath.Base(pointer), err), err))
	} else {
		log.OK("Updated %s", filepath.Base(pointer))
	}

	config := l.ConfigPath()
	log.Add("Updating configure.ini at: %q", config)
	_, _ = e.attrs.ClearReadOnly(config)
	if err := e.config.WriteSection(config, configSection, []ini.Entry{{Key: ConfigKey, Value: label}}); err != nil {
		log.Warn("Failed to write %s: %v", filepath.Base(config), err)
		failures = append(failures, ioError(config, fmt.Sprintf("Failed to write %s: %v", filepath.Base(config), err), err))
	} else {
		log.OK("Updated %s", filepath.Base(config))
	}

	if len(failures) > 0 {
		var failure error = joinIOErrors(failures)
		if len(failures) == 1 {
			failure = partial(failure)
		}
		return switchFailed(failure, &log)
	}

	return SwitchResult{
		Success: true,
		Message: fmt.Sprintf("Successfully switched to v%s", label),
		Logs:    log.Lines(),
	}
}

func (e *Engine) writePointer(path string, p Pointer) error {
	content, err := renderPointer(p)
	if err != nil {
		return err
	}
	return afero.WriteFile(e.fs, path, content, 0o644)
}

func switchFailed(err error, log *oplog.Log) SwitchResult {
	return SwitchResult{
		Success: false,
		Message: err.Error(),
		Logs:    log.Lines(),
		err:     err,
	}
}

// versionLabel names a version by its directory.
func versionLabel(target string) string {
	base := filepath.Base(filepath.Clean(target))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return unknownVersion
	}
	return base
}
