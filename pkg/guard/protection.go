package guard

import (
	"fmt"
	"path/filepath"

	"github.com/olimci/versionguard/pkg/blocker"
	"github.com/olimci/versionguard/pkg/layout"
	"github.com/olimci/versionguard/pkg/oplog"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
)

// Apply locks the config file and creates the blockers, each only when asked,
// in that order. It stops at the first failing step; steps already done are
// kept.
func (e *Engine) Apply(opts ApplyOptions) Result {
	var log oplog.Log

	l, err := e.Layout()
	if err != nil {
		return fail(err, &log)
	}

	changed := false

	if opts.LockConfig {
		log.Add("Modifying config...")
		path := l.ConfigPath()
		if err := e.config.UpsertKey(path, ConfigKey, e.opts.Sentinel); err != nil {
			return fail(ioError(path, err.Error(), err), &log)
		}
		changed = true
		log.OK("Configuration locked")
	} else {
		log.Add("Skipping config lock (disabled)")
	}

	if opts.CreateBlockers {
		log.Add("Creating blockers...")
		created, err := e.createBlockers(l)
		if err != nil {
			var failure error = err
			if changed || created > 0 {
				failure = partial(err)
			}
			return fail(failure, &log)
		}
		log.OK("Update blockers created")
	} else {
		log.Add("Skipping blocker creation (disabled)")
	}

	return succeed(&log)
}

func (e *Engine) createBlockers(l layout.Layout) (int, *Error) {
	pointer := l.PointerPath()
	if err := e.blockers.Create(pointer); err != nil {
		return 0, ioError(pointer, err.Error(), err)
	}

	dir := l.DownloadDir()
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return 1, ioError(dir, fmt.Sprintf("create directory %s: %v", dir, err), err)
	}

	updater := l.UpdaterPath()
	if err := e.blockers.Create(updater); err != nil {
		return 1, ioError(updater, err.Error(), err)
	}

	return 2, nil
}

// Remove deletes both blockers and the config lock. Individual failures are
// logged and do not fail the operation; only an unresolvable installation
// root does.
func (e *Engine) Remove() Result {
	var log oplog.Log

	l, err := e.Layout()
	if err != nil {
		return fail(err, &log)
	}

	for _, path := range l.BlockerPaths() {
		e.blockers.Remove(path, &log)
	}

	path := l.ConfigPath()
	exists, err := fileutils.Exists(e.fs, path)
	if err != nil {
		log.Warn("Could not inspect %s: %v", filepath.Base(path), err)
	}
	if exists {
		log.Add("Resetting %s...", filepath.Base(path))
		if _, err := e.config.RemoveKey(path, ConfigKey); err != nil {
			log.Warn("Could not reset %s: %v", filepath.Base(path), err)
		} else {
			log.OK("%s reset", filepath.Base(path))
		}
	}

	log.OK("Protection removed - %s can now auto-update", e.opts.AppName)
	return succeed(&log)
}

// Status derives the protection state from the blockers and the config file.
// An unresolvable installation root reports everything false.
func (e *Engine) Status() Status {
	l, err := e.Layout()
	if err != nil {
		return Status{}
	}

	blockersExist := false
	for _, path := range l.BlockerPaths() {
		if e.blockers.Present(path) {
			blockersExist = true
		}
	}
	configLocked := e.config.Contains(l.ConfigPath(), e.lockEntry())

	return Status{
		IsProtected:   configLocked || blockersExist,
		ConfigLocked:  configLocked,
		BlockersExist: blockersExist,
	}
}

// BlockerReport describes one blocker path.
type BlockerReport struct {
	Path  string `json:"path"`
	State string `json:"state"`
}

// Report is Status plus the evidence behind it.
type Report struct {
	Status
	Root          string          `json:"root"`
	Apps          string          `json:"apps"`
	Blockers      []BlockerReport `json:"blockers"`
	ConfigVersion string          `json:"config_version,omitempty"`
	ActiveVersion string          `json:"active_version,omitempty"`
	ActivePath    string          `json:"active_path,omitempty"`
}

// Inspect gathers a Report. Unlike Status it fails when the installation root
// cannot be resolved.
func (e *Engine) Inspect() (Report, error) {
	l, err := e.Layout()
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Status: e.Status(),
		Root:   l.Root,
		Apps:   l.Apps,
	}

	for _, path := range l.BlockerPaths() {
		state, err := e.blockers.State(path)
		if err != nil {
			return Report{}, ioError(path, fmt.Sprintf("inspect %s: %v", path, err), err)
		}
		report.Blockers = append(report.Blockers, BlockerReport{Path: path, State: blockerStateName(state)})
	}

	if value, ok := e.config.Value(l.ConfigPath(), ConfigKey); ok {
		report.ConfigVersion = value
	}
	if ptr, err := e.ActivePointer(); err == nil {
		report.ActiveVersion = ptr.Version
		report.ActivePath = ptr.InstallPath
	}

	return report, nil
}

func blockerStateName(s blocker.State) string {
	switch s {
	case blocker.StateBlocker:
		return "blocker"
	case blocker.StateOther:
		return "file"
	default:
		return "missing"
	}
}
