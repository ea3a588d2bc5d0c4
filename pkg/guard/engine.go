// Package guard protects an installed application from its updater and
// switches the active installed version. Every operation re-reads the
// filesystem; nothing is cached between calls.
package guard

import (
	"context"

	"github.com/olimci/versionguard/pkg/attrib"
	"github.com/olimci/versionguard/pkg/blocker"
	"github.com/olimci/versionguard/pkg/ini"
	"github.com/olimci/versionguard/pkg/layout"
	"github.com/spf13/afero"
)

const (
	// ConfigKey pins the version the updater believes is installed.
	ConfigKey     = "last_version"
	configSection = "Configure"
)

// RunningChecker reports whether the protected application is running.
type RunningChecker interface {
	Running(ctx context.Context) (bool, error)
}

// CacheCleaner removes application caches and returns its log lines. It
// cannot fail the sequence it runs in.
type CacheCleaner interface {
	Clean(l layout.Layout) []string
}

// Options names the protected application and its lock value.
type Options struct {
	AppName    string
	Executable string
	DataEnv    string
	Sentinel   string
}

func DefaultOptions() Options {
	return Options{
		AppName:    "CapCut",
		Executable: "CapCut.exe",
		DataEnv:    "LOCALAPPDATA",
		Sentinel:   "1.0.0.0",
	}
}

// Deps are the collaborators of an Engine. Nil fields get defaults: the OS
// filesystem, the permission-bit attribute backend over Fs and the process
// environment. Running and Cleaner may stay nil.
type Deps struct {
	Fs         afero.Fs
	Attributes attrib.Backend
	Env        layout.Environment
	Running    RunningChecker
	Cleaner    CacheCleaner
}

type Engine struct {
	opts     Options
	fs       afero.Fs
	env      layout.Environment
	attrs    *attrib.Manager
	blockers *blocker.Manager
	config   *ini.Patcher
	running  RunningChecker
	cleaner  CacheCleaner
}

func New(opts Options, deps Deps) *Engine {
	defaults := DefaultOptions()
	if opts.AppName == "" {
		opts.AppName = defaults.AppName
	}
	if opts.Executable == "" {
		opts.Executable = defaults.Executable
	}
	if opts.DataEnv == "" {
		opts.DataEnv = defaults.DataEnv
	}
	if opts.Sentinel == "" {
		opts.Sentinel = defaults.Sentinel
	}

	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Attributes == nil {
		deps.Attributes = attrib.NewFsBackend(deps.Fs)
	}
	if deps.Env == nil {
		deps.Env = layout.OSEnvironment{}
	}

	attrs := attrib.New(deps.Fs, deps.Attributes)
	return &Engine{
		opts:     opts,
		fs:       deps.Fs,
		env:      deps.Env,
		attrs:    attrs,
		blockers: blocker.New(deps.Fs, attrs),
		config:   ini.NewPatcher(deps.Fs),
		running:  deps.Running,
		cleaner:  deps.Cleaner,
	}
}

func (e *Engine) Options() Options {
	return e.opts
}

// Layout resolves the installation paths from the environment.
func (e *Engine) Layout() (layout.Layout, error) {
	l, err := layout.Resolve(e.env, e.opts.DataEnv, e.opts.AppName)
	if err != nil {
		return layout.Layout{}, environmentError(err)
	}
	return l, nil
}

func (e *Engine) lockEntry() string {
	return ini.Entry{Key: ConfigKey, Value: e.opts.Sentinel}.String()
}
