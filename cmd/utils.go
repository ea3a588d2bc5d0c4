package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/olimci/versionguard/pkg/attrib"
	"github.com/olimci/versionguard/pkg/cache"
	"github.com/olimci/versionguard/pkg/guard"
	"github.com/olimci/versionguard/pkg/layout"
	"github.com/olimci/versionguard/pkg/procwatch"
	"github.com/olimci/versionguard/pkg/scanner"
	storepkg "github.com/olimci/versionguard/pkg/store"
	"github.com/olimci/versionguard/pkg/store/config"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// session wires the engine and its helpers from the stored config.
type session struct {
	store    storepkg.Store
	cfg      config.Config
	fs       afero.Fs
	engine   *guard.Engine
	detector *procwatch.Detector
	cleaner  *cache.Cleaner
	scanner  *scanner.Scanner
}

func openSession() (*session, error) {
	store, err := storepkg.DefaultStore()
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return newSession(store, cfg, afero.NewOsFs(), attrib.NewNative(), layout.OSEnvironment{}), nil
}

func newSession(store storepkg.Store, cfg config.Config, fs afero.Fs, backend attrib.Backend, env layout.Environment) *session {
	detector := procwatch.New(cfg.App.Processes...)
	cleaner := cache.New(fs, attrib.New(fs, backend), cfg.Cache.Dirs)

	engine := guard.New(guard.Options{
		AppName:    cfg.App.Name,
		Executable: cfg.App.Executable,
		DataEnv:    cfg.App.DataEnv,
		Sentinel:   cfg.Protection.Sentinel,
	}, guard.Deps{
		Fs:         fs,
		Attributes: backend,
		Env:        env,
		Running:    detector,
		Cleaner:    cleaner,
	})

	return &session{
		store:    store,
		cfg:      cfg,
		fs:       fs,
		engine:   engine,
		detector: detector,
		cleaner:  cleaner,
		scanner:  scanner.New(fs, cfg.App.Executable),
	}
}

// scanVersions lists versions under Apps and the configured archive
// directories, marking the one ProductInfo.xml points at.
func (s *session) scanVersions() ([]scanner.Installed, error) {
	l, err := s.engine.Layout()
	if err != nil {
		return nil, err
	}

	active := ""
	if ptr, err := s.engine.ActivePointer(); err == nil {
		active = ptr.InstallPath
	}

	roots := append([]string{l.Apps}, s.cfg.Versions.ArchiveDirs...)
	return s.scanner.Scan(roots, active)
}

// resolveVersion turns a version label or a path into a version directory.
// Unknown labels resolve below Apps so the engine reports them as missing.
func (s *session) resolveVersion(arg string) (string, error) {
	if filepath.IsAbs(fileutils.ExpandHome(arg)) || filepath.Base(arg) != arg {
		return fileutils.AbsPath(arg)
	}

	versions, err := s.scanVersions()
	if err != nil {
		return "", err
	}
	if v, ok := scanner.Find(versions, arg); ok {
		return v.Path, nil
	}

	l, err := s.engine.Layout()
	if err != nil {
		return "", err
	}
	return filepath.Join(l.Apps, arg), nil
}

// ensureNotRunning refuses destructive commands while the application runs.
func (s *session) ensureNotRunning(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("force") {
		return nil
	}
	running, err := s.detector.Running(ctx)
	if err != nil {
		return fmt.Errorf("check running processes: %w", err)
	}
	if running {
		return fmt.Errorf("%s is still running, close it or pass --force", s.cfg.App.Name)
	}
	return nil
}

func isVerbose(cmd *cli.Command) bool {
	return rootBool(cmd, "verbose")
}

func isJSON(cmd *cli.Command) bool {
	return rootBool(cmd, "json")
}

func rootBool(cmd *cli.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Bool(name) {
		return true
	}
	root := cmd.Root()
	return root != nil && root.Bool(name)
}

func output(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if root := cmd.Root(); root != nil && root.Writer != nil {
			return root.Writer
		}
	}
	return os.Stdout
}

func printJSON(cmd *cli.Command, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	_, err = fmt.Fprintln(output(cmd), string(data))
	return err
}

// finish prints an engine response record and turns a failed record into the
// command error.
func finish(cmd *cli.Command, record any, logs []string, success bool, message string) error {
	if isJSON(cmd) {
		if err := printJSON(cmd, record); err != nil {
			return err
		}
	} else {
		printLogs(cmd, logs)
	}

	if !success {
		return errors.New(message)
	}
	return nil
}

func printPaths(cmd *cli.Command, label string, paths ...string) {
	if !isVerbose(cmd) || isJSON(cmd) || len(paths) == 0 {
		return
	}
	w := output(cmd)
	fmt.Fprintln(w, dimStyle.Render(label+":"))
	for _, path := range paths {
		fmt.Fprintf(w, "  %s\n", path)
	}
}

func noArgs(cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return fmt.Errorf("%s does not accept arguments", cmd.Name)
	}
	return nil
}
