package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/olimci/versionguard/pkg/store/config"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
	"github.com/olimci/versionguard/pkg/version"
	"github.com/spf13/afero"
)

const (
	dirName     = "versionguard"
	configFile  = "config.toml"
	envStoreDir = "VERSIONGUARD_DIR"
)

var (
	ErrAlreadyInstalled = errors.New("versionguard is already installed")
	ErrNotInstalled     = errors.New("versionguard is not installed")
)

// Store points to local store files.
type Store struct {
	Root string
	Fs   afero.Fs
}

func DefaultStore() (Store, error) {
	if customRoot := strings.TrimSpace(os.Getenv(envStoreDir)); customRoot != "" {
		absRoot, err := fileutils.AbsPath(customRoot)
		if err != nil {
			return Store{}, fmt.Errorf("resolve %s: %w", envStoreDir, err)
		}
		return Store{Root: absRoot}, nil
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return Store{}, fmt.Errorf("resolve user config directory: %w", err)
	}

	return Store{Root: filepath.Join(cfgDir, dirName)}, nil
}

func (s Store) fs() afero.Fs {
	if s.Fs == nil {
		return afero.NewOsFs()
	}
	return s.Fs
}

func (s Store) ConfigPath() string {
	return filepath.Join(s.Root, configFile)
}

func (s Store) IsInstalled() bool {
	_, err := s.fs().Stat(s.ConfigPath())
	return err == nil
}

func DefaultConfig() config.Config {
	return config.Config{
		VersionGuard: config.VersionGuard{
			Version: version.Version,
		},
		App: config.App{
			Name:       "CapCut",
			Executable: "CapCut.exe",
			Processes:  []string{"CapCut", "CapCut.exe"},
			DataEnv:    "LOCALAPPDATA",
		},
		Protection: config.Protection{
			Sentinel:       "1.0.0.0",
			LockConfig:     true,
			CreateBlockers: true,
		},
		Cache: config.Cache{
			Dirs: []string{"User Data/Cache", "User Data/Temp", "User Data/Log"},
		},
	}
}

// Install initializes store and fails if store already exists.
func (s Store) Install() error {
	if s.IsInstalled() {
		return ErrAlreadyInstalled
	}

	_, err := s.installMissing()
	return err
}

// EnsureInstalled initializes store if missing.
func (s Store) EnsureInstalled() error {
	_, err := s.installMissing()
	return err
}

// installMissing creates the store directory and a default config.
func (s Store) installMissing() (bool, error) {
	if err := s.fs().MkdirAll(s.Root, 0o755); err != nil {
		return false, fmt.Errorf("create store directory: %w", err)
	}

	return ensureDefaultConfig(s.fs(), s.ConfigPath())
}

// LoadConfig reads config.toml. A missing file yields the defaults, and keys
// absent from the file keep their default values.
func (s Store) LoadConfig() (config.Config, error) {
	cfg := DefaultConfig()
	data, err := afero.ReadFile(s.fs(), s.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return config.Config{}, fmt.Errorf("read %s: %w", s.ConfigPath(), err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return config.Config{}, fmt.Errorf("decode %s: %w", s.ConfigPath(), err)
	}

	if cfg.VersionGuard.Version == "" {
		cfg.VersionGuard.Version = version.Version
	}
	if err := version.EnsureCompatible(cfg.VersionGuard.Version); err != nil {
		return config.Config{}, fmt.Errorf("unsupported config version %q: %w", cfg.VersionGuard.Version, err)
	}

	return normalize(cfg), nil
}

func (s Store) SaveConfig(cfg config.Config) error {
	if cfg.VersionGuard.Version == "" {
		cfg.VersionGuard.Version = version.Version
	}
	return writeTOML(s.fs(), s.ConfigPath(), cfg)
}

// normalize expands home-relative archive directories and restores defaults
// for values that were set to empty strings.
func normalize(cfg config.Config) config.Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(cfg.App.Name) == "" {
		cfg.App.Name = defaults.App.Name
	}
	if strings.TrimSpace(cfg.App.Executable) == "" {
		cfg.App.Executable = defaults.App.Executable
	}
	if strings.TrimSpace(cfg.App.DataEnv) == "" {
		cfg.App.DataEnv = defaults.App.DataEnv
	}
	if strings.TrimSpace(cfg.Protection.Sentinel) == "" {
		cfg.Protection.Sentinel = defaults.Protection.Sentinel
	}

	var dirs []string
	for _, dir := range cfg.Versions.ArchiveDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		dirs = append(dirs, filepath.Clean(fileutils.ExpandHome(dir)))
	}
	cfg.Versions.ArchiveDirs = dirs

	return cfg
}

// Uninstall removes the store directory.
func (s Store) Uninstall() error {
	if !s.IsInstalled() {
		return ErrNotInstalled
	}
	if err := fileutils.RemovePath(s.fs(), s.Root); err != nil {
		return fmt.Errorf("remove %s: %w", s.Root, err)
	}
	return nil
}
