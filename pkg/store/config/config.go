package config

type Config struct {
	VersionGuard VersionGuard `toml:"versionguard"` // Application metadata
	App          App          `toml:"app"`          // The protected application
	Protection   Protection   `toml:"protection"`   // Defaults for protect and run
	Cache        Cache        `toml:"cache"`
	Versions     Versions     `toml:"versions"`
}

type VersionGuard struct {
	Version string `toml:"version"` // Application version
}

type App struct {
	Name       string   `toml:"name"`       // directory below the data root, e.g. CapCut
	Executable string   `toml:"executable"` // executable inside each version directory
	Processes  []string `toml:"processes"`  // process names that block destructive commands
	DataEnv    string   `toml:"data_env"`   // environment variable holding the data root
}

type Protection struct {
	Sentinel       string `toml:"sentinel"` // version written to configure.ini while locked
	LockConfig     bool   `toml:"lock_config"`
	CreateBlockers bool   `toml:"create_blockers"`
}

type Cache struct {
	Dirs []string `toml:"dirs"` // relative to the installation root
}

type Versions struct {
	ArchiveDirs []string `toml:"archive_dirs"` // extra directories holding version folders
}
