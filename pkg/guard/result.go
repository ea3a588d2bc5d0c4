package guard

import "github.com/olimci/versionguard/pkg/oplog"

// Result is the response record of delete, apply, remove and the full
// protection sequence. Logs holds every line reported up to the point the
// operation stopped, also on failure.
type Result struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Logs    []string `json:"logs"`

	err error
}

// Err returns the structured failure, nil on success.
func (r Result) Err() error {
	return r.err
}

func succeed(log *oplog.Log) Result {
	return Result{Success: true, Logs: log.Lines()}
}

func fail(err error, log *oplog.Log) Result {
	return Result{Success: false, Error: err.Error(), Logs: log.Lines(), err: err}
}

// SwitchResult is the response record of a version switch.
type SwitchResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Logs    []string `json:"logs"`

	err error
}

func (r SwitchResult) Err() error {
	return r.err
}

// Status is derived from disk on every query and never stored.
type Status struct {
	IsProtected   bool `json:"is_protected"`
	ConfigLocked  bool `json:"config_locked"`
	BlockersExist bool `json:"blockers_exist"`
}

type ApplyOptions struct {
	LockConfig     bool `json:"lock_config"`
	CreateBlockers bool `json:"create_blockers"`
}

// ProtectionParams configures RunFullProtection.
type ProtectionParams struct {
	VersionsToDelete []string `json:"versions_to_delete"`
	CleanCache       bool     `json:"clean_cache"`
	LockConfig       bool     `json:"lock_config"`
	CreateBlockers   bool     `json:"create_blockers"`
}

// Precheck summarises whether the application is installed and running.
type Precheck struct {
	AppFound   bool   `json:"app_found"`
	AppRunning bool   `json:"app_running"`
	AppsPath   string `json:"apps_path,omitempty"`
	Error      string `json:"error,omitempty"`
}
