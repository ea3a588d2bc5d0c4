package guard

import (
	"context"
	"fmt"

	"github.com/olimci/versionguard/pkg/oplog"
	"github.com/olimci/versionguard/pkg/utils/fileutils"
)

// stage is one step of a sequence. changed reports whether a successful run
// touched the filesystem.
type stage func(ctx context.Context) (res Result, changed bool)

// runStages runs stages in order, concatenating their logs, and stops at the
// first failure. A failure after a stage that changed the filesystem is
// reported as a partial failure.
func runStages(ctx context.Context, stages []stage) Result {
	var log oplog.Log
	changed := false

	for _, run := range stages {
		res, stageChanged := run(ctx)
		log.Extend(res.Logs)
		if !res.Success {
			failure := res.Err()
			if changed {
				failure = partial(failure)
			}
			return fail(failure, &log)
		}
		changed = changed || stageChanged
	}

	return succeed(&log)
}

// RunFullProtection checks that the application is not running, deletes the
// requested versions, optionally cleans caches and optionally applies
// protection.
func (e *Engine) RunFullProtection(ctx context.Context, params ProtectionParams) Result {
	return runStages(ctx, []stage{
		e.precheckStage,
		func(context.Context) (Result, bool) {
			return e.DeleteVersions(params.VersionsToDelete), len(params.VersionsToDelete) > 0
		},
		func(context.Context) (Result, bool) {
			return e.cacheStage(params.CleanCache)
		},
		func(context.Context) (Result, bool) {
			return e.protectStage(ApplyOptions{
				LockConfig:     params.LockConfig,
				CreateBlockers: params.CreateBlockers,
			})
		},
	})
}

func (e *Engine) precheckStage(ctx context.Context) (Result, bool) {
	var log oplog.Log
	log.Add("Checking system state...")

	running, err := e.isRunning(ctx)
	if err != nil {
		return fail(&Error{
			Kind: KindPreconditionFailed,
			Msg:  fmt.Sprintf("Could not check whether %s is running: %v", e.opts.AppName, err),
			Err:  err,
		}, &log), false
	}
	if running {
		return fail(&Error{
			Kind: KindPreconditionFailed,
			Msg:  fmt.Sprintf("%s is still running. Please close it.", e.opts.AppName),
		}, &log), false
	}

	log.OK("No running instances")
	return succeed(&log), false
}

func (e *Engine) cacheStage(enabled bool) (Result, bool) {
	var log oplog.Log
	if !enabled {
		log.Add("Skipping cache cleaning (disabled)")
		return succeed(&log), false
	}

	log.Add("Cleaning cache directories...")
	if e.cleaner == nil {
		log.Warn("No cache cleaner configured")
		return succeed(&log), false
	}
	l, err := e.Layout()
	if err != nil {
		log.Warn("Skipping cache cleaning: %v", err)
		return succeed(&log), false
	}
	log.Extend(e.cleaner.Clean(l))
	return succeed(&log), true
}

func (e *Engine) protectStage(opts ApplyOptions) (Result, bool) {
	if !opts.LockConfig && !opts.CreateBlockers {
		var log oplog.Log
		log.Add("Skipping protection (all options disabled)")
		return succeed(&log), false
	}
	return e.Apply(opts), true
}

func (e *Engine) isRunning(ctx context.Context) (bool, error) {
	if e.running == nil {
		return false, nil
	}
	return e.running.Running(ctx)
}

// Precheck reports whether the Apps directory exists and whether the
// application is running.
func (e *Engine) Precheck(ctx context.Context) Precheck {
	var out Precheck

	if l, err := e.Layout(); err == nil {
		out.AppsPath = l.Apps
		out.AppFound, _ = fileutils.Exists(e.fs, l.Apps)
	}

	running, err := e.isRunning(ctx)
	if err != nil {
		out.Error = err.Error()
	}
	out.AppRunning = running

	return out
}
