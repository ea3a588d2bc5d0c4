package guard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/olimci/versionguard/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullParams(versions ...string) ProtectionParams {
	return ProtectionParams{
		VersionsToDelete: versions,
		CleanCache:       true,
		LockConfig:       true,
		CreateBlockers:   true,
	}
}

func TestRunFullProtectionSuccess(t *testing.T) {
	t.Parallel()

	running := &fakeRunning{}
	cleaner := &fakeCleaner{logs: []string{"Cleaning: Cache", "[OK] Freed 2.0 kB"}}
	f := newFixture(t, Deps{Running: running, Cleaner: cleaner})
	old := f.versionDir("3.0.0.1")
	kept := f.versionDir("3.1.0.100")

	res := f.engine.RunFullProtection(context.Background(), fullParams(old))

	require.True(t, res.Success, res.Error)
	assert.Equal(t, []string{
		"Checking system state...",
		"[OK] No running instances",
		"Deleting: 3.0.0.1",
		"[OK] Deleted 1 version(s)",
		"Cleaning cache directories...",
		"Cleaning: Cache",
		"[OK] Freed 2.0 kB",
		"Modifying config...",
		"[OK] Configuration locked",
		"Creating blockers...",
		"[OK] Update blockers created",
	}, res.Logs)

	assert.Equal(t, 1, running.calls)
	assert.Equal(t, 1, cleaner.calls)
	assert.False(t, f.exists(old))
	assert.True(t, f.exists(kept))
	assert.Equal(t, Status{IsProtected: true, ConfigLocked: true, BlockersExist: true}, f.engine.Status())
}

func TestRunFullProtectionWithEverythingDisabled(t *testing.T) {
	t.Parallel()

	f := newFixture(t, Deps{})
	res := f.engine.RunFullProtection(context.Background(), ProtectionParams{})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, []string{
		"Checking system state...",
		"[OK] No running instances",
		"[OK] No versions to delete",
		"Skipping cache cleaning (disabled)",
		"Skipping protection (all options disabled)",
	}, res.Logs)
	assert.Equal(t, Status{}, f.engine.Status())
}

func TestRunFullProtectionRunningApplication(t *testing.T) {
	t.Parallel()

	running := &fakeRunning{running: true}
	cleaner := &fakeCleaner{}
	f := newFixture(t, Deps{Running: running, Cleaner: cleaner})
	old := f.versionDir("3.0.0.1")
	f.fs.Ops = nil

	res := f.engine.RunFullProtection(context.Background(), fullParams(old))

	assert.False(t, res.Success)
	assert.Equal(t, []string{"Checking system state..."}, res.Logs)
	assert.Equal(t, "CapCut is still running. Please close it.", res.Error)
	assert.True(t, errors.Is(res.Err(), ErrPreconditionFailed))

	assert.True(t, f.exists(old))
	assert.Zero(t, cleaner.calls)
	assert.Empty(t, f.fs.Ops)
}

func TestRunFullProtectionCheckerError(t *testing.T) {
	t.Parallel()

	running := &fakeRunning{err: errors.New("access denied")}
	f := newFixture(t, Deps{Running: running})

	res := f.engine.RunFullProtection(context.Background(), fullParams())

	assert.False(t, res.Success)
	assert.Equal(t, []string{"Checking system state..."}, res.Logs)
	assert.Equal(t, "Could not check whether CapCut is running: access denied", res.Error)
	assert.Equal(t, KindPreconditionFailed, KindOf(res.Err()))
	assert.False(t, f.exists(testLayout.ConfigPath()))
}

func TestRunFullProtectionDeleteFailureShortCircuits(t *testing.T) {
	t.Parallel()

	cleaner := &fakeCleaner{}
	f := newFixture(t, Deps{Running: &fakeRunning{}, Cleaner: cleaner})
	missing := filepath.Join(testLayout.Apps, "2.9.0.0")

	res := f.engine.RunFullProtection(context.Background(), fullParams(missing))

	assert.False(t, res.Success)
	assert.Equal(t, []string{
		"Checking system state...",
		"[OK] No running instances",
		"Deleting: 2.9.0.0",
	}, res.Logs)
	assert.Equal(t, KindIO, KindOf(res.Err()))
	assert.Contains(t, res.Error, "Failed to delete 2.9.0.0")

	assert.Zero(t, cleaner.calls)
	assert.False(t, f.touched(testLayout.ConfigPath()))
	assert.False(t, f.touched(testLayout.PointerPath()))
}

func TestRunFullProtectionSecondDeleteFailureIsPartial(t *testing.T) {
	t.Parallel()

	f := newFixture(t, Deps{})
	first := f.versionDir("3.0.0.1")
	locked := f.versionDir("3.0.0.2")
	third := f.versionDir("3.0.0.3")
	f.fs.FailRemove(locked, os.ErrPermission)

	res := f.engine.RunFullProtection(context.Background(), fullParams(first, locked, third))

	assert.False(t, res.Success)
	assert.True(t, errors.Is(res.Err(), ErrPartialFailure))
	assert.False(t, f.exists(first))
	assert.True(t, f.exists(locked))
	assert.True(t, f.exists(third))
	assert.False(t, f.exists(testLayout.ConfigPath()))
}

func TestRunFullProtectionApplyFailureAfterDeleteIsPartial(t *testing.T) {
	t.Parallel()

	f := newFixture(t, Deps{})
	old := f.versionDir("3.0.0.1")
	f.fs.FailWrite(testLayout.ConfigPath(), os.ErrPermission)

	params := fullParams(old)
	params.CleanCache = false
	res := f.engine.RunFullProtection(context.Background(), params)

	assert.False(t, res.Success)
	assert.Equal(t, KindPartialFailure, KindOf(res.Err()))
	assert.True(t, errors.Is(res.Err(), ErrIO))
	assert.Equal(t, "Modifying config...", res.Logs[len(res.Logs)-1])
	assert.False(t, f.exists(old), "completed deletions are not undone")
}

func TestRunFullProtectionApplyFailureAlone(t *testing.T) {
	t.Parallel()

	f := newFixture(t, Deps{})
	f.fs.FailWrite(testLayout.ConfigPath(), os.ErrPermission)

	params := fullParams()
	params.CleanCache = false
	res := f.engine.RunFullProtection(context.Background(), params)

	assert.False(t, res.Success)
	assert.Equal(t, KindIO, KindOf(res.Err()))
}

func TestRunFullProtectionCacheCannotAbort(t *testing.T) {
	t.Parallel()

	cleaner := &fakeCleaner{logs: []string{"[!] Could not clean Cache: in use"}}
	f := newFixture(t, Deps{Cleaner: cleaner})

	res := f.engine.RunFullProtection(context.Background(), fullParams())

	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Logs, "[!] Could not clean Cache: in use")
	assert.Contains(t, res.Logs, "[OK] Update blockers created")
}

func TestRunFullProtectionWithoutCleaner(t *testing.T) {
	t.Parallel()

	f := newFixture(t, Deps{})
	params := ProtectionParams{CleanCache: true}

	res := f.engine.RunFullProtection(context.Background(), params)

	require.True(t, res.Success)
	assert.Contains(t, res.Logs, "[!] No cache cleaner configured")
}

func TestPrecheck(t *testing.T) {
	t.Parallel()

	t.Run("installed and idle", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, Deps{Running: &fakeRunning{}})
		got := f.engine.Precheck(context.Background())

		assert.Equal(t, Precheck{AppFound: true, AppsPath: testLayout.Apps}, got)
	})

	t.Run("running", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, Deps{Running: &fakeRunning{running: true}})
		got := f.engine.Precheck(context.Background())

		assert.True(t, got.AppRunning)
		assert.True(t, got.AppFound)
	})

	t.Run("checker error", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, Deps{Running: &fakeRunning{err: errors.New("boom")}})
		got := f.engine.Precheck(context.Background())

		assert.False(t, got.AppRunning)
		assert.Equal(t, "boom", got.Error)
	})

	t.Run("not installed", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, Deps{Env: layout.MapEnvironment{"LOCALAPPDATA": "/elsewhere"}})
		got := f.engine.Precheck(context.Background())

		assert.False(t, got.AppFound)
		assert.Equal(t, "/elsewhere/CapCut/Apps", filepath.ToSlash(got.AppsPath))
	})

	t.Run("unresolved", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, Deps{Env: layout.MapEnvironment{}})
		got := f.engine.Precheck(context.Background())

		assert.Equal(t, Precheck{}, got)
	})
}
