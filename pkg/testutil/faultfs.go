// Package testutil holds filesystem fakes shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// FaultFs wraps an afero.Fs, records every call it receives and fails
// selected operations on selected paths.
type FaultFs struct {
	afero.Fs

	RemoveErrs map[string]error
	WriteErrs  map[string]error
	ChmodErrs  map[string]error

	Ops []string
}

func NewFaultFs(base afero.Fs) *FaultFs {
	return &FaultFs{
		Fs:         base,
		RemoveErrs: map[string]error{},
		WriteErrs:  map[string]error{},
		ChmodErrs:  map[string]error{},
	}
}

// FailRemove makes Remove and RemoveAll on path return err.
func (f *FaultFs) FailRemove(path string, err error) {
	f.RemoveErrs[filepath.Clean(path)] = err
}

// FailWrite makes opening path for writing return err.
func (f *FaultFs) FailWrite(path string, err error) {
	f.WriteErrs[filepath.Clean(path)] = err
}

// FailChmod makes Chmod on path return err.
func (f *FaultFs) FailChmod(path string, err error) {
	f.ChmodErrs[filepath.Clean(path)] = err
}

// Called reports whether op was invoked on path.
func (f *FaultFs) Called(op, path string) bool {
	want := op + " " + filepath.Clean(path)
	for _, got := range f.Ops {
		if got == want {
			return true
		}
	}
	return false
}

func (f *FaultFs) record(op, path string) string {
	clean := filepath.Clean(path)
	f.Ops = append(f.Ops, op+" "+clean)
	return clean
}

func (f *FaultFs) Create(name string) (afero.File, error) {
	clean := f.record("create", name)
	if err, ok := f.WriteErrs[clean]; ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Create(name)
}

func (f *FaultFs) Mkdir(name string, perm os.FileMode) error {
	f.record("mkdir", name)
	return f.Fs.Mkdir(name, perm)
}

func (f *FaultFs) MkdirAll(path string, perm os.FileMode) error {
	f.record("mkdirall", path)
	return f.Fs.MkdirAll(path, perm)
}

func (f *FaultFs) Open(name string) (afero.File, error) {
	f.record("open", name)
	return f.Fs.Open(name)
}

func (f *FaultFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	clean := f.record("openfile", name)
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		if err, ok := f.WriteErrs[clean]; ok {
			return nil, &os.PathError{Op: "open", Path: name, Err: err}
		}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FaultFs) Remove(name string) error {
	clean := f.record("remove", name)
	if err, ok := f.RemoveErrs[clean]; ok {
		return &os.PathError{Op: "remove", Path: name, Err: err}
	}
	return f.Fs.Remove(name)
}

func (f *FaultFs) RemoveAll(path string) error {
	clean := f.record("removeall", path)
	if err, ok := f.RemoveErrs[clean]; ok {
		return &os.PathError{Op: "unlinkat", Path: path, Err: err}
	}
	return f.Fs.RemoveAll(path)
}

func (f *FaultFs) Rename(oldname, newname string) error {
	f.record("rename", oldname)
	return f.Fs.Rename(oldname, newname)
}

func (f *FaultFs) Stat(name string) (os.FileInfo, error) {
	f.record("stat", name)
	return f.Fs.Stat(name)
}

func (f *FaultFs) Chmod(name string, mode os.FileMode) error {
	clean := f.record("chmod", name)
	if err, ok := f.ChmodErrs[clean]; ok {
		return &os.PathError{Op: "chmod", Path: name, Err: err}
	}
	return f.Fs.Chmod(name, mode)
}

func (f *FaultFs) Chown(name string, uid, gid int) error {
	f.record("chown", name)
	return f.Fs.Chown(name, uid, gid)
}

func (f *FaultFs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	f.record("chtimes", name)
	return f.Fs.Chtimes(name, atime, mtime)
}
