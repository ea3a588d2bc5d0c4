// Package procwatch detects running instances of the protected application.
package procwatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// ListFunc returns the executable names of every running process.
type ListFunc func(ctx context.Context) ([]string, error)

// Detector matches running processes against a set of names.
type Detector struct {
	names []string
	list  ListFunc
}

// New returns a Detector for names, compared case-insensitively and with or
// without an ".exe" suffix.
func New(names ...string) *Detector {
	return &Detector{names: names, list: ProcessNames}
}

// WithLister replaces the process source.
func (d *Detector) WithLister(list ListFunc) *Detector {
	d.list = list
	return d
}

func (d *Detector) Names() []string {
	return append([]string(nil), d.names...)
}

// Running reports whether any process matches.
func (d *Detector) Running(ctx context.Context) (bool, error) {
	found, err := d.Find(ctx)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// Find returns the names of matching running processes.
func (d *Detector) Find(ctx context.Context) ([]string, error) {
	if len(d.names) == 0 {
		return nil, nil
	}

	running, err := d.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var found []string
	for _, name := range running {
		if d.Matches(name) {
			found = append(found, name)
		}
	}
	return found, nil
}

// Matches reports whether a process called name is one of the watched names.
func (d *Detector) Matches(name string) bool {
	got := normalize(name)
	if got == "" {
		return false
	}
	for _, want := range d.names {
		if normalize(want) == got {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	base := strings.ToLower(strings.TrimSpace(filepath.Base(name)))
	return strings.TrimSuffix(base, ".exe")
}

// ProcessNames lists running processes through gopsutil. Processes that
// exit or deny access while being listed are skipped.
func ProcessNames(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
