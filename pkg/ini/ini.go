// Package ini edits line-oriented key=value configuration files without
// disturbing lines it does not own.
package ini

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

const (
	lineSep    = "\n"
	sectionSep = "\r\n"
)

// Entry is a single key=value pair.
type Entry struct {
	Key   string
	Value string
}

func (e Entry) String() string {
	return e.Key + "=" + e.Value
}

// Patcher rewrites configuration files on fs.
type Patcher struct {
	fs afero.Fs
}

func NewPatcher(fs afero.Fs) *Patcher {
	return &Patcher{fs: fs}
}

// UpsertKey replaces every line whose trimmed form starts with key by
// key=value, or appends key=value when no such line exists. A missing file is
// treated as empty. Lines are joined with "\n".
func (p *Patcher) UpsertKey(path, key, value string) error {
	content, _, err := p.read(path)
	if err != nil {
		return err
	}

	entry := Entry{Key: key, Value: value}.String()
	lines := splitLines(content)
	out := make([]string, 0, len(lines)+1)
	found := false

	for _, line := range lines {
		if matchesKey(line, key) {
			out = append(out, entry)
			found = true
			continue
		}
		out = append(out, line)
	}
	if !found {
		out = append(out, entry)
	}

	return p.write(path, strings.Join(out, lineSep))
}

// RemoveKey drops every line whose trimmed form starts with key. A missing file
// is left alone and reported with existed=false.
func (p *Patcher) RemoveKey(path, key string) (existed bool, err error) {
	content, exists, err := p.read(path)
	if err != nil {
		return true, err
	}
	if !exists {
		return false, nil
	}

	lines := splitLines(content)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if matchesKey(line, key) {
			continue
		}
		kept = append(kept, line)
	}

	return true, p.write(path, strings.Join(kept, lineSep))
}

// Contains reports whether the file exists and its text contains substr. It is
// a plain substring test, not a key lookup.
func (p *Patcher) Contains(path, substr string) bool {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), substr)
}

// Value returns the value of the first line starting with key=, if any.
func (p *Patcher) Value(path, key string) (string, bool) {
	content, exists, err := p.read(path)
	if err != nil || !exists {
		return "", false
	}
	prefix := key + "="
	for _, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), true
		}
	}
	return "", false
}

// WriteSection replaces the whole file with a single [section] holding
// entries, using "\r\n" terminators.
func (p *Patcher) WriteSection(path, section string, entries []Entry) error {
	var b strings.Builder
	b.WriteString("[" + section + "]" + sectionSep)
	for _, e := range entries {
		b.WriteString(e.String() + sectionSep)
	}
	return p.write(path, b.String())
}

func (p *Patcher) read(path string) (string, bool, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), true, nil
}

func (p *Patcher) write(path, content string) error {
	if err := afero.WriteFile(p.fs, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func matchesKey(line, key string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), key)
}

// splitLines splits on "\n", dropping a trailing "\r" from each line and the
// empty remainder after a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	parts := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(part, "\r")
	}
	return parts
}
