// Package oplog accumulates the human-readable lines reported by a
// multi-step operation.
package oplog

import (
	"fmt"
	"strings"
)

const (
	PrefixOK   = "[OK] "
	PrefixWarn = "[!] "
)

// Log is an append-only sequence of lines. The zero value is ready to use.
type Log struct {
	lines []string
}

func (l *Log) Add(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *Log) OK(format string, args ...any) {
	l.lines = append(l.lines, PrefixOK+fmt.Sprintf(format, args...))
}

func (l *Log) Warn(format string, args ...any) {
	l.lines = append(l.lines, PrefixWarn+fmt.Sprintf(format, args...))
}

// Extend appends lines produced by another step, in order.
func (l *Log) Extend(lines []string) {
	l.lines = append(l.lines, lines...)
}

func (l *Log) Len() int {
	return len(l.lines)
}

// Lines returns a copy of the accumulated lines. It never returns nil.
func (l *Log) Lines() []string {
	return append([]string{}, l.lines...)
}

// Level classifies a line by its prefix.
type Level int

const (
	LevelInfo Level = iota
	LevelOK
	LevelWarn
)

func LevelOf(line string) Level {
	switch {
	case strings.HasPrefix(line, PrefixOK):
		return LevelOK
	case strings.HasPrefix(line, PrefixWarn):
		return LevelWarn
	default:
		return LevelInfo
	}
}
