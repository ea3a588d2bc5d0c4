// Package layout resolves where the protected application keeps its files.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	AppsDirName     = "Apps"
	ConfigFileName  = "configure.ini"
	PointerFileName = "ProductInfo.xml"
	UpdaterFileName = "update.exe"
)

// Environment looks up process environment variables.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// OSEnvironment reads the real process environment.
type OSEnvironment struct{}

func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment serves variables from a fixed map.
type MapEnvironment map[string]string

func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// UnresolvedError is returned when the data root variable is unset or empty.
type UnresolvedError struct {
	Var string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("Failed to get %s", e.Var)
}

// Layout holds the resolved installation paths.
//
//	<Root>/Apps/configure.ini
//	<Root>/Apps/ProductInfo.xml
//	<Root>/User Data/Download/update.exe
type Layout struct {
	Root string
	Apps string
}

func New(root string) Layout {
	return Layout{
		Root: root,
		Apps: filepath.Join(root, AppsDirName),
	}
}

// Resolve derives the layout from the data root variable envVar and appName.
func Resolve(env Environment, envVar, appName string) (Layout, error) {
	value, ok := env.LookupEnv(envVar)
	if !ok || strings.TrimSpace(value) == "" {
		return Layout{}, &UnresolvedError{Var: envVar}
	}
	return New(filepath.Join(value, appName)), nil
}

func (l Layout) ConfigPath() string {
	return filepath.Join(l.Apps, ConfigFileName)
}

func (l Layout) PointerPath() string {
	return filepath.Join(l.Apps, PointerFileName)
}

func (l Layout) DownloadDir() string {
	return filepath.Join(l.Root, "User Data", "Download")
}

func (l Layout) UpdaterPath() string {
	return filepath.Join(l.DownloadDir(), UpdaterFileName)
}

// BlockerPaths lists every path that holds a blocker when protection is on.
func (l Layout) BlockerPaths() []string {
	return []string{l.PointerPath(), l.UpdaterPath()}
}
