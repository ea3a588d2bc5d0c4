package version

import (
	"fmt"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

const Version = "0.1.0"

// Parse parses a dotted version with an optional "v" prefix. Any number of
// numeric segments is accepted, so installation labels such as "3.1.0.100"
// parse as well as "1.2.3".
func Parse(raw string) (*goversion.Version, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, fmt.Errorf("version is empty")
	}

	v, err := goversion.NewVersion(value)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("invalid version %q (pre-release and build metadata are not supported)", raw)
	}
	return v, nil
}

// IsLabel reports whether name looks like an installed version directory.
func IsLabel(name string) bool {
	if strings.HasPrefix(name, "v") || !strings.Contains(name, ".") {
		return false
	}
	_, err := Parse(name)
	return err == nil
}

// Compare orders two version labels. Labels that do not parse sort before
// every valid version and among themselves by name.
func Compare(a, b string) int {
	va, errA := Parse(a)
	vb, errB := Parse(b)

	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}

	if c := va.Compare(vb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// SortNewestFirst sorts labels in place, newest version first.
func SortNewestFirst(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return Compare(labels[i], labels[j]) > 0
	})
}

// EnsureCompatible validates whether a target version is supported by the current app version.
// Empty versions are treated as compatible for backward compatibility with older configs.
func EnsureCompatible(target string) error {
	value := strings.TrimSpace(target)
	if value == "" {
		return nil
	}

	if strings.Count(strings.TrimPrefix(value, "v"), ".") != 2 {
		return fmt.Errorf("invalid semantic version %q (expected MAJOR.MINOR.PATCH)", target)
	}

	current, err := Parse(Version)
	if err != nil {
		return fmt.Errorf("parse current version %q: %w", Version, err)
	}
	required, err := Parse(value)
	if err != nil {
		return err
	}

	currentMajor, requiredMajor := current.Segments()[0], required.Segments()[0]
	if requiredMajor != currentMajor {
		return fmt.Errorf("unsupported major version %d (current major is %d)", requiredMajor, currentMajor)
	}
	if current.LessThan(required) {
		return fmt.Errorf("requires versionguard >= %s (current %s)", required.String(), current.String())
	}

	return nil
}
