//go:build windows

package attrib

import "golang.org/x/sys/windows"

// NewNative returns the backend that toggles FILE_ATTRIBUTE_READONLY directly,
// leaving every other attribute of the path untouched.
func NewNative() Backend {
	return windowsBackend{}
}

type windowsBackend struct{}

func (windowsBackend) IsReadOnly(path string) (bool, error) {
	attrs, err := fileAttributes(path)
	if err != nil {
		return false, err
	}
	return attrs&windows.FILE_ATTRIBUTE_READONLY != 0, nil
}

func (windowsBackend) SetReadOnly(path string, readOnly bool) error {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(name)
	if err != nil {
		return err
	}

	if readOnly {
		attrs |= windows.FILE_ATTRIBUTE_READONLY
	} else {
		attrs &^= windows.FILE_ATTRIBUTE_READONLY
	}
	if attrs == 0 {
		attrs = windows.FILE_ATTRIBUTE_NORMAL
	}
	return windows.SetFileAttributes(name, attrs)
}

func fileAttributes(path string) (uint32, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(name)
}
