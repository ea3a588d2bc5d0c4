package guard

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// The launcher expects this exact declaration.
const pointerHeader = `<?xml version="1.0" charset="utf-8"?>` + "\n"

// Pointer is the content of ProductInfo.xml when it points at a version.
type Pointer struct {
	XMLName     xml.Name `xml:"ProductInfo" json:"-"`
	InstallPath string   `xml:"InstallPath" json:"install_path"`
	Version     string   `xml:"Version" json:"version"`
}

var errBlockerPointer = errors.New("pointer file is a blocker")

func renderPointer(p Pointer) ([]byte, error) {
	body, err := xml.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(pointerHeader), body...), nil
}

func parsePointer(data []byte) (Pointer, error) {
	var p Pointer
	if err := xml.Unmarshal(data, &p); err != nil {
		return Pointer{}, err
	}
	return p, nil
}

// ActivePointer reads the version ProductInfo.xml currently points at.
func (e *Engine) ActivePointer() (Pointer, error) {
	l, err := e.Layout()
	if err != nil {
		return Pointer{}, err
	}

	path := l.PointerPath()
	if e.blockers.Present(path) {
		return Pointer{}, errBlockerPointer
	}
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return Pointer{}, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := parsePointer(data)
	if err != nil {
		return Pointer{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}
