// Package osca generates the configuration files shared by the osca firmware,
// its runtime library and the host emulator from a single memory map.
package osca

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/q0jt/go-osca/osca/memmap"
)

// Artifact is a generated file. Path is slash separated and relative to the
// output directory.
type Artifact struct {
	Path    string
	Content []byte
}

// Render returns every artifact for m, in the order they are written.
func Render(m memmap.Map) []Artifact {
	return []Artifact{
		RenderStartup(m),
		RenderConstants(m),
		RenderEmulator(m),
	}
}

// Generate renders m and writes every artifact under dir, replacing whatever
// was there. It returns the written artifacts.
func Generate(dir string, m memmap.Map) ([]Artifact, error) {
	artifacts := Render(m)
	for _, a := range artifacts {
		if err := WriteArtifact(dir, a); err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

// WriteArtifact replaces the file for a under dir. The content goes to a
// temporary file next to the target which is then renamed over it, so the
// target is never left half written.
func WriteArtifact(dir string, a Artifact) error {
	path := filepath.Join(dir, filepath.FromSlash(a.Path))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("write %s: %w", a.Path, err)
	}
	if err := writeTmpFile(path, a.Content); err != nil {
		return fmt.Errorf("write %s: %w", a.Path, err)
	}
	return nil
}

func writeTmpFile(path string, b []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
