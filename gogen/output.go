package gogen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OutputPath returns where the generated file of pkg lives.
func OutputPath(pkg *PackageModel, name string) string {
	return filepath.Join(pkg.Dir, name)
}

// WriteOutput writes generated source unless the file already holds it.
// It reports whether the file changed.
func WriteOutput(path string, src []byte) (bool, error) {
	if ok, err := UpToDate(path, src); err != nil {
		return false, err
	} else if ok {
		return false, nil
	}
	if err := os.WriteFile(path, src, 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// UpToDate reports whether the file at path already holds src. A missing
// file is out of date rather than an error.
func UpToDate(path string, src []byte) (bool, error) {
	have, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return bytes.Equal(have, src), nil
}
