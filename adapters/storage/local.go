// Package storage provides output writers for stamped images.
package storage

import (
	"os"
	"path/filepath"

	apperrors "github.com/avagner/photostamp/errors"
)

// Local writes stamped images to the local filesystem. It implements
// core.OutputWriter. Directories are created lazily by the caller via
// EnsureDir so a run that stamps nothing leaves no directory behind.
type Local struct {
	filePerm os.FileMode
	dirPerm  os.FileMode
}

// NewLocal creates a Local writer. Zero permissions select 0644/0755.
func NewLocal(filePerm os.FileMode) *Local {
	if filePerm == 0 {
		filePerm = 0o644
	}
	return &Local{filePerm: filePerm, dirPerm: 0o755}
}

// EnsureDir creates dir recursively; it is a no-op when dir already exists.
func (l *Local) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, l.dirPerm); err != nil {
		return apperrors.Wrap(apperrors.CategoryStorage, "local.mkdir", err)
	}
	return nil
}

// Write stores data under dir using name, overwriting any pre-existing file
// of the same name. No collision-avoidance renaming is attempted.
func (l *Local) Write(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, l.filePerm); err != nil {
		return "", apperrors.Wrap(apperrors.CategoryStorage, "local.write", err)
	}
	return path, nil
}
