// Package fsys provides the filesystem backends behind the file commands.
package fsys

import (
	"io/fs"
	"os"
)

// Local performs file I/O on the host filesystem through the os package.
// Paths are handed to the OS as given.
type Local struct{}

// NewLocal creates a local filesystem backend.
func NewLocal() *Local {
	return &Local{}
}

func (l *Local) Name() string { return "local" }

func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (l *Local) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (l *Local) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
