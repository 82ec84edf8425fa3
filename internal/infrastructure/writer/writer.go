// Package writer stores merged bundles on disk.
package writer

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// FileWriter writes bundle files. Readers never observe a partially
// written bundle.
type FileWriter struct {
	perm os.FileMode
}

// NewFileWriter creates a new FileWriter
func NewFileWriter() *FileWriter {
	return &FileWriter{perm: 0644}
}

// Write stores data at path, creating missing directories.
// A nil data removes the file (used when validation fails).
func (fw *FileWriter) Write(path string, data []byte) error {
	if data == nil {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to remove %s", path)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	if err := writeFileAtomic(path, data, fw.perm); err != nil {
		return errors.Wrap(err, "failed to write file")
	}
	return nil
}
