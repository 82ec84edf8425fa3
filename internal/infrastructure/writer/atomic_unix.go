//go:build !windows

package writer

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes through a temp file renamed over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
