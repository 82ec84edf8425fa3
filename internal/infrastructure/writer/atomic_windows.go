//go:build windows

package writer

import "os"

// renameio does not support Windows, where a rename over an open file fails.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
