package domain

import (
	"path/filepath"
	"strings"
)

// FileFormat is the serialization format of a group model file
type FileFormat string

const (
	FormatYAML FileFormat = "yaml"
	FormatJSON FileFormat = "json"
)

// DetectFormat picks the model format from the file extension.
// Unknown extensions are treated as YAML, which also accepts JSON documents.
func DetectFormat(filePath string) FileFormat {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}
