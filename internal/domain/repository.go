//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=repository.go -destination=../usecase/mock_repository_test.go -package=usecase

package domain

import (
	"context"
	"io"
)

// Locator turns a resource URI into a readable stream
type Locator interface {
	Locate(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Merger locates, processes and merges an ordered list of resources
type Merger interface {
	ProcessAndMerge(ctx context.Context, resources []Resource, minimize bool) (string, error)
}

// ModelLoader loads the group model declared in a file
type ModelLoader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// FileWriter writes merged output
type FileWriter interface {
	Write(path string, data []byte) error
}

// Validator checks merged output for syntax errors
type Validator interface {
	Validate(t ResourceType, content []byte) error
}
