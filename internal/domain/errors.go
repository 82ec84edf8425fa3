package domain

import (
	"fmt"
	"strings"
)

// ErrResourceNotFound - no locator strategy could fetch the URI
type ErrResourceNotFound struct {
	URI string
}

func (e *ErrResourceNotFound) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URI)
}

// ErrProcessing wraps a failure of a single processor step.
// URI is empty when the failing step is a post-processor.
type ErrProcessing struct {
	Processor string
	URI       string
	Err       error
}

func (e *ErrProcessing) Error() string {
	if e.URI == "" {
		return fmt.Sprintf("processor %s failed: %v", e.Processor, e.Err)
	}
	return fmt.Sprintf("processor %s failed on %s: %v", e.Processor, e.URI, e.Err)
}

func (e *ErrProcessing) Unwrap() error {
	return e.Err
}

// ErrMaxDepthExceeded - imports are nested deeper than Config.MaxDepth
type ErrMaxDepthExceeded struct {
	URI   string
	Depth int
}

func (e *ErrMaxDepthExceeded) Error() string {
	return fmt.Sprintf("maximum import depth %d exceeded at %s", e.Depth, e.URI)
}

// ErrUnsupportedEncoding - the configured charset is unknown
type ErrUnsupportedEncoding struct {
	Name string
}

func (e *ErrUnsupportedEncoding) Error() string {
	return fmt.Sprintf("unsupported encoding: %s", e.Name)
}

// ErrGroupNotFound - a group name is not declared in the model
type ErrGroupNotFound struct {
	Name string
}

func (e *ErrGroupNotFound) Error() string {
	return fmt.Sprintf("group not found: %s", e.Name)
}

// ErrGroupCycle - group references form a cycle
type ErrGroupCycle struct {
	Path []string
}

func (e *ErrGroupCycle) Error() string {
	return fmt.Sprintf("circular group reference detected: %s", strings.Join(e.Path, " -> "))
}

// ErrUnknownProcessor - a configured processor name is not registered
type ErrUnknownProcessor struct {
	Name string
}

func (e *ErrUnknownProcessor) Error() string {
	return fmt.Sprintf("unknown processor: %s", e.Name)
}
