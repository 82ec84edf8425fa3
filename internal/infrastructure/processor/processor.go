// Package processor implements the transform pipeline: the processor
// contract, the executor that runs pre-processors per resource, merges them
// and runs post-processors over the result, and the CSS import resolver.
package processor

import (
	"context"
	"io"

	"github.com/samber/lo"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// PreProcessor transforms the content of a single resource before merging.
// It may read other resources, as the import resolver does.
type PreProcessor interface {
	Process(ctx context.Context, res domain.Resource, r io.Reader, w io.Writer) error
}

// PostProcessor transforms merged group content. It has no resource identity.
type PostProcessor interface {
	Process(ctx context.Context, r io.Reader, w io.Writer) error
}

// PreFunc adapts a function to PreProcessor.
type PreFunc func(ctx context.Context, res domain.Resource, r io.Reader, w io.Writer) error

func (f PreFunc) Process(ctx context.Context, res domain.Resource, r io.Reader, w io.Writer) error {
	return f(ctx, res, r, w)
}

// PostFunc adapts a function to PostProcessor.
type PostFunc func(ctx context.Context, r io.Reader, w io.Writer) error

func (f PostFunc) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	return f(ctx, r, w)
}

// PerResource uses a resource agnostic transform as a pre-processor.
func PerResource(p PostProcessor) PreProcessor {
	return PreFunc(func(ctx context.Context, _ domain.Resource, r io.Reader, w io.Writer) error {
		return p.Process(ctx, r, w)
	})
}

// Capabilities restrict when a processor runs.
type Capabilities struct {
	// Types limits the processor to these resource types; empty means any.
	Types []domain.ResourceType
	// Minifier processors only run when minimizing.
	Minifier bool
}

// Applies reports whether the processor runs for content of type t.
func (c Capabilities) Applies(t domain.ResourceType, minimize bool) bool {
	if c.Minifier && !minimize {
		return false
	}
	return len(c.Types) == 0 || lo.Contains(c.Types, t)
}

// PreDescriptor registers a pre-processor with the executor.
type PreDescriptor struct {
	Name      string
	Processor PreProcessor
	Capabilities
}

// PostDescriptor registers a post-processor with the executor.
type PostDescriptor struct {
	Name      string
	Processor PostProcessor
	Capabilities
}
