package processor

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/miorlan/asset-bundler/internal/domain"
	"github.com/miorlan/asset-bundler/internal/infrastructure/locator"
)

// Executor runs the processor chains over resources. Register processors
// with AddPre and AddPost before the first call; after that an Executor is
// read-only and safe for concurrent use.
type Executor struct {
	locator domain.Locator
	pre     []PreDescriptor
	post    []PostDescriptor
	logger  *log.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecutorLogger sets the executor logger.
func WithExecutorLogger(logger *log.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an executor reading resources through l.
func NewExecutor(l domain.Locator, opts ...ExecutorOption) *Executor {
	e := &Executor{
		locator: l,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddPre appends a pre-processor to the chain.
func (e *Executor) AddPre(d PreDescriptor) *Executor {
	e.pre = append(e.pre, d)
	return e
}

// AddPost appends a post-processor to the chain.
func (e *Executor) AddPost(d PostDescriptor) *Executor {
	e.post = append(e.post, d)
	return e
}

// ProcessAndMerge pre-processes every resource in order, concatenates the
// results without a separator and post-processes the merged text.
func (e *Executor) ProcessAndMerge(ctx context.Context, resources []domain.Resource, minimize bool) (string, error) {
	merged, err := e.merge(ctx, resources, minimize)
	if err != nil {
		return "", err
	}
	return e.postProcess(ctx, commonType(resources), merged, minimize)
}

// PreProcessors returns a view of e whose ProcessAndMerge stops after
// merging. Imports re-enter the pipeline through it so post-processors only
// ever see whole groups.
func (e *Executor) PreProcessors() domain.Merger {
	return preExecutor{e}
}

type preExecutor struct {
	e *Executor
}

func (p preExecutor) ProcessAndMerge(ctx context.Context, resources []domain.Resource, minimize bool) (string, error) {
	return p.e.merge(ctx, resources, minimize)
}

func (e *Executor) merge(ctx context.Context, resources []domain.Resource, minimize bool) (string, error) {
	var sb strings.Builder
	for _, res := range resources {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		out, err := e.preProcess(ctx, res, minimize)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func (e *Executor) preProcess(ctx context.Context, res domain.Resource, minimize bool) (string, error) {
	content, err := locator.ReadString(ctx, e.locator, res.URI)
	if err != nil {
		return "", errors.Wrapf(err, "failed to process %s", res.URI)
	}

	for _, d := range e.pre {
		if !d.Applies(res.Type, minimize) {
			continue
		}
		var out strings.Builder
		if err := d.Processor.Process(ctx, res, strings.NewReader(content), &out); err != nil {
			return "", &domain.ErrProcessing{Processor: d.Name, URI: res.URI, Err: err}
		}
		content = out.String()
	}
	return content, nil
}

func (e *Executor) postProcess(ctx context.Context, t domain.ResourceType, content string, minimize bool) (string, error) {
	for _, d := range e.post {
		if !d.Applies(t, minimize) {
			e.logger.Debug("Skipping post-processor", "processor", d.Name, "type", t)
			continue
		}
		var out strings.Builder
		if err := d.Processor.Process(ctx, strings.NewReader(content), &out); err != nil {
			return "", &domain.ErrProcessing{Processor: d.Name, Err: err}
		}
		content = out.String()
	}
	return content, nil
}

// commonType returns the type shared by all resources, or "" when the list
// is empty or mixed.
func commonType(resources []domain.Resource) domain.ResourceType {
	if len(resources) == 0 {
		return ""
	}
	t := resources[0].Type
	if !lo.EveryBy(resources, func(r domain.Resource) bool { return r.Type == t }) {
		return ""
	}
	return t
}
