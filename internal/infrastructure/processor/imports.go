package processor

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/miorlan/asset-bundler/internal/domain"
	"github.com/miorlan/asset-bundler/internal/infrastructure/locator"
)

// ImportResolver is a CSS pre-processor that replaces @import directives
// with the fully processed content of the imported stylesheets.
//
// Imports are scanned in the canonical source returned by the locator and
// expanded through the merger with minimization on. The expansion precedes
// the importing stylesheet's own content, from which the directives are
// stripped. The resolver keeps no state between calls.
type ImportResolver struct {
	locator domain.Locator
	merger  domain.Merger
	logger  *log.Logger
}

// ImportOption configures an ImportResolver.
type ImportOption func(*ImportResolver)

// WithImportLogger sets the logger receiving cycle and duplicate warnings.
func WithImportLogger(logger *log.Logger) ImportOption {
	return func(p *ImportResolver) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewImportResolver creates a resolver reading sources through l and
// expanding imports through m, usually Executor.PreProcessors().
func NewImportResolver(l domain.Locator, m domain.Merger, opts ...ImportOption) *ImportResolver {
	p := &ImportResolver{
		locator: l,
		merger:  m,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// visitScope holds the resources on the import path of one top-level call.
type visitScope struct {
	path map[domain.Resource]struct{}
}

type scopeKey struct{}

// enterScope returns the scope of the running call, creating one when ctx
// belongs to a new top-level call.
func enterScope(ctx context.Context) (context.Context, *visitScope) {
	if s, ok := ctx.Value(scopeKey{}).(*visitScope); ok {
		return ctx, s
	}
	s := &visitScope{path: make(map[domain.Resource]struct{})}
	return context.WithValue(ctx, scopeKey{}, s), s
}

func (p *ImportResolver) Process(ctx context.Context, res domain.Resource, r io.Reader, w io.Writer) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read content")
	}

	ctx, scope := enterScope(ctx)
	result, err := p.resolve(ctx, scope, res, string(content))
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, result)
	return errors.Wrap(err, "failed to write content")
}

func (p *ImportResolver) resolve(ctx context.Context, scope *visitScope, res domain.Resource, content string) (string, error) {
	if _, ok := scope.path[res]; ok {
		p.logger.Warn("Recursive import detected", "resource", res.URI)
		return "", nil
	}
	// len(scope.path) is the number of imports leading to res.
	if maxDepth := domain.ConfigFrom(ctx).MaxDepth; maxDepth > 0 && len(scope.path) > maxDepth {
		return "", &domain.ErrMaxDepthExceeded{URI: res.URI, Depth: maxDepth}
	}

	scope.path[res] = struct{}{}
	defer delete(scope.path, res)

	source, err := locator.ReadString(ctx, p.locator, res.URI)
	if err != nil {
		return "", err
	}

	imports := p.importedResources(res, source)
	expanded := ""
	if len(imports) > 0 {
		p.logger.Debug("Imported resources found", "resource", res.URI, "count", len(imports))
		expanded, err = p.merger.ProcessAndMerge(ctx, imports, true)
		if err != nil {
			return "", err
		}
	}
	return expanded + stripImports(content), nil
}

// importedResources lists the stylesheets imported by res in declaration
// order. Repeated imports of the same stylesheet are dropped.
func (p *ImportResolver) importedResources(res domain.Resource, source string) []domain.Resource {
	directives, malformed := scanImports(source)
	for _, offset := range malformed {
		p.logger.Warn("Malformed import directive", "resource", res.URI, "line", lineOf(source, offset))
	}

	seen := make(map[domain.Resource]struct{}, len(directives))
	imports := make([]domain.Resource, 0, len(directives))
	for _, d := range directives {
		imported := domain.NewResource(domain.Resolve(res.URI, d.Target), domain.TypeCSS)
		if _, ok := seen[imported]; ok {
			p.logger.Warn("Duplicate imported resource", "resource", res.URI, "import", imported.URI)
			continue
		}
		seen[imported] = struct{}{}
		imports = append(imports, imported)
	}
	return imports
}
