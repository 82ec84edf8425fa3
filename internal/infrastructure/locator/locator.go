// Package locator turns resource URIs into readable streams. A Chain tries
// its strategies in order and returns the first stream one of them opens.
package locator

import (
	"context"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// Strategy is one way of fetching a resource, e.g. from disk or over HTTP.
//
// A strategy that accepts a URI but cannot find it declines by returning an
// error for which IsNotFound is true; the chain then tries the next one.
type Strategy interface {
	Accepts(uri string) bool
	Locate(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Chain is an ordered set of strategies.
type Chain struct {
	strategies []Strategy
	logger     *log.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) ChainOption {
	return func(c *Chain) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChain creates a chain trying strategies in the given order.
func NewChain(strategies []Strategy, opts ...ChainOption) *Chain {
	c := &Chain{
		strategies: strategies,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends a strategy to the end of the chain.
func (c *Chain) Add(s Strategy) *Chain {
	c.strategies = append(c.strategies, s)
	return c
}

// Locate returns the stream of the first strategy that can open uri.
func (c *Chain) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	for _, s := range c.strategies {
		if !s.Accepts(uri) {
			continue
		}
		rc, err := s.Locate(ctx, uri)
		if err == nil {
			return rc, nil
		}
		if !IsNotFound(err) {
			return nil, errors.Wrapf(err, "failed to locate %s", uri)
		}
		c.logger.Debug("Strategy declined resource", "uri", uri, "strategy", strategyName(s))
	}
	return nil, &domain.ErrResourceNotFound{URI: uri}
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	var nf *domain.ErrResourceNotFound
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

func strategyName(s Strategy) string {
	switch s.(type) {
	case *FileStrategy:
		return "file"
	case *ContextStrategy:
		return "context"
	case *FSStrategy:
		return "classpath"
	case *URLStrategy:
		return "url"
	default:
		return "custom"
	}
}
