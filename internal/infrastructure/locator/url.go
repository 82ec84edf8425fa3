package locator

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// DefaultHTTPTimeout bounds a single fetch when no timeout is configured.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPClient is the part of *http.Client used by URLStrategy.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// URLStrategy fetches absolute http and https URLs. Protocol relative URLs
// ("//host/path") are fetched over https.
type URLStrategy struct {
	client HTTPClient
}

// URLOption configures a URLStrategy.
type URLOption func(*URLStrategy)

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) URLOption {
	return func(s *URLStrategy) {
		if c, ok := s.client.(*http.Client); ok && timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client HTTPClient) URLOption {
	return func(s *URLStrategy) {
		if client != nil {
			s.client = client
		}
	}
}

// NewURLStrategy creates a URLStrategy with a DefaultHTTPTimeout client.
func NewURLStrategy(opts ...URLOption) *URLStrategy {
	s := &URLStrategy{
		client: &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *URLStrategy) Accepts(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") || domain.IsNetworkPath(uri)
}

func (s *URLStrategy) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	target := uri
	if domain.IsNetworkPath(uri) {
		target = "https:" + strings.ReplaceAll(uri, `\`, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch HTTP resource")
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound, http.StatusGone:
		_ = resp.Body.Close()
		return nil, &domain.ErrResourceNotFound{URI: uri}
	default:
		_ = resp.Body.Close()
		return nil, errors.Newf("HTTP error: %s", resp.Status)
	}
}
