package processor

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/miorlan/asset-bundler/internal/domain"
)

var cssURLPattern = regexp.MustCompile(`(?i)url\(\s*(["']?)([^"')]+?)(["']?)\s*\)`)

// URLRewriter makes relative url(...) references of a stylesheet absolute,
// so they keep pointing at the same file once the stylesheet is merged into
// a bundle served from another location. References that already are
// absolute, data URIs and fragments are left alone, which makes a second
// pass a no-op.
type URLRewriter struct{}

// NewURLRewriter creates a URLRewriter.
func NewURLRewriter() *URLRewriter {
	return &URLRewriter{}
}

func (p *URLRewriter) Process(ctx context.Context, res domain.Resource, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read content")
	}

	result := cssURLPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		m := cssURLPattern.FindStringSubmatch(match)
		if m[1] != m[3] {
			return match
		}
		return "url(" + m[1] + RewriteURL(res.URI, m[2]) + m[3] + ")"
	})

	_, err = io.WriteString(w, result)
	return errors.Wrap(err, "failed to write content")
}

// RewriteURL resolves ref against the stylesheet at uri and returns a
// context absolute URL.
func RewriteURL(uri, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || domain.IsAbsoluteURI(ref) {
		return ref
	}
	resolved := domain.Resolve(uri, ref)
	if domain.IsAbsoluteURI(resolved) {
		return resolved
	}
	return domain.Normalize("/" + resolved)
}
