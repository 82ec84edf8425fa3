package locator

import (
	"context"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// ClasspathPrefix marks URIs served from an embedded filesystem.
const ClasspathPrefix = "classpath:"

// FSStrategy reads "classpath:" URIs from an fs.FS, typically an embed.FS
// compiled into the binary.
type FSStrategy struct {
	FS fs.FS
}

// NewFSStrategy creates an FSStrategy over fsys.
func NewFSStrategy(fsys fs.FS) *FSStrategy {
	return &FSStrategy{FS: fsys}
}

func (s *FSStrategy) Accepts(uri string) bool {
	return s.FS != nil && strings.HasPrefix(uri, ClasspathPrefix)
}

func (s *FSStrategy) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	name := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(uri, ClasspathPrefix)), "/")
	f, err := s.FS.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ErrResourceNotFound{URI: uri}
		}
		return nil, errors.Wrapf(err, "failed to open %s", name)
	}
	return f, nil
}
