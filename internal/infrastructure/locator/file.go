package locator

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// FileStrategy reads plain filesystem paths and file: URIs. Relative paths
// are resolved against BaseDir.
type FileStrategy struct {
	BaseDir string
}

// NewFileStrategy creates a FileStrategy rooted at baseDir.
func NewFileStrategy(baseDir string) *FileStrategy {
	return &FileStrategy{BaseDir: baseDir}
}

func (s *FileStrategy) Accepts(uri string) bool {
	return strings.HasPrefix(uri, "file:") || !domain.HasScheme(uri) && !domain.IsNetworkPath(uri)
}

func (s *FileStrategy) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	p := strings.TrimPrefix(strings.TrimPrefix(uri, "file://"), "file:")
	p = filepath.Clean(filepath.FromSlash(p))
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.BaseDir, p)
	}
	return openFile(uri, p)
}

// ContextStrategy reads context relative URIs ("/css/site.css") from the
// web root directory. ".." segments never escape Root.
type ContextStrategy struct {
	Root string
}

// NewContextStrategy creates a ContextStrategy serving files under root.
func NewContextStrategy(root string) *ContextStrategy {
	return &ContextStrategy{Root: root}
}

func (s *ContextStrategy) Accepts(uri string) bool {
	return strings.HasPrefix(uri, "/") && !strings.HasPrefix(uri, "//")
}

func (s *ContextStrategy) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	p := filepath.Join(s.Root, filepath.FromSlash(path.Clean(uri)))
	return openFile(uri, p)
}

func openFile(uri, p string) (io.ReadCloser, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.ErrResourceNotFound{URI: uri}
		}
		return nil, errors.Wrapf(err, "failed to open %s", p)
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		_ = f.Close()
		return nil, &domain.ErrResourceNotFound{URI: uri}
	}
	return f, nil
}
