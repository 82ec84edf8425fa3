package locator

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// ReadString locates uri and decodes its content with the charset of the
// call config stored on ctx.
func ReadString(ctx context.Context, l domain.Locator, uri string) (string, error) {
	cfg := domain.ConfigFrom(ctx)
	enc, err := lookupEncoding(cfg.Encoding)
	if err != nil {
		return "", err
	}

	rc, err := l.Locate(ctx, uri)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var r io.Reader = rc
	if cfg.MaxFileSize > 0 {
		r = io.LimitReader(rc, cfg.MaxFileSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", uri)
	}
	if cfg.MaxFileSize > 0 && int64(len(data)) > cfg.MaxFileSize {
		return "", errors.Newf("file size of %s exceeds maximum allowed size %d", uri, cfg.MaxFileSize)
	}

	if enc == nil {
		return string(data), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrapf(err, "failed to decode %s as %s", uri, cfg.Encoding)
	}
	return string(decoded), nil
}

// lookupEncoding returns nil for UTF-8, which needs no decoding.
func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &domain.ErrUnsupportedEncoding{Name: name}
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}
