package processor

import (
	"bytes"
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

const (
	mediaTypeCSS = "text/css"
	mediaTypeJS  = "application/javascript"
)

// Minifier compresses CSS or JS content.
type Minifier struct {
	m         *minify.M
	mediaType string
	// terminate keeps a trailing ";" so merged scripts stay separate
	// statements.
	terminate bool
}

// NewCSSMinifier creates a stylesheet minifier.
func NewCSSMinifier() *Minifier {
	m := minify.New()
	m.AddFunc(mediaTypeCSS, css.Minify)
	return &Minifier{m: m, mediaType: mediaTypeCSS}
}

// NewJSMinifier creates a script minifier.
func NewJSMinifier() *Minifier {
	m := minify.New()
	m.AddFunc(mediaTypeJS, js.Minify)
	return &Minifier{m: m, mediaType: mediaTypeJS, terminate: true}
}

func (p *Minifier) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	if !p.terminate {
		if err := p.m.Minify(p.mediaType, w, r); err != nil {
			return errors.Wrapf(err, "failed to minify %s", p.mediaType)
		}
		return nil
	}

	var out bytes.Buffer
	if err := p.m.Minify(p.mediaType, &out, r); err != nil {
		return errors.Wrapf(err, "failed to minify %s", p.mediaType)
	}
	// The minifier drops the final semicolon.
	if out.Len() > 0 && !bytes.HasSuffix(out.Bytes(), []byte(";")) {
		out.WriteByte(';')
	}
	_, err := out.WriteTo(w)
	return errors.Wrap(err, "failed to write content")
}
