package validator

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/tdewolff/parse/v2/js"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// Validator checks that merged bundles are syntactically valid
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(t domain.ResourceType, content []byte) error {
	switch t {
	case domain.TypeCSS:
		return validateCSS(content)
	case domain.TypeJS:
		return validateJS(content)
	default:
		return errors.Newf("cannot validate resources of type %q", t)
	}
}

func validateCSS(content []byte) error {
	p := css.NewParser(parse.NewInput(bytes.NewReader(content)), false)
	for {
		gt, _, _ := p.Next()
		if gt != css.ErrorGrammar {
			continue
		}
		if p.HasParseError() {
			return errors.Wrap(p.Err(), "invalid CSS")
		}
		if err := p.Err(); err != io.EOF {
			return errors.Wrap(err, "failed to read CSS")
		}
		return nil
	}
}

func validateJS(content []byte) error {
	if _, err := js.Parse(parse.NewInputBytes(content), js.Options{}); err != nil {
		return errors.Wrap(err, "invalid JavaScript")
	}
	return nil
}
