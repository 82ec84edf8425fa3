package processor

import (
	"context"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// transform adapts a string rewrite to PostProcessor.
func transform(fn func(string) string) PostFunc {
	return func(ctx context.Context, r io.Reader, w io.Writer) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return errors.Wrap(err, "failed to read content")
		}
		_, err = io.WriteString(w, fn(string(data)))
		return errors.Wrap(err, "failed to write content")
	}
}

const bom = "\ufeff"

// StripBOM drops a leading byte order mark.
func StripBOM() PostProcessor {
	return transform(func(s string) string {
		return strings.TrimPrefix(s, bom)
	})
}

var (
	singleLineComment = regexp.MustCompile(`(?m)[\t ]*//.*$`)
	emptyLine         = regexp.MustCompile(`(?m)^[\t ]*\r?\n`)
)

// StripSingleLineComments removes "//" comments together with the blanks
// preceding them, then drops the lines left empty.
func StripSingleLineComments() PostProcessor {
	return transform(func(s string) string {
		s = singleLineComment.ReplaceAllString(s, "")
		return emptyLine.ReplaceAllString(s, "")
	})
}

// AppendSemicolon terminates a script with ";" unless it already ends with
// one, so that concatenated scripts cannot run into each other.
func AppendSemicolon() PostProcessor {
	return transform(func(s string) string {
		trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
		if trimmed == "" || strings.HasSuffix(trimmed, ";") {
			return s
		}
		return s + "\n;"
	})
}
