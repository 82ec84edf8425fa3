package domain

import (
	"path"
	"strings"
)

// HasScheme reports whether uri starts with a scheme such as "http:" or
// "classpath:". Single letter prefixes are drive letters, not schemes.
func HasScheme(uri string) bool {
	i := strings.IndexByte(uri, ':')
	if i < 2 {
		return false
	}
	return isScheme(uri[:i])
}

func isScheme(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}

// IsNetworkPath reports whether uri is a protocol relative URL such as
// "//fonts.example.com/a.css".
func IsNetworkPath(uri string) bool {
	return strings.HasPrefix(uri, "//") || strings.HasPrefix(uri, `\\`)
}

// IsAbsoluteURI reports whether ref can be located without a base URI.
func IsAbsoluteURI(ref string) bool {
	return HasScheme(ref) || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, `\`)
}

// splitPrefix separates the scheme and authority ("http://host",
// "classpath:") from the path part of uri.
func splitPrefix(uri string) (prefix, rest string) {
	if i := strings.Index(uri, "://"); i > 0 && isScheme(uri[:i]) {
		j := strings.IndexByte(uri[i+3:], '/')
		if j < 0 {
			return uri, ""
		}
		cut := i + 3 + j
		return uri[:cut], uri[cut:]
	}
	if HasScheme(uri) {
		i := strings.IndexByte(uri, ':')
		return uri[:i+1], uri[i+1:]
	}
	return "", uri
}

// Dir returns the directory portion of uri including the trailing slash,
// or the bare prefix when uri has no directory.
func Dir(uri string) string {
	prefix, rest := splitPrefix(strings.ReplaceAll(uri, `\`, "/"))
	i := strings.LastIndexByte(rest, '/')
	if i < 0 {
		return prefix
	}
	return prefix + rest[:i+1]
}

// Normalize collapses "." and ".." segments of the path part of uri. Both
// "/" and "\" are accepted as separators; the result always uses "/".
func Normalize(uri string) string {
	prefix, rest := splitPrefix(strings.ReplaceAll(uri, `\`, "/"))
	if rest == "" {
		return prefix
	}
	cleaned := path.Clean(rest)
	switch {
	case cleaned == ".":
		cleaned = ""
	case strings.HasSuffix(rest, "/") && cleaned != "/":
		cleaned += "/"
	}
	return prefix + cleaned
}

// Resolve computes the URI of ref as seen from the resource at base.
// Relative references are joined to the directory of base; absolute ones
// are only normalized, except host relative paths under an http(s) base.
func Resolve(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if HasScheme(ref) {
		return Normalize(ref)
	}
	if IsNetworkPath(ref) {
		ref = strings.ReplaceAll(ref, `\`, "/")
		if prefix, _ := splitPrefix(base); strings.Contains(prefix, "://") {
			return Normalize(prefix[:strings.Index(prefix, "//")] + ref)
		}
		// Keep the host out of path cleaning.
		prefix, rest := splitPrefix("x:" + ref)
		return strings.TrimPrefix(prefix, "x:") + Normalize(rest)
	}
	if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, `\`) {
		if prefix, _ := splitPrefix(base); strings.Contains(prefix, "://") {
			return Normalize(prefix + ref)
		}
		return Normalize(ref)
	}
	return Normalize(Dir(base) + ref)
}
