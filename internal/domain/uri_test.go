package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{name: "sibling", base: "css/a.css", ref: "b.css", want: "css/b.css"},
		{name: "parent directory", base: "css/sub/a.css", ref: "../shared.css", want: "css/shared.css"},
		{name: "windows separators", base: `css\sub\a.css`, ref: `..\shared.css`, want: "css/shared.css"},
		{name: "dot segment", base: "/css/a.css", ref: "./theme/b.css", want: "/css/theme/b.css"},
		{name: "no directory", base: "a.css", ref: "b.css", want: "b.css"},
		{name: "above root stays relative", base: "a.css", ref: "../b.css", want: "../b.css"},
		{name: "context absolute", base: "/css/a.css", ref: "/shared/b.css", want: "/shared/b.css"},
		{name: "absolute url", base: "/css/a.css", ref: "http://cdn.example.com/x/../b.css", want: "http://cdn.example.com/b.css"},
		{name: "relative to url", base: "https://example.com/css/a.css", ref: "../b.css", want: "https://example.com/b.css"},
		{name: "host relative to url", base: "https://example.com/css/a.css", ref: "/b.css", want: "https://example.com/b.css"},
		{name: "network path", base: "/css/a.css", ref: "//fonts.example.com/x/../b.css", want: "//fonts.example.com/b.css"},
		{name: "network path host only", base: "a.css", ref: "//fonts.example.com", want: "//fonts.example.com"},
		{name: "network path under url", base: "http://example.com/css/a.css", ref: "//fonts.example.com/b.css", want: "http://fonts.example.com/b.css"},
		{name: "classpath", base: "classpath:css/sub/a.css", ref: "../b.css", want: "classpath:css/b.css"},
		{name: "surrounding spaces", base: "css/a.css", ref: " b.css ", want: "css/b.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.base, tt.ref))
		})
	}
}

func TestDir(t *testing.T) {
	assert.Equal(t, "css/sub/", Dir("css/sub/a.css"))
	assert.Equal(t, "", Dir("a.css"))
	assert.Equal(t, "http://example.com/", Dir("http://example.com/a.css"))
	assert.Equal(t, "classpath:", Dir("classpath:a.css"))
	assert.Equal(t, "C:/web/css/", Dir(`C:\web\css\a.css`))
}

func TestHasScheme(t *testing.T) {
	assert.True(t, HasScheme("http://example.com"))
	assert.True(t, HasScheme("classpath:a.css"))
	assert.True(t, HasScheme("data:image/png;base64,AAAA"))
	assert.False(t, HasScheme(`C:\web\a.css`))
	assert.False(t, HasScheme("/css/a.css"))
	assert.False(t, HasScheme("a.css"))
}

func TestNormalize_KeepsTrailingSlash(t *testing.T) {
	assert.Equal(t, "css/", Normalize("css/sub/../"))
	assert.Equal(t, "/", Normalize("/a/.."))
	assert.Equal(t, "", Normalize("./"))
}
