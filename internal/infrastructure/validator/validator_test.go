package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miorlan/asset-bundler/internal/domain"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		typ     domain.ResourceType
		content string
		wantErr string
	}{
		{name: "css", typ: domain.TypeCSS, content: "body{color:red}\n@media screen{a{margin:0}}"},
		{name: "empty css", typ: domain.TypeCSS, content: ""},
		{name: "css with comment", typ: domain.TypeCSS, content: "/* header */a{b:c}"},
		{name: "css missing colon", typ: domain.TypeCSS, content: "a{color red}", wantErr: "invalid CSS"},
		{name: "css stray brace", typ: domain.TypeCSS, content: "a{} }", wantErr: "invalid CSS"},
		{name: "js", typ: domain.TypeJS, content: "var a = 1;\nfunction f(x) { return x * 2 }\n;"},
		{name: "empty js", typ: domain.TypeJS, content: ""},
		{name: "js syntax error", typ: domain.TypeJS, content: "function ( {", wantErr: "invalid JavaScript"},
		{name: "unknown type", typ: "html", content: "<p>", wantErr: "cannot validate"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.typ, []byte(tt.content))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
