// Package model loads group models: named lists of CSS and JS resources
// that are merged into one bundle per group and type.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// File is the on-disk shape of a group model.
//
//	groups:
//	  - name: base
//	    css: [/css/reset.css, /css/**/*.css]
//	  - name: app
//	    groups: [base]
//	    js: [/js/app.js]
type File struct {
	Groups []GroupSpec `yaml:"groups" json:"groups"`
}

// GroupSpec declares one group. Referenced groups are inlined before the
// group's own resources.
type GroupSpec struct {
	Name   string   `yaml:"name" json:"name"`
	Groups []string `yaml:"groups,omitempty" json:"groups,omitempty"`
	CSS    []string `yaml:"css,omitempty" json:"css,omitempty"`
	JS     []string `yaml:"js,omitempty" json:"js,omitempty"`
}

// Unmarshal decodes a model file in the given format
func Unmarshal(data []byte, format domain.FileFormat) (*File, error) {
	var f File
	switch format {
	case domain.FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	}
	return &f, nil
}
