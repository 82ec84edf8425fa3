package domain

import (
	"fmt"
	"path"
	"strings"
)

// ResourceType is the kind of web asset a resource holds.
type ResourceType string

const (
	TypeCSS ResourceType = "css"
	TypeJS  ResourceType = "js"
)

// ResourceTypes lists every supported type in output order.
var ResourceTypes = []ResourceType{TypeCSS, TypeJS}

// Ext returns the file extension used for merged output, without the dot.
func (t ResourceType) Ext() string {
	return string(t)
}

// ParseResourceType converts a user supplied name into a ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "css":
		return TypeCSS, nil
	case "js", "javascript":
		return TypeJS, nil
	default:
		return "", fmt.Errorf("unknown resource type: %q", s)
	}
}

// DetectType guesses the resource type from the URI extension.
// It returns an empty type when the extension is not recognized.
func DetectType(uri string) ResourceType {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	switch strings.ToLower(path.Ext(uri)) {
	case ".css":
		return TypeCSS
	case ".js":
		return TypeJS
	}
	return ""
}

// Resource identifies a CSS or JS asset. Two resources are equal when both
// URI and Type are equal, so Resource can be used directly as a map key.
type Resource struct {
	URI  string
	Type ResourceType
}

// NewResource creates a resource of the given type.
func NewResource(uri string, t ResourceType) Resource {
	return Resource{URI: uri, Type: t}
}

func (r Resource) String() string {
	return fmt.Sprintf("%s[%s]", r.URI, r.Type)
}

// Group is a named, ordered list of resources that are merged together.
type Group struct {
	Name      string
	Resources []Resource
}

// Filter returns the resources of the given type, keeping declaration order.
func (g Group) Filter(t ResourceType) []Resource {
	var out []Resource
	for _, r := range g.Resources {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Model is the full set of groups declared for a project.
type Model struct {
	Groups []Group
}

// Group looks a group up by name.
func (m *Model) Group(name string) (Group, bool) {
	for _, g := range m.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Names returns group names in declaration order.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Groups))
	for _, g := range m.Groups {
		names = append(names, g.Name)
	}
	return names
}
