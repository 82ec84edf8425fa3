package model

import (
	"context"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/miorlan/asset-bundler/internal/domain"
	"github.com/miorlan/asset-bundler/internal/infrastructure/locator"
)

// Loader reads group models from local files and expands wildcard URIs
// against the same roots the locator chain serves.
type Loader struct {
	contextRoot string
	baseDir     string
	classpath   fs.FS
	logger      *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithContextRoot sets the directory that context relative URIs ("/css/a.css")
// are expanded against.
func WithContextRoot(dir string) Option {
	return func(l *Loader) {
		l.contextRoot = dir
	}
}

// WithBaseDir sets the directory that relative URIs are expanded against.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// WithClasspath sets the file system serving "classpath:" URIs.
func WithClasspath(fsys fs.FS) Option {
	return func(l *Loader) {
		l.classpath = fsys
	}
}

// WithLogger sets the loader logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		contextRoot: ".",
		baseDir:     ".",
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and builds the model stored at modelPath.
func (l *Loader) Load(ctx context.Context, modelPath string) (*domain.Model, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model %s", modelPath)
	}

	f, err := Unmarshal(data, domain.DetectFormat(modelPath))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse model %s", modelPath)
	}
	return l.Build(f)
}

// Build resolves group references and wildcards of f.
func (l *Loader) Build(f *File) (*domain.Model, error) {
	specs := make(map[string]GroupSpec, len(f.Groups))
	for _, g := range f.Groups {
		if g.Name == "" {
			return nil, errors.New("group without a name")
		}
		if _, ok := specs[g.Name]; ok {
			return nil, errors.Newf("duplicate group %s", g.Name)
		}
		specs[g.Name] = g
	}

	b := &builder{
		loader: l,
		specs:  specs,
		done:   make(map[string][]domain.Resource, len(specs)),
	}

	model := &domain.Model{Groups: make([]domain.Group, 0, len(f.Groups))}
	for _, g := range f.Groups {
		resources, err := b.resolve(g.Name, nil)
		if err != nil {
			return nil, err
		}
		model.Groups = append(model.Groups, domain.Group{Name: g.Name, Resources: resources})
	}
	return model, nil
}

type builder struct {
	loader *Loader
	specs  map[string]GroupSpec
	done   map[string][]domain.Resource
}

// resolve returns the resources of a group. stack holds the groups whose
// references are being resolved.
func (b *builder) resolve(name string, stack []string) ([]domain.Resource, error) {
	if resources, ok := b.done[name]; ok {
		return resources, nil
	}
	if lo.Contains(stack, name) {
		return nil, &domain.ErrGroupCycle{Path: append(append([]string{}, stack...), name)}
	}
	spec, ok := b.specs[name]
	if !ok {
		return nil, &domain.ErrGroupNotFound{Name: name}
	}
	stack = append(stack, name)

	var resources []domain.Resource
	for _, ref := range spec.Groups {
		inlined, err := b.resolve(ref, stack)
		if err != nil {
			return nil, err
		}
		resources = append(resources, inlined...)
	}

	for _, t := range []struct {
		uris []string
		typ  domain.ResourceType
	}{{spec.CSS, domain.TypeCSS}, {spec.JS, domain.TypeJS}} {
		for _, uri := range t.uris {
			expanded, err := b.loader.expand(uri)
			if err != nil {
				return nil, errors.Wrapf(err, "group %s", name)
			}
			if len(expanded) == 0 {
				b.loader.logger.Warn("No resources matched wildcard", "group", name, "uri", uri)
			}
			for _, u := range expanded {
				resources = append(resources, domain.NewResource(u, t.typ))
			}
		}
	}

	resources = lo.Uniq(resources)
	b.done[name] = resources
	return resources, nil
}

// expand returns uri itself, or the URIs of the files matching it when uri is
// a wildcard pattern.
func (l *Loader) expand(uri string) ([]string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, errors.New("empty resource uri")
	}
	if !isWildcard(uri) {
		return []string{uri}, nil
	}

	fsys, prefix, pattern, err := l.root(uri)
	if err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf("invalid wildcard %s", uri)
	}

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand %s", uri)
	}
	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = prefix + m
	}
	return matches, nil
}

// root picks the file system a wildcard URI is matched against and the
// prefix that turns a match back into a URI.
func (l *Loader) root(uri string) (fs.FS, string, string, error) {
	switch {
	case strings.HasPrefix(uri, locator.ClasspathPrefix):
		if l.classpath == nil {
			return nil, "", "", errors.Newf("no classpath configured for %s", uri)
		}
		return l.classpath, locator.ClasspathPrefix, strings.TrimPrefix(strings.TrimPrefix(uri, locator.ClasspathPrefix), "/"), nil
	case strings.HasPrefix(uri, "file:"):
		return l.fileRoot(strings.TrimPrefix(uri, "file:"), "file:")
	case domain.HasScheme(uri):
		return nil, "", "", errors.Newf("wildcards are not supported for %s", uri)
	case strings.HasPrefix(uri, "/"):
		return os.DirFS(l.contextRoot), "/", strings.TrimLeft(uri, "/"), nil
	default:
		return l.fileRoot(uri, "")
	}
}

func (l *Loader) fileRoot(p, prefix string) (fs.FS, string, string, error) {
	p = domain.Normalize(p)
	if path.IsAbs(p) {
		base, pattern := doublestar.SplitPattern(p)
		return os.DirFS(base), prefix + strings.TrimSuffix(base, "/") + "/", pattern, nil
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return nil, "", "", errors.Newf("wildcard %s leaves the base directory", p)
	}
	return os.DirFS(l.baseDir), prefix, p, nil
}

func isWildcard(uri string) bool {
	return strings.ContainsAny(uri, "*?[{")
}
