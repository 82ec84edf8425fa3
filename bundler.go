// Package bundler merges CSS and JavaScript resources into bundles.
//
// Resources are grouped in a model file; every group is turned into one
// file per resource type after running the configured processors, which by
// default strip byte order marks, rewrite stylesheet urls, inline @import
// directives and minimize the result.
package bundler

import (
	"context"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/miorlan/asset-bundler/internal/domain"
	"github.com/miorlan/asset-bundler/internal/infrastructure/locator"
	"github.com/miorlan/asset-bundler/internal/infrastructure/model"
	"github.com/miorlan/asset-bundler/internal/infrastructure/processor"
	"github.com/miorlan/asset-bundler/internal/infrastructure/validator"
	"github.com/miorlan/asset-bundler/internal/infrastructure/writer"
	"github.com/miorlan/asset-bundler/internal/usecase"
)

// Resource identifies a CSS or JS asset by URI
type Resource = domain.Resource

// ResourceType is the kind of a resource
type ResourceType = domain.ResourceType

const (
	TypeCSS = domain.TypeCSS
	TypeJS  = domain.TypeJS
)

// NewResource creates a resource of the given type
func NewResource(uri string, t ResourceType) Resource {
	return domain.NewResource(uri, t)
}

// Option represents a configuration option for the bundler
type Option func(*Config)

// Config holds the configuration for the bundler
type Config struct {
	Validate       bool
	Minimize       bool
	MaxFileSize    int64
	MaxDepth       int
	HTTPTimeout    time.Duration
	Encoding       string
	ContextRoot    string
	BaseDir        string
	Classpath      fs.FS
	PreProcessors  []string
	PostProcessors []string
	Groups         []string
	Concurrency    int
	Logger         *log.Logger
	Progress       func(current, total int, group string)
}

// WithValidation enables syntax validation of every written bundle
func WithValidation(validate bool) Option {
	return func(c *Config) {
		c.Validate = validate
	}
}

// WithMinimize turns the minifying processors on or off
func WithMinimize(minimize bool) Option {
	return func(c *Config) {
		c.Minimize = minimize
	}
}

// WithMaxFileSize sets the maximum file size in bytes (0 = unlimited)
func WithMaxFileSize(size int64) Option {
	return func(c *Config) {
		c.MaxFileSize = size
	}
}

// WithMaxDepth sets the maximum @import nesting depth (0 = unlimited)
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithHTTPTimeout sets the timeout for HTTP requests
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithEncoding sets the charset resources are decoded with
func WithEncoding(encoding string) Option {
	return func(c *Config) {
		c.Encoding = encoding
	}
}

// WithContextRoot sets the directory serving context relative URIs such as "/css/site.css"
func WithContextRoot(dir string) Option {
	return func(c *Config) {
		c.ContextRoot = dir
	}
}

// WithBaseDir sets the directory relative file paths are resolved against
func WithBaseDir(dir string) Option {
	return func(c *Config) {
		c.BaseDir = dir
	}
}

// WithClasspath serves "classpath:" URIs from fsys, usually an embed.FS
func WithClasspath(fsys fs.FS) Option {
	return func(c *Config) {
		c.Classpath = fsys
	}
}

// WithPreProcessors replaces the pre-processor chain by name
func WithPreProcessors(names ...string) Option {
	return func(c *Config) {
		c.PreProcessors = names
	}
}

// WithPostProcessors replaces the post-processor chain by name
func WithPostProcessors(names ...string) Option {
	return func(c *Config) {
		c.PostProcessors = names
	}
}

// WithGroups restricts Bundle to the named groups
func WithGroups(names ...string) Option {
	return func(c *Config) {
		c.Groups = names
	}
}

// WithConcurrency sets how many groups are bundled at the same time
func WithConcurrency(n int) Option {
	return func(c *Config) {
		c.Concurrency = n
	}
}

// WithLogger sets the logger receiving import warnings and debug output
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithProgress registers a callback invoked after each group is written
func WithProgress(fn func(current, total int, group string)) Option {
	return func(c *Config) {
		c.Progress = fn
	}
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Validate:       false,
		Minimize:       true,
		MaxFileSize:    0, // unlimited
		MaxDepth:       0, // unlimited
		HTTPTimeout:    locator.DefaultHTTPTimeout,
		Encoding:       domain.DefaultEncoding,
		ContextRoot:    ".",
		BaseDir:        ".",
		PreProcessors:  processor.DefaultPreProcessors,
		PostProcessors: processor.DefaultPostProcessors,
		Concurrency:    usecase.DefaultConcurrency,
		Logger:         log.Default(),
	}
}

// Bundler provides a simple API for bundling web assets
type Bundler struct {
	useCase  *usecase.BundleUseCase
	pipeline *processor.Executor
	config   *Config
}

// New creates a new Bundler. It fails when a configured processor name is unknown.
func New(opts ...Option) (*Bundler, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	strategies := []locator.Strategy{locator.NewContextStrategy(config.ContextRoot)}
	if config.Classpath != nil {
		strategies = append(strategies, locator.NewFSStrategy(config.Classpath))
	}
	strategies = append(strategies,
		locator.NewURLStrategy(locator.WithTimeout(config.HTTPTimeout)),
		locator.NewFileStrategy(config.BaseDir),
	)
	chain := locator.NewChain(strategies, locator.WithLogger(config.Logger))

	pipeline, err := processor.NewPipeline(chain, config.PreProcessors, config.PostProcessors, config.Logger)
	if err != nil {
		return nil, err
	}

	modelLoader := model.NewLoader(
		model.WithContextRoot(config.ContextRoot),
		model.WithBaseDir(config.BaseDir),
		model.WithClasspath(config.Classpath),
		model.WithLogger(config.Logger),
	)

	useCase := usecase.NewBundleUseCase(
		modelLoader,
		pipeline,
		writer.NewFileWriter(),
		validator.NewValidator(),
	)

	return &Bundler{
		useCase:  useCase,
		pipeline: pipeline,
		config:   config,
	}, nil
}

func (b *Bundler) useCaseConfig() usecase.Config {
	return usecase.Config{
		Groups:      b.config.Groups,
		Minimize:    b.config.Minimize,
		Validate:    b.config.Validate,
		Encoding:    b.config.Encoding,
		MaxFileSize: b.config.MaxFileSize,
		MaxDepth:    b.config.MaxDepth,
		Concurrency: b.config.Concurrency,
		Progress:    b.config.Progress,
	}
}

func (b *Bundler) callContext(ctx context.Context) context.Context {
	return domain.WithConfig(ctx, domain.Config{
		Encoding:    b.config.Encoding,
		MaxFileSize: b.config.MaxFileSize,
		MaxDepth:    b.config.MaxDepth,
	})
}

// Bundle writes the groups of the model at modelPath into outputDir as
// <group>.css and <group>.js and returns the written paths.
//
// Example:
//
//	b, err := bundler.New(bundler.WithContextRoot("web"))
//	if err != nil {
//		return err
//	}
//	paths, err := b.Bundle(context.Background(), "assets.yaml", "web/bundles")
func (b *Bundler) Bundle(ctx context.Context, modelPath, outputDir string) ([]string, error) {
	return b.useCase.Execute(ctx, modelPath, outputDir, b.useCaseConfig())
}

// BundleWithValidation bundles and validates the syntax of every bundle
//
// Example:
//
//	b, _ := bundler.New()
//	paths, err := b.BundleWithValidation(context.Background(), "assets.yaml", "dist")
func (b *Bundler) BundleWithValidation(ctx context.Context, modelPath, outputDir string) ([]string, error) {
	config := b.useCaseConfig()
	config.Validate = true
	return b.useCase.Execute(ctx, modelPath, outputDir, config)
}

// ProcessAndMerge runs the processors over resources and returns the
// merged content without writing anything.
func (b *Bundler) ProcessAndMerge(ctx context.Context, resources []Resource) (string, error) {
	return b.pipeline.ProcessAndMerge(b.callContext(ctx), resources, b.config.Minimize)
}

// Bundle is a convenience function that creates a new Bundler and bundles the model
//
// Example:
//
//	paths, err := bundler.Bundle(context.Background(), "assets.yaml", "dist")
func Bundle(ctx context.Context, modelPath, outputDir string, opts ...Option) ([]string, error) {
	b, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return b.Bundle(ctx, modelPath, outputDir)
}

// BundleWithValidation is a convenience function that bundles and validates
//
// Example:
//
//	paths, err := bundler.BundleWithValidation(context.Background(), "assets.yaml", "dist")
func BundleWithValidation(ctx context.Context, modelPath, outputDir string, opts ...Option) ([]string, error) {
	b, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return b.BundleWithValidation(ctx, modelPath, outputDir)
}
