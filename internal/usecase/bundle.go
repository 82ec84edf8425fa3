package usecase

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/miorlan/asset-bundler/internal/domain"
)

// DefaultConcurrency is the number of groups bundled at the same time
const DefaultConcurrency = 4

// Config holds configuration for bundle execution
type Config struct {
	// Groups restricts the build to these groups; empty means all.
	Groups      []string
	Minimize    bool
	Validate    bool
	Encoding    string
	MaxFileSize int64
	MaxDepth    int
	Concurrency int
	// Progress is called after each group is written.
	Progress func(current, total int, group string)
}

// BundleUseCase merges the groups of a model into one file per group and
// resource type.
type BundleUseCase struct {
	modelLoader domain.ModelLoader
	merger      domain.Merger
	fileWriter  domain.FileWriter
	validator   domain.Validator
}

// NewBundleUseCase creates a new BundleUseCase
func NewBundleUseCase(
	modelLoader domain.ModelLoader,
	merger domain.Merger,
	fileWriter domain.FileWriter,
	validator domain.Validator,
) *BundleUseCase {
	return &BundleUseCase{
		modelLoader: modelLoader,
		merger:      merger,
		fileWriter:  fileWriter,
		validator:   validator,
	}
}

// Execute bundles the model at modelPath into outputDir and returns the
// written files in group order.
func (uc *BundleUseCase) Execute(ctx context.Context, modelPath, outputDir string, config Config) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	model, err := uc.modelLoader.Load(ctx, modelPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model")
	}

	groups, err := selectGroups(model, config.Groups)
	if err != nil {
		return nil, err
	}

	ctx = domain.WithConfig(ctx, domain.Config{
		Encoding:    config.Encoding,
		MaxFileSize: config.MaxFileSize,
		MaxDepth:    config.MaxDepth,
	})

	limit := config.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var (
		mu      sync.Mutex
		done    int
		written = make([][]string, len(groups))
	)
	for i, group := range groups {
		g.Go(func() error {
			paths, err := uc.bundleGroup(gctx, group, outputDir, config)
			if err != nil {
				return err
			}
			written[i] = paths

			if config.Progress != nil {
				mu.Lock()
				done++
				config.Progress(done, len(groups), group.Name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var paths []string
	for _, p := range written {
		paths = append(paths, p...)
	}
	return paths, nil
}

func (uc *BundleUseCase) bundleGroup(ctx context.Context, group domain.Group, outputDir string, config Config) ([]string, error) {
	var paths []string
	for _, t := range domain.ResourceTypes {
		resources := group.Filter(t)
		if len(resources) == 0 {
			continue
		}

		content, err := uc.merger.ProcessAndMerge(ctx, resources, config.Minimize)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to bundle group %s", group.Name)
		}

		outputPath := filepath.Join(outputDir, group.Name+"."+t.Ext())
		if err := uc.fileWriter.Write(outputPath, []byte(content)); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", outputPath)
		}

		if config.Validate {
			if err := uc.validator.Validate(t, []byte(content)); err != nil {
				// Remove the invalid bundle
				_ = uc.fileWriter.Write(outputPath, nil)
				return nil, errors.Wrapf(err, "validation failed for %s", outputPath)
			}
		}
		paths = append(paths, outputPath)
	}
	return paths, nil
}

// selectGroups returns the requested groups in request order, or every
// group of the model when names is empty.
func selectGroups(model *domain.Model, names []string) ([]domain.Group, error) {
	if len(names) == 0 {
		return model.Groups, nil
	}
	groups := make([]domain.Group, 0, len(names))
	for _, name := range names {
		g, ok := model.Group(name)
		if !ok {
			return nil, &domain.ErrGroupNotFound{Name: name}
		}
		groups = append(groups, g)
	}
	return groups, nil
}
