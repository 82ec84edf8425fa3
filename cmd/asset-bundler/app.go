package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	bundler "github.com/miorlan/asset-bundler"
	"github.com/miorlan/asset-bundler/internal/config"
)

// app runs bundle builds with the loaded settings
type app struct {
	settings *config.Settings
	logger   *log.Logger
	stdout   io.Writer
	stderr   io.Writer
	verbose  bool
}

func newApp(settings *config.Settings, logger *log.Logger, stdout, stderr io.Writer, verbose bool) *app {
	return &app{
		settings: settings,
		logger:   logger,
		stdout:   stdout,
		stderr:   stderr,
		verbose:  verbose,
	}
}

// newBundler creates a Bundler from the settings
func (a *app) newBundler(progress func(current, total int, group string)) (*bundler.Bundler, error) {
	s := a.settings
	return bundler.New(
		bundler.WithContextRoot(s.ContextRoot),
		bundler.WithBaseDir(s.BaseDir),
		bundler.WithEncoding(s.Encoding),
		bundler.WithMinimize(s.Minimize),
		bundler.WithValidation(s.Validate),
		bundler.WithHTTPTimeout(s.HTTPTimeout),
		bundler.WithMaxFileSize(s.MaxFileSize),
		bundler.WithMaxDepth(s.MaxDepth),
		bundler.WithConcurrency(s.Concurrency),
		bundler.WithPreProcessors(s.PreProcessors...),
		bundler.WithPostProcessors(s.PostProcessors...),
		bundler.WithGroups(s.Groups...),
		bundler.WithLogger(a.logger),
		bundler.WithProgress(progress),
	)
}

// run performs one build
func (a *app) run(ctx context.Context) error {
	progress := NewProgressBar(a.stderr, a.verbose)
	b, err := a.newBundler(progress.Update)
	if err != nil {
		return err
	}

	start := time.Now()
	a.logger.Debug("Loading model", "model", a.settings.Model)
	paths, err := b.Bundle(ctx, a.settings.Model, a.settings.Output)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintf(a.stdout, "✅ %s\n", p)
	}
	a.logger.Info("Bundles written", "count", len(paths), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// watch builds once, then rebuilds on every change under the model and
// resource directories until ctx is cancelled. Failed builds are logged and
// do not stop watching.
func (a *app) watch(ctx context.Context) error {
	if err := a.run(ctx); err != nil {
		a.logger.Error("Bundling failed", "err", err)
	}

	output, err := filepath.Abs(a.settings.Output)
	if err != nil {
		return err
	}

	rebuild := make(chan string, 1)
	w, err := newFSWatcher(a.logger, watchedFile(output), func(name string) {
		select {
		case rebuild <- name:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	dirs := lo.Uniq([]string{
		filepath.Clean(a.settings.ContextRoot),
		filepath.Clean(a.settings.BaseDir),
		filepath.Dir(a.settings.Model),
	})
	for _, dir := range dirs {
		if err := w.AddTree(dir); err != nil {
			return err
		}
	}

	status := NewSimpleProgress(a.stderr, true)
	status.Update(fmt.Sprintf("👀 Watching %d directories for changes", len(dirs)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case name := <-rebuild:
			status.Update(fmt.Sprintf("🔄 %s changed, rebuilding", name))
			if err := a.run(ctx); err != nil {
				a.logger.Error("Bundling failed", "err", err)
			}
		}
	}
}
