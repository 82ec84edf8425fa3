package main

import (
	"github.com/spf13/cobra"

	"github.com/miorlan/asset-bundler/internal/config"
	"github.com/miorlan/asset-bundler/internal/infrastructure/locator"
	"github.com/miorlan/asset-bundler/internal/infrastructure/processor"
	"github.com/miorlan/asset-bundler/internal/logger"
	"github.com/miorlan/asset-bundler/internal/usecase"
)

func newBundleCmd(root *rootOptions) *cobra.Command {
	var (
		watch   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Write one bundle per group and resource type",
		Example: `  asset-bundler bundle -m assets.yaml -o dist
  asset-bundler bundle --context-root web -g app -g admin --validate
  asset-bundler bundle --minimize=false --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(root.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logger.New(settings.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			a := newApp(settings, log, cmd.OutOrStdout(), cmd.ErrOrStderr(), verbose)
			if watch {
				return a.watch(cmd.Context())
			}
			return a.run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringP(config.FlagName("model"), "m", "assets.yaml", "path to the group model file (YAML or JSON)")
	f.StringP(config.FlagName("output"), "o", "dist", "directory the bundles are written to")
	f.StringSliceP(config.FlagName("groups"), "g", nil, "groups to bundle (default all)")
	f.String(config.FlagName("context_root"), ".", "directory serving context relative URIs such as /css/site.css")
	f.String(config.FlagName("base_dir"), ".", "directory relative file paths are resolved against")
	f.String(config.FlagName("encoding"), "UTF-8", "charset of the resources")
	f.Bool(config.FlagName("minimize"), true, "run the minifying processors")
	f.Bool(config.FlagName("validate"), false, "check the syntax of every bundle")
	f.Duration(config.FlagName("http_timeout"), locator.DefaultHTTPTimeout, "timeout for fetching http(s) resources")
	f.Int64(config.FlagName("max_file_size"), 0, "maximum size of a resource in bytes (0 = unlimited)")
	f.Int(config.FlagName("max_depth"), 0, "maximum @import nesting depth (0 = unlimited)")
	f.Int(config.FlagName("concurrency"), usecase.DefaultConcurrency, "number of groups bundled at the same time")
	f.StringSlice(config.FlagName("pre_processors"), processor.DefaultPreProcessors, "pre-processor chain")
	f.StringSlice(config.FlagName("post_processors"), processor.DefaultPostProcessors, "post-processor chain")
	f.BoolVarP(&watch, "watch", "w", false, "rebuild when a resource or the model changes")
	f.BoolVarP(&verbose, "verbose", "v", false, "show progress")

	return cmd
}
