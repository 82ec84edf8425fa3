package main

import (
	"github.com/spf13/cobra"

	"github.com/miorlan/asset-bundler/internal/config"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "asset-bundler",
		Short: "Merge CSS and JavaScript resources into bundles",
		Long: `asset-bundler merges the CSS and JavaScript resources declared in a group
model into one file per group and type. Stylesheet @import directives are
inlined, relative urls are rewritten and the result is minimized.

Settings are read from ./asset-bundler.yaml (or --config), from
ASSET_BUNDLER_* environment variables and from flags, in increasing order
of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to the config file (default ./asset-bundler.yaml)")
	cmd.PersistentFlags().String(config.FlagName("log_level"), "info", "log level: debug, info, warn, error, off")

	cmd.AddCommand(newBundleCmd(opts), newVersionCmd())
	return cmd
}
