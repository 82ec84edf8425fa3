// Package config loads CLI settings from a config file, ASSET_BUNDLER_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/miorlan/asset-bundler/internal/infrastructure/processor"
)

const (
	// EnvPrefix prefixes the environment variables read by Load.
	EnvPrefix = "ASSET_BUNDLER"
	// DefaultConfigName is the config file looked up in the working
	// directory when none is given.
	DefaultConfigName = "asset-bundler"
)

// Settings holds every configurable value of the CLI.
type Settings struct {
	ContextRoot    string        `mapstructure:"context_root"`
	BaseDir        string        `mapstructure:"base_dir"`
	Model          string        `mapstructure:"model"`
	Output         string        `mapstructure:"output"`
	Encoding       string        `mapstructure:"encoding"`
	Minimize       bool          `mapstructure:"minimize"`
	Validate       bool          `mapstructure:"validate"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	MaxFileSize    int64         `mapstructure:"max_file_size"`
	MaxDepth       int           `mapstructure:"max_depth"`
	Concurrency    int           `mapstructure:"concurrency"`
	LogLevel       string        `mapstructure:"log_level"`
	PreProcessors  []string      `mapstructure:"pre_processors"`
	PostProcessors []string      `mapstructure:"post_processors"`
	Groups         []string      `mapstructure:"groups"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("context_root", ".")
	v.SetDefault("base_dir", ".")
	v.SetDefault("model", "assets.yaml")
	v.SetDefault("output", "dist")
	v.SetDefault("encoding", "UTF-8")
	v.SetDefault("minimize", true)
	v.SetDefault("validate", false)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("max_file_size", int64(0))
	v.SetDefault("max_depth", 0)
	v.SetDefault("concurrency", 4)
	v.SetDefault("log_level", "info")
	v.SetDefault("pre_processors", processor.DefaultPreProcessors)
	v.SetDefault("post_processors", processor.DefaultPostProcessors)
	v.SetDefault("groups", []string{})
}

// FlagName returns the command line flag bound to a settings key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Load reads the settings. configFile may be empty, in which case an
// optional asset-bundler.{yaml,json,toml} in the working directory is used.
// Only flags present in flags and changed by the user override other sources.
func Load(configFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", configFile)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "failed to read config")
			}
		}
	}

	if flags != nil {
		for _, key := range v.AllKeys() {
			if f := flags.Lookup(FlagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag %s", f.Name)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if s.Concurrency < 0 {
		return nil, errors.Newf("concurrency must not be negative, got %d", s.Concurrency)
	}
	return &s, nil
}
