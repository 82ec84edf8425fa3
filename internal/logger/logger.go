// Package logger builds the structured logger used by the CLI.
package logger

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// LevelOff disables all output.
const LevelOff = log.Level(math.MaxInt32)

// ParseLevel converts a level name into a log.Level. An empty name means info.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "off", "none":
		return LevelOff, nil
	default:
		return log.InfoLevel, errors.Newf("invalid log level '%s'. Supported log levels are debug, info, warn, error, off", level)
	}
}

// New creates a logger writing to w at the given level.
func New(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "asset-bundler",
	}), nil
}
