package domain

import "context"

// DefaultEncoding is used when no charset is configured for a call.
const DefaultEncoding = "UTF-8"

// Config contains the settings of one resolution call
type Config struct {
	// Encoding names the charset used to decode located resources.
	Encoding string
	// MaxFileSize limits the size of a located resource in bytes (0 = unlimited).
	MaxFileSize int64
	// MaxDepth limits @import nesting, counted in import edges from the
	// top-level stylesheet (0 = unlimited).
	MaxDepth int
}

type configKey struct{}

// WithConfig returns a context carrying cfg for every resource located and
// processed under it.
func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom returns the call config stored on ctx, with defaults applied.
func ConfigFrom(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	if cfg.Encoding == "" {
		cfg.Encoding = DefaultEncoding
	}
	return cfg
}
