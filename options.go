package neighborhood

import (
	"log/slog"

	"github.com/hupe1980/neighborhood/codec"
	"github.com/hupe1980/neighborhood/snapshot"
)

type options struct {
	codec            codec.Codec
	compression      snapshot.Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Neighborhood constructor/load behavior.
type Option func(*options)

// WithCodec configures the codec used for layer specifications and
// snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the payload compression of saved snapshots.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for every layer.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	m := &neighborhood.BasicMetricsCollector{}
//	nb, _ := neighborhood.New(layers, neighborhood.WithMetricsCollector(m))
//	// ... update ...
//	stats := m.GetStats()
//	fmt.Printf("Rebuilds: %d, skipped: %d\n", stats.RebuildCount, stats.SkipCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for every layer.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := neighborhood.NewJSONLogger(slog.LevelInfo)
//	nb, _ := neighborhood.New(layers, neighborhood.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		compression:      snapshot.CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
