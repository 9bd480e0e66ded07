package manager

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hupe1980/neighborhood/metrics"
)

type options struct {
	logger  *slog.Logger
	metrics metrics.Collector
}

// Option configures a manager.
type Option func(*options)

// WithLogger configures structured logging of rebuilds.
// Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics configures a collector notified after every update.
// Pass nil to disable metrics collection.
func WithMetrics(mc metrics.Collector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.metrics == nil {
		o.metrics = metrics.Noop{}
	}
	return o
}

// Hypers holds the named initialization arguments of an adaptor, typically
// decoded from JSON. Unknown keys are ignored.
type Hypers map[string]any

// float looks up a numeric option. ok is false if the key is absent.
func (h Hypers) float(adaptor, key string) (v float64, ok bool, err error) {
	raw, ok := h[key]
	if !ok {
		return 0, false, nil
	}
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int64:
		v = float64(x)
	case json.Number:
		v, err = x.Float64()
		if err != nil {
			return 0, true, &ConfigError{Adaptor: adaptor, Option: key, Reason: err.Error()}
		}
	default:
		return 0, true, &ConfigError{Adaptor: adaptor, Option: key, Reason: fmt.Sprintf("expected a number, got %T", raw)}
	}
	return v, true, nil
}

// cutoff reads a required, strictly positive option.
func (h Hypers) cutoff(adaptor, key string) (float64, error) {
	v, ok, err := h.float(adaptor, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &ConfigError{Adaptor: adaptor, Option: key, Reason: "required option missing"}
	}
	if !(v > 0) || v > maxCutoff {
		return 0, &ConfigError{Adaptor: adaptor, Option: key, Reason: fmt.Sprintf("must be positive and finite, got %g", v)}
	}
	return v, nil
}

// bool reads an optional boolean option.
func (h Hypers) bool(adaptor, key string, def bool) (bool, error) {
	raw, ok := h[key]
	if !ok {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, &ConfigError{Adaptor: adaptor, Option: key, Reason: fmt.Sprintf("expected a boolean, got %T", raw)}
	}
	return b, nil
}
