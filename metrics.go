package neighborhood

import "github.com/hupe1980/neighborhood/metrics"

// MetricsCollector receives rebuild and skip events from every layer.
// Implement this interface to integrate with monitoring systems, or use
// metrics.NewPrometheus.
type MetricsCollector = metrics.Collector

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector = metrics.Noop

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector = metrics.Basic

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats = metrics.BasicStats
