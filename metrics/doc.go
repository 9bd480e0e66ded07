// Package metrics collects operational metrics of structure-manager stacks.
//
// Every layer of a stack reports to a Collector after each update. The
// package ships three implementations:
//
//   - Noop discards everything and is the default.
//   - Basic keeps in-memory atomic counters, useful in tests and for quick
//     diagnostics.
//   - Prometheus exports counters, histograms and gauges through a
//     prometheus.Registerer.
package metrics
