package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Collector on top of client_golang.
type Prometheus struct {
	rebuilds *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	skips    *prometheus.CounterVec
	atoms    *prometheus.GaugeVec
	pairs    *prometheus.GaugeVec
}

// NewPrometheus creates the collectors under the given namespace and
// registers them with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Prometheus{
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebuilds_total",
			Help:      "Total layer rebuilds",
		}, []string{"layer", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Latency of layer rebuilds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"layer"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_updates_total",
			Help:      "Total updates that left a layer untouched",
		}, []string{"layer"}),
		atoms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "atoms",
			Help:      "Number of atoms held by a layer",
		}, []string{"layer", "kind"}),
		pairs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pairs",
			Help:      "Number of pairs held by a layer",
		}, []string{"layer"}),
	}

	for _, c := range []prometheus.Collector{p.rebuilds, p.latency, p.skips, p.atoms, p.pairs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RecordRebuild implements Collector.
func (p *Prometheus) RecordRebuild(layer string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.rebuilds.WithLabelValues(layer, status).Inc()
	p.latency.WithLabelValues(layer).Observe(duration.Seconds())
}

// RecordSkip implements Collector.
func (p *Prometheus) RecordSkip(layer string) {
	p.skips.WithLabelValues(layer).Inc()
}

// RecordClusters implements Collector.
func (p *Prometheus) RecordClusters(layer string, centers, ghosts, pairs int) {
	p.atoms.WithLabelValues(layer, "center").Set(float64(centers))
	p.atoms.WithLabelValues(layer, "ghost").Set(float64(ghosts))
	p.pairs.WithLabelValues(layer).Set(float64(pairs))
}
