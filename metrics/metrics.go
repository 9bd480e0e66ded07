package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector receives events from the layers of a stack.
// Implementations must be safe for concurrent use.
type Collector interface {
	// RecordRebuild is called after a layer rebuilt its data.
	// duration is the time taken, err is nil if successful.
	RecordRebuild(layer string, duration time.Duration, err error)

	// RecordSkip is called when an update left a layer untouched.
	RecordSkip(layer string)

	// RecordClusters reports the layer's size after a successful rebuild.
	RecordClusters(layer string, centers, ghosts, pairs int)
}

// Noop is a no-op implementation of Collector.
type Noop struct{}

func (Noop) RecordRebuild(string, time.Duration, error) {}
func (Noop) RecordSkip(string)                          {}
func (Noop) RecordClusters(string, int, int, int)       {}

// Clusters is the last size reported by one layer.
type Clusters struct {
	Centers int
	Ghosts  int
	Pairs   int
}

// Basic provides simple in-memory metrics collection.
type Basic struct {
	RebuildCount      atomic.Int64
	RebuildErrors     atomic.Int64
	RebuildTotalNanos atomic.Int64
	SkipCount         atomic.Int64

	mu       sync.Mutex
	clusters map[string]Clusters
}

// RecordRebuild implements Collector.
func (b *Basic) RecordRebuild(_ string, duration time.Duration, err error) {
	b.RebuildCount.Add(1)
	b.RebuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RebuildErrors.Add(1)
	}
}

// RecordSkip implements Collector.
func (b *Basic) RecordSkip(string) {
	b.SkipCount.Add(1)
}

// RecordClusters implements Collector.
func (b *Basic) RecordClusters(layer string, centers, ghosts, pairs int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clusters == nil {
		b.clusters = make(map[string]Clusters)
	}
	b.clusters[layer] = Clusters{Centers: centers, Ghosts: ghosts, Pairs: pairs}
}

// Layer returns the last size reported by the named layer.
func (b *Basic) Layer(name string) (Clusters, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.clusters[name]
	return c, ok
}

// GetStats returns a snapshot of current metrics.
func (b *Basic) GetStats() BasicStats {
	return BasicStats{
		RebuildCount:    b.RebuildCount.Load(),
		RebuildErrors:   b.RebuildErrors.Load(),
		RebuildAvgNanos: b.getAvgRebuildNanos(),
		SkipCount:       b.SkipCount.Load(),
	}
}

func (b *Basic) getAvgRebuildNanos() int64 {
	count := b.RebuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.RebuildTotalNanos.Load() / count
}

// BasicStats is a snapshot of Basic state.
type BasicStats struct {
	RebuildCount    int64
	RebuildErrors   int64
	RebuildAvgNanos int64
	SkipCount       int64
}
