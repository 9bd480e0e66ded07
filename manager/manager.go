package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/neighborhood/cluster"
	"github.com/hupe1980/neighborhood/metrics"
	"github.com/hupe1980/neighborhood/structure"
)

const maxCutoff = math.MaxFloat64

// Manager is one layer of a structure-manager stack.
//
// Atoms are addressed by tag. Tags [0, Size()) are the centers in input
// order, tags [Size(), SizeWithGhosts()) are ghosts. The order-1 cluster
// index of an atom equals its tag.
//
// Clusters of order k > 1 are addressed by their dense index at this layer.
// The clusters extending an order-k cluster i occupy the order-(k+1)
// indices [ExtensionOffset(k, i), ExtensionOffset(k, i)+ExtensionCount(k, i)).
type Manager interface {
	// Name returns the registered name of the layer.
	Name() string
	Dim() int
	// Structure returns the structure of the last update. Callers must not
	// modify it.
	Structure() *structure.AtomicStructure
	Lattice() *structure.Lattice

	Size() int
	SizeWithGhosts() int
	IsGhost(tag int) bool
	Position(tag int) []float64
	AtomType(tag int) int
	// AtomIndex returns the tag of the center an atom images. Centers map to
	// themselves.
	AtomIndex(tag int) int

	MaxOrder() int
	// Depth is the number of layers below this one.
	Depth() int
	// Layer returns the column of this layer in the index tables of order.
	Layer(order int) int
	IsStrict() bool
	HasCenterPair() bool
	// NUpdate counts completed rebuilds.
	NUpdate() int

	Indices(order int) *cluster.Indices
	// ClusterCount returns the number of clusters of order > 1.
	// Order 1 fails with ErrAmbiguousOrder.
	ClusterCount(order int) (int, error)
	ExtensionCount(order, index int) int
	ExtensionOffset(order, index int) int
	// ExtensionTags returns the tags extending cluster index of order.
	// The slice aliases internal storage and must not be modified.
	ExtensionTags(order, index int) []int
	// ClusterSize returns the number of clusters extending c at this layer.
	ClusterSize(c cluster.Ref) int
	// NeighbourTag returns the tag of the j-th extension of c.
	NeighbourTag(c cluster.Ref, j int) int

	// Update hands a structure to the base of the stack and rebuilds every
	// layer that is affected.
	Update(s *structure.AtomicStructure) error
	// Invalidate forces a rebuild on the next update.
	Invalidate()
	// Lower returns the manager beneath, nil for the base.
	Lower() Manager
	// Register adds a layer to be notified after this layer updated.
	Register(child Adaptor)
	// Unregister detaches a layer added with Register.
	Unregister(child Adaptor)
}

// Adaptor is a Manager built on top of another one.
type Adaptor interface {
	Manager
	// UpdateSelf is called by the lower manager after it updated. changed
	// reports whether the lower manager rebuilt.
	UpdateSelf(changed bool) error
}

// atomTable is the per-tag data of a layer that owns atoms.
type atomTable struct {
	dim       int
	nCenters  int
	positions []float64
	types     []int
	origins   []int
}

func (a *atomTable) reset(dim, nCenters int) {
	a.dim = dim
	a.nCenters = nCenters
	a.positions = a.positions[:0]
	a.types = a.types[:0]
	a.origins = a.origins[:0]
}

func (a *atomTable) add(x []float64, typ, origin int) {
	a.positions = append(a.positions, x...)
	a.types = append(a.types, typ)
	a.origins = append(a.origins, origin)
}

// extensions lists, per cluster of one order, the tags extending it.
type extensions struct {
	counts  []int
	offsets []int
	tags    []int
}

func (e *extensions) reset() {
	e.counts = e.counts[:0]
	e.tags = e.tags[:0]
}

func (e *extensions) close() {
	e.offsets = cluster.AppendOffsets(e.offsets, e.counts)
}

// layer holds the state shared by all managers.
type layer struct {
	name     string
	lower    Manager
	children []Adaptor
	logger   *slog.Logger
	metrics  metrics.Collector

	nUpdate    int
	needUpdate bool

	maxOrder   int
	strict     bool
	centerPair bool

	// atoms is nil for layers that forward atom queries to lower.
	atoms   *atomTable
	indices []*cluster.Indices
	ext     []extensions
}

func newLayer(name string, lower Manager, maxOrder int, o options) layer {
	return layer{
		name:       name,
		lower:      lower,
		logger:     o.logger.With("layer", name),
		metrics:    o.metrics,
		needUpdate: true,
		maxOrder:   maxOrder,
		indices:    make([]*cluster.Indices, maxOrder),
		ext:        make([]extensions, maxOrder-1),
	}
}

func (l *layer) Name() string { return l.name }

func (l *layer) Dim() int {
	if l.atoms != nil {
		return l.atoms.dim
	}
	return l.lower.Dim()
}

func (l *layer) Structure() *structure.AtomicStructure { return l.lower.Structure() }

func (l *layer) Lattice() *structure.Lattice { return l.lower.Lattice() }

func (l *layer) Size() int {
	if l.atoms != nil {
		return l.atoms.nCenters
	}
	return l.lower.Size()
}

func (l *layer) SizeWithGhosts() int {
	if l.atoms != nil {
		return len(l.atoms.types)
	}
	return l.lower.SizeWithGhosts()
}

func (l *layer) IsGhost(tag int) bool { return tag >= l.Size() }

func (l *layer) Position(tag int) []float64 {
	if a := l.atoms; a != nil {
		return a.positions[tag*a.dim : (tag+1)*a.dim : (tag+1)*a.dim]
	}
	return l.lower.Position(tag)
}

func (l *layer) AtomType(tag int) int {
	if l.atoms != nil {
		return l.atoms.types[tag]
	}
	return l.lower.AtomType(tag)
}

func (l *layer) AtomIndex(tag int) int {
	if l.atoms != nil {
		return l.atoms.origins[tag]
	}
	return l.lower.AtomIndex(tag)
}

func (l *layer) MaxOrder() int { return l.maxOrder }

func (l *layer) Depth() int {
	if l.lower == nil {
		return 0
	}
	return l.lower.Depth() + 1
}

func (l *layer) Layer(order int) int { return l.table(order).Layers() - 1 }

func (l *layer) IsStrict() bool { return l.strict }

func (l *layer) HasCenterPair() bool { return l.centerPair }

func (l *layer) NUpdate() int { return l.nUpdate }

func (l *layer) Indices(order int) *cluster.Indices { return l.table(order) }

func (l *layer) ClusterCount(order int) (int, error) {
	if order == 1 {
		return 0, fmt.Errorf("%w: use Size or SizeWithGhosts", ErrAmbiguousOrder)
	}
	if order < 1 || order > l.maxOrder {
		return 0, fmt.Errorf("%w: %s has no clusters of order %d", ErrInvalidInput, l.name, order)
	}
	if l.indices[order-1] == nil {
		return 0, nil
	}
	return l.indices[order-1].Len(), nil
}

func (l *layer) ExtensionCount(order, index int) int {
	return l.extensionsOf(order).counts[index]
}

func (l *layer) ExtensionOffset(order, index int) int {
	return l.extensionsOf(order).offsets[index]
}

func (l *layer) ExtensionTags(order, index int) []int {
	e := l.extensionsOf(order)
	lo, hi := e.offsets[index], e.offsets[index+1]
	return e.tags[lo:hi:hi]
}

func (l *layer) ClusterSize(c cluster.Ref) int {
	return l.ExtensionCount(c.Order(), c.Index(l.Layer(c.Order())))
}

func (l *layer) NeighbourTag(c cluster.Ref, j int) int {
	return l.ExtensionTags(c.Order(), c.Index(l.Layer(c.Order())))[j]
}

func (l *layer) Update(s *structure.AtomicStructure) error { return l.lower.Update(s) }

func (l *layer) Invalidate() { l.needUpdate = true }

func (l *layer) Lower() Manager { return l.lower }

func (l *layer) Register(child Adaptor) { l.children = append(l.children, child) }

func (l *layer) Unregister(child Adaptor) {
	l.children = slices.DeleteFunc(l.children, func(c Adaptor) bool { return c == child })
}

func (l *layer) table(order int) *cluster.Indices {
	if order < 1 || order > l.maxOrder {
		panic(fmt.Sprintf("manager: %s has no clusters of order %d", l.name, order))
	}
	if l.indices[order-1] == nil {
		panic(fmt.Sprintf("manager: %s queried before its first update", l.name))
	}
	return l.indices[order-1]
}

func (l *layer) extensionsOf(order int) *extensions {
	if order < 1 || order >= l.maxOrder {
		panic(fmt.Sprintf("manager: %s cannot extend clusters of order %d", l.name, order))
	}
	return &l.ext[order-1]
}

// own returns a single-column table for order, reusing the previous one.
func (l *layer) own(order int) *cluster.Indices {
	return l.stacked(order, 1)
}

// stacked returns an empty table for order with the given number of
// columns, reusing the previous one when possible.
func (l *layer) stacked(order, layers int) *cluster.Indices {
	ix := l.indices[order-1]
	if ix == nil || ix.Layers() != layers {
		ix = cluster.NewIndices(layers)
		l.indices[order-1] = ix
	}
	ix.Reset()
	return ix
}

// inherit copies the table of order from lower and appends own numbering.
func (l *layer) inherit(order int) {
	low := l.lower.Indices(order)
	ix := l.stacked(order, low.Layers()+1)
	ix.Grow(low.Len())
	for i := range low.Len() {
		ix.Append(low.Row(i))
	}
}

// updateSelf runs rebuild if changed or if the layer is stale, then notifies
// the layers above.
func (l *layer) updateSelf(changed bool, rebuild func() error) error {
	if !changed && !l.needUpdate {
		l.metrics.RecordSkip(l.name)
		return l.propagate(false)
	}

	start := time.Now()
	err := rebuild()
	if err == nil {
		err = l.check()
	}
	l.metrics.RecordRebuild(l.name, time.Since(start), err)
	if err != nil {
		l.needUpdate = true
		l.logger.Warn("rebuild failed", "error", err)
		return err
	}

	l.needUpdate = false
	l.nUpdate++

	centers, ghosts, pairs := l.Size(), l.SizeWithGhosts()-l.Size(), 0
	if l.maxOrder >= 2 {
		pairs = l.indices[1].Len()
	}
	l.metrics.RecordClusters(l.name, centers, ghosts, pairs)
	l.logger.Debug("layer rebuilt",
		"n_update", l.nUpdate,
		"centers", centers,
		"ghosts", ghosts,
		"pairs", pairs,
	)
	return l.propagate(true)
}

func (l *layer) propagate(changed bool) error {
	var errs []error
	for _, c := range l.children {
		if err := c.UpdateSelf(changed); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// check verifies that index and offset tables agree.
func (l *layer) check() error {
	want := l.SizeWithGhosts()
	for k := 1; k <= l.maxOrder; k++ {
		ix := l.indices[k-1]
		if ix == nil {
			return fmt.Errorf("%w: %s: no clusters of order %d", ErrInconsistent, l.name, k)
		}
		if err := ix.Validate(); err != nil {
			return fmt.Errorf("%w: %s: order %d: %w", ErrInconsistent, l.name, k, err)
		}
		if ix.Len() != want {
			return fmt.Errorf("%w: %s: %d clusters of order %d, expected %d", ErrInconsistent, l.name, ix.Len(), k, want)
		}
		if k == l.maxOrder {
			break
		}
		e := &l.ext[k-1]
		if len(e.counts) != ix.Len() {
			return fmt.Errorf("%w: %s: %d extension counts for %d clusters of order %d",
				ErrInconsistent, l.name, len(e.counts), ix.Len(), k)
		}
		if err := cluster.CheckOffsets(e.offsets, e.counts, len(e.tags)); err != nil {
			return fmt.Errorf("%w: %s: order %d: %w", ErrInconsistent, l.name, k, err)
		}
		want = len(e.tags)
	}
	return nil
}

// reject logs a construction failure.
func reject(o options, adaptor string, err error) error {
	o.logger.Warn("adaptor rejected", "layer", adaptor, "error", err)
	return err
}

// requireLower validates the manager an adaptor is stacked on.
func requireLower(name string, lower Manager, minOrder, maxOrder int) error {
	if lower == nil {
		return &ConfigError{Adaptor: name, Reason: "lower manager is nil"}
	}
	if o := lower.MaxOrder(); o < minOrder || o > maxOrder {
		if minOrder == maxOrder {
			return &ConfigError{Adaptor: name, Reason: fmt.Sprintf("lower manager %s has order %d, expected %d", lower.Name(), o, minOrder)}
		}
		return &ConfigError{Adaptor: name, Reason: fmt.Sprintf("lower manager %s has order %d, expected at least %d", lower.Name(), o, minOrder)}
	}
	return nil
}
