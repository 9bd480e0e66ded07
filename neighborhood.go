package neighborhood

import (
	"bytes"
	"context"
	"io"
	"iter"

	"github.com/hupe1980/neighborhood/blobstore"
	"github.com/hupe1980/neighborhood/cluster"
	"github.com/hupe1980/neighborhood/manager"
	"github.com/hupe1980/neighborhood/snapshot"
	"github.com/hupe1980/neighborhood/stack"
	"github.com/hupe1980/neighborhood/structure"
)

// Neighborhood is a manager stack with logging, metrics and snapshots.
//
// A Neighborhood is not safe for concurrent use. Use package collection to
// process many structures in parallel.
type Neighborhood struct {
	stack *stack.Stack
	opts  options
}

// New builds a stack of layers on a fresh base manager.
func New(layers []stack.Layer, optFns ...Option) (*Neighborhood, error) {
	opts := applyOptions(optFns)
	st, err := stack.Build(layers, managerOptions(opts)...)
	if err != nil {
		return nil, translateError(err)
	}
	return newNeighborhood(st, opts), nil
}

// NewFromJSON builds a stack from a JSON array of layer specifications.
func NewFromJSON(spec []byte, optFns ...Option) (*Neighborhood, error) {
	opts := applyOptions(optFns)
	layers, err := stack.ParseLayers(spec, opts.codec)
	if err != nil {
		return nil, translateError(err)
	}
	return New(layers, optFns...)
}

// Load restores a snapshot and stacks layers on it. The restored stack is
// read-only: Update accepts only nil or the snapshot's structure.
func Load(ctx context.Context, filename string, layers []stack.Layer, optFns ...Option) (*Neighborhood, error) {
	opts := applyOptions(optFns)
	frozen, err := snapshot.Load(filename, managerOptions(opts)...)
	return restore(ctx, filename, frozen, err, layers, opts)
}

// LoadFrom is Load reading the snapshot name from store.
func LoadFrom(ctx context.Context, store blobstore.Store, name string, layers []stack.Layer, optFns ...Option) (*Neighborhood, error) {
	opts := applyOptions(optFns)
	data, err := store.Get(ctx, name)
	if err != nil {
		opts.logger.LogRestore(ctx, name, 0, err)
		return nil, err
	}
	frozen, err := snapshot.Decode(bytes.NewReader(data), managerOptions(opts)...)
	return restore(ctx, name, frozen, err, layers, opts)
}

func restore(ctx context.Context, name string, frozen *manager.Frozen, err error, layers []stack.Layer, opts options) (*Neighborhood, error) {
	if err != nil {
		opts.logger.LogRestore(ctx, name, 0, err)
		return nil, translateError(err)
	}
	st, err := stack.BuildOn(frozen, layers, managerOptions(opts)...)
	if err != nil {
		return nil, translateError(err)
	}
	nb := newNeighborhood(st, opts)
	if err := nb.Update(ctx, nil); err != nil {
		return nil, err
	}
	opts.logger.LogRestore(ctx, name, frozen.Size(), nil)
	return nb, nil
}

func newNeighborhood(st *stack.Stack, opts options) *Neighborhood {
	names := []string{st.Base().Name()}
	for _, l := range st.Layers() {
		names = append(names, l.Name())
	}
	opts.logger = opts.logger.WithStack(names)
	return &Neighborhood{stack: st, opts: opts}
}

func managerOptions(o options) []manager.Option {
	return []manager.Option{
		manager.WithLogger(o.logger.Logger),
		manager.WithMetrics(o.metricsCollector),
	}
}

// Update hands s to the stack and rebuilds the layers that are stale.
func (nb *Neighborhood) Update(ctx context.Context, s *structure.AtomicStructure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	atoms := 0
	if s != nil {
		atoms = s.NumAtoms()
	}
	err := nb.stack.Update(s)
	nb.opts.logger.LogUpdate(ctx, atoms, err)
	return translateError(err)
}

// Stack returns the underlying stack.
func (nb *Neighborhood) Stack() *stack.Stack { return nb.stack }

// Manager returns the topmost layer.
func (nb *Neighborhood) Manager() manager.Manager { return nb.stack.Top() }

// Structure returns the structure of the last update, nil before the
// first one.
func (nb *Neighborhood) Structure() *structure.AtomicStructure {
	return nb.stack.Top().Structure()
}

// Atoms iterates over the centers of the topmost layer.
func (nb *Neighborhood) Atoms() iter.Seq[cluster.Ref] {
	return manager.Atoms(nb.stack.Top())
}

// Pairs iterates over the pairs of the topmost layer.
func (nb *Neighborhood) Pairs() iter.Seq[cluster.Ref] {
	return manager.Clusters(nb.stack.Top(), 2)
}

// Neighbours returns the tags of the atoms paired with atom.
func (nb *Neighborhood) Neighbours(atom cluster.Ref) []int {
	top := nb.stack.Top()
	return top.ExtensionTags(1, atom.Index(top.Layer(1)))
}

// Distance returns the length of a pair of the topmost layer as computed by
// the topmost strict layer. ok is false for stacks without one and when a
// layer above it renumbered the pairs.
func (nb *Neighborhood) Distance(pair cluster.Ref) (d float64, ok bool) {
	a, ok := nb.stack.Find(manager.NameStrict)
	if !ok {
		return 0, false
	}
	top := nb.stack.Top()
	if top.Depth()-a.Depth() != top.Layer(2)-a.Layer(2) {
		return 0, false
	}
	return a.(*manager.Strict).Distance(pair), true
}

// Encode writes a snapshot of the topmost layer to w.
func (nb *Neighborhood) Encode(w io.Writer) error {
	if nb.stack.Top().NUpdate() == 0 {
		return ErrNotUpdated
	}
	return snapshot.Encode(w, nb.stack.Top(), nb.snapshotOptions)
}

// Save writes a snapshot of the topmost layer to filename.
func (nb *Neighborhood) Save(ctx context.Context, filename string) error {
	if nb.stack.Top().NUpdate() == 0 {
		return ErrNotUpdated
	}
	err := snapshot.Save(filename, nb.stack.Top(), nb.snapshotOptions)
	nb.opts.logger.LogSnapshot(ctx, filename, err)
	return err
}

func (nb *Neighborhood) snapshotOptions(o *snapshot.Options) {
	o.Codec = nb.opts.codec
	o.Compression = nb.opts.compression
}

// SaveTo writes a snapshot of the topmost layer to store under name.
func (nb *Neighborhood) SaveTo(ctx context.Context, store blobstore.Store, name string) error {
	var buf bytes.Buffer
	if err := nb.Encode(&buf); err != nil {
		return err
	}
	err := store.Put(ctx, name, buf.Bytes())
	nb.opts.logger.LogSnapshot(ctx, name, err)
	return err
}
