package cluster

import "fmt"

// Ref identifies a cluster during iteration.
//
// Tags are the atom tags of the cluster, Tags[0] being the center. Indices is
// the cluster's row in the Indices table of the manager that produced the
// reference, i.e. its index at every layer for this order. A Ref produced by
// a manager is valid for every manager below it in the same stack.
type Ref struct {
	order   int
	tags    []int
	indices []int
}

// NewRef creates a reference from atom tags and the per-layer indices.
func NewRef(tags, indices []int) Ref {
	return Ref{order: len(tags), tags: tags, indices: indices}
}

// At creates a tag-less reference used for offset arithmetic only.
func At(order int, indices []int) Ref {
	return Ref{order: order, indices: indices}
}

// Order returns the number of atoms in the cluster.
func (r Ref) Order() int { return r.order }

// Tags returns the atom tags. Nil for references created with At.
func (r Ref) Tags() []int { return r.tags }

// Center returns the tag of the first atom.
func (r Ref) Center() int { return r.tags[0] }

// Back returns the tag of the last atom.
func (r Ref) Back() int { return r.tags[len(r.tags)-1] }

// Indices returns the per-layer indices.
func (r Ref) Indices() []int { return r.indices }

// Index returns the cluster index at the given layer.
func (r Ref) Index(layer int) int {
	if layer >= len(r.indices) {
		panic(fmt.Sprintf("cluster: layer %d not reachable from a reference with %d layers", layer, len(r.indices)))
	}
	return r.indices[layer]
}

// String implements fmt.Stringer.
func (r Ref) String() string {
	return fmt.Sprintf("Cluster%d(%v@%v)", r.order, r.tags, r.indices)
}
