package neighborhood

import (
	"github.com/hupe1980/neighborhood/manager"
	"github.com/hupe1980/neighborhood/stack"
)

// Builder is an immutable fluent builder for Neighborhood stacks.
// Each method returns a new builder with the updated configuration.
//
// Example:
//
//	nb, err := neighborhood.NewBuilder().
//	    NeighbourList(3.0).
//	    CenterContribution().
//	    Strict(3.0).
//	    MaxOrder().
//	    Build()
type Builder struct {
	layers []stack.Layer
	opts   []Option
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

func (b Builder) with(name string, args manager.Hypers) Builder {
	layers := make([]stack.Layer, len(b.layers), len(b.layers)+1)
	copy(layers, b.layers)
	b.layers = append(layers, stack.Layer{Name: name, Args: args})
	return b
}

// NeighbourList adds a linked-cell neighbour list with the given cutoff.
func (b Builder) NeighbourList(cutoff float64) Builder {
	return b.with(manager.NameNeighbourList, manager.Hypers{"cutoff": cutoff})
}

// NeighbourListWithGhosts adds a neighbour list that also lists the
// neighbours of ghost atoms.
func (b Builder) NeighbourListWithGhosts(cutoff float64) Builder {
	return b.with(manager.NameNeighbourList, manager.Hypers{
		"cutoff":                    cutoff,
		"consider_ghost_neighbours": true,
	})
}

// Strict keeps only pairs closer than cutoff.
func (b Builder) Strict(cutoff float64) Builder {
	return b.with(manager.NameStrict, manager.Hypers{"cutoff": cutoff})
}

// CenterContribution adds the self pair of every center.
func (b Builder) CenterContribution() Builder {
	return b.with(manager.NameCenterContribution, manager.Hypers{})
}

// Kspace pairs every atom with every other atom.
func (b Builder) Kspace() Builder {
	return b.with(manager.NameKspace, manager.Hypers{})
}

// KspaceWithCutoff is Kspace that also enumerates the reciprocal vectors
// shorter than kcut.
func (b Builder) KspaceWithCutoff(kcut float64) Builder {
	return b.with(manager.NameKspace, manager.Hypers{"kcut": kcut})
}

// MaxOrder extends the clusters of the topmost order by one atom.
func (b Builder) MaxOrder() Builder {
	return b.with(manager.NameMaxOrder, manager.Hypers{})
}

// Options appends constructor options.
func (b Builder) Options(optFns ...Option) Builder {
	opts := make([]Option, 0, len(b.opts)+len(optFns))
	opts = append(opts, b.opts...)
	b.opts = append(opts, optFns...)
	return b
}

// Layers returns a copy of the configured layer specifications.
func (b Builder) Layers() []stack.Layer {
	return append([]stack.Layer(nil), b.layers...)
}

// Build creates the Neighborhood.
func (b Builder) Build() (*Neighborhood, error) {
	return New(b.Layers(), b.opts...)
}
