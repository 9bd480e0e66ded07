package manager

import (
	"errors"

	"github.com/hupe1980/neighborhood/internal/linkedcell"
)

// NameNeighbourList is the registered name of the full neighbour list.
const NameNeighbourList = "AdaptorNeighbourList"

// NeighbourList adds ghost atoms and pairs to a base manager using a
// linked-cell search. Pairs are candidates: every atom in the 27 (3D)
// bins around a center, so some lie beyond the cutoff. Stack a Strict
// adaptor to filter them.
//
// Options:
//
//	cutoff                     required, > 0
//	consider_ghost_neighbours  optional, default false
type NeighbourList struct {
	layer
	cutoff      float64
	ghostNeighs bool
	bins        []int
	positions   []float64
}

// NewNeighbourList stacks a neighbour list on lower, which must be of
// order 1 without ghosts.
func NewNeighbourList(lower Manager, hypers Hypers, optFns ...Option) (*NeighbourList, error) {
	o := applyOptions(optFns)
	if err := requireLower(NameNeighbourList, lower, 1, 1); err != nil {
		return nil, reject(o, NameNeighbourList, err)
	}
	rc, err := hypers.cutoff(NameNeighbourList, "cutoff")
	if err != nil {
		return nil, reject(o, NameNeighbourList, err)
	}
	ghosts, err := hypers.bool(NameNeighbourList, "consider_ghost_neighbours", false)
	if err != nil {
		return nil, reject(o, NameNeighbourList, err)
	}

	nl := &NeighbourList{
		layer:       newLayer(NameNeighbourList, lower, 2, o),
		cutoff:      rc,
		ghostNeighs: ghosts,
	}
	nl.atoms = &atomTable{}
	lower.Register(nl)
	return nl, nil
}

// Cutoff returns the search radius.
func (nl *NeighbourList) Cutoff() float64 { return nl.cutoff }

// ConsiderGhostNeighbours reports whether ghosts get neighbour lists.
func (nl *NeighbourList) ConsiderGhostNeighbours() bool { return nl.ghostNeighs }

// Bins returns the number of linked-cell bins per direction used by the
// last rebuild.
func (nl *NeighbourList) Bins() []int { return nl.bins }

// UpdateSelf implements Adaptor.
func (nl *NeighbourList) UpdateSelf(changed bool) error {
	return nl.updateSelf(changed, nl.rebuild)
}

func (nl *NeighbourList) rebuild() error {
	low := nl.lower
	if low.SizeWithGhosts() != low.Size() {
		return &GeometryError{Adaptor: nl.name, Reason: "lower manager already has ghosts"}
	}
	s := low.Structure()
	dim := low.Dim()
	n := low.Size()

	nl.positions = nl.positions[:0]
	for tag := range n {
		nl.positions = append(nl.positions, low.Position(tag)...)
	}

	res, err := linkedcell.Build(linkedcell.Input{
		Lattice:                 low.Lattice(),
		PBC:                     s.PBC,
		Positions:               nl.positions,
		Cutoff:                  nl.cutoff,
		ConsiderGhostNeighbours: nl.ghostNeighs,
	})
	if err != nil {
		reason := "neighbour search failed"
		switch {
		case errors.Is(err, linkedcell.ErrOutsideCell):
			reason = "atom outside the unit cell along a periodic direction"
		case errors.Is(err, linkedcell.ErrMeshTooLarge):
			reason = "cutoff too small for the extent of the structure"
		}
		return &GeometryError{Adaptor: nl.name, Reason: reason, cause: err}
	}
	nl.bins = res.Bins

	nl.atoms.reset(dim, n)
	for tag := range n {
		nl.atoms.add(low.Position(tag), low.AtomType(tag), low.AtomIndex(tag))
	}
	for g, origin := range res.GhostOrigins {
		nl.atoms.add(res.GhostPositions[g*dim:(g+1)*dim], low.AtomType(origin), low.AtomIndex(origin))
	}

	e := &nl.ext[0]
	e.counts = append(e.counts[:0], res.NbNeigh...)
	e.tags = append(e.tags[:0], res.NeighbourTags...)
	e.close()

	nl.own(1).FillSequence(n + res.NGhosts())
	nl.own(2).FillSequence(len(e.tags))
	return nil
}
